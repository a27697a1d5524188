// Package pgvector implements the vector index on PostgreSQL with the
// pgvector extension
package pgvector

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/ingest"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
	"github.com/saskialein/plan-to-plate/pkg/errors"
)

// Index stores embedded chunks in a recipe_embeddings table and serves
// cosine-similarity searches over them
type Index struct {
	pool     *pgxpool.Pool
	embedder outbound.Embedder
	logger   *zap.Logger
}

// NewIndex creates a vector index backed by the given connection pool
func NewIndex(pool *pgxpool.Pool, embedder outbound.Embedder, logger *zap.Logger) *Index {
	return &Index{
		pool:     pool,
		embedder: embedder,
		logger:   logger.Named("pgvector"),
	}
}

// EnsureSchema creates the pgvector extension and the embeddings table.
// The embedding column dimension follows the configured embedding model.
func (i *Index) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS recipe_embeddings (
			id        text PRIMARY KEY,
			seq       bigserial,
			recipe_id text NOT NULL,
			title     text NOT NULL DEFAULT '',
			source    text NOT NULL DEFAULT '',
			language  text NOT NULL DEFAULT '',
			content   text NOT NULL,
			embedding vector(%d) NOT NULL
		)`, i.embedder.Dimension()),
		`CREATE INDEX IF NOT EXISTS idx_recipe_embeddings_recipe_id ON recipe_embeddings (recipe_id)`,
	}

	for _, stmt := range statements {
		if _, err := i.pool.Exec(ctx, stmt); err != nil {
			return errors.NewIndexUnavailableError(err)
		}
	}
	return nil
}

// Upsert writes embedded chunks, deduplicating identical (source, content)
// pairs through the content-addressed primary key
func (i *Index) Upsert(ctx context.Context, chunks []ingest.EmbeddedChunk) error {
	const query = `
		INSERT INTO recipe_embeddings (id, recipe_id, title, source, language, content, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7::vector)
		ON CONFLICT (id) DO NOTHING`

	inserted := 0
	for _, chunk := range chunks {
		tag, err := i.pool.Exec(ctx, query,
			entryID(chunk.SourceID, chunk.Text),
			chunk.Metadata[ingest.MetaRecipeID],
			chunk.Metadata[ingest.MetaTitle],
			chunk.Metadata[ingest.MetaSource],
			chunk.Metadata[ingest.MetaLanguage],
			chunk.Text,
			vectorLiteral(chunk.Vector),
		)
		if err != nil {
			return errors.NewIndexUnavailableError(err)
		}
		inserted += int(tag.RowsAffected())
	}

	i.logger.Debug("chunks upserted",
		zap.Int("total", len(chunks)),
		zap.Int("inserted", inserted),
		zap.Int("deduplicated", len(chunks)-inserted),
	)
	return nil
}

// SimilaritySearch embeds the query and returns the k nearest entries by
// cosine distance, with insertion order breaking ties
func (i *Index) SimilaritySearch(ctx context.Context, query string, k int) ([]outbound.IndexEntry, error) {
	vector, err := i.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	const sql = `
		SELECT id, content, recipe_id, title, source, language
		FROM recipe_embeddings
		ORDER BY embedding <=> $1::vector, seq
		LIMIT $2`

	rows, err := i.pool.Query(ctx, sql, vectorLiteral(vector), k)
	if err != nil {
		return nil, errors.NewIndexUnavailableError(err)
	}
	defer rows.Close()

	var entries []outbound.IndexEntry
	for rows.Next() {
		var entry outbound.IndexEntry
		var recipeID, title, source, language string
		if err := rows.Scan(&entry.ID, &entry.Text, &recipeID, &title, &source, &language); err != nil {
			return nil, errors.NewIndexUnavailableError(err)
		}
		entry.Metadata = map[string]string{
			ingest.MetaRecipeID: recipeID,
			ingest.MetaTitle:    title,
			ingest.MetaSource:   source,
			ingest.MetaLanguage: language,
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIndexUnavailableError(err)
	}
	return entries, nil
}

// DeleteByRecipe removes every entry of the recipe. Nothing to delete is
// treated as success.
func (i *Index) DeleteByRecipe(ctx context.Context, recipeID string) error {
	tag, err := i.pool.Exec(ctx, `DELETE FROM recipe_embeddings WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return errors.NewIndexUnavailableError(err)
	}

	if tag.RowsAffected() == 0 {
		i.logger.Debug("no embeddings to delete", zap.String("recipe_id", recipeID))
		return nil
	}

	i.logger.Info("embeddings deleted",
		zap.String("recipe_id", recipeID),
		zap.Int64("rows", tag.RowsAffected()),
	)
	return nil
}

// entryID derives the content-addressed row id from source and chunk text
func entryID(source, content string) string {
	sum := sha256.Sum256([]byte(source + "|" + content))
	return hex.EncodeToString(sum[:])
}

// vectorLiteral renders a vector in pgvector's text format
func vectorLiteral(vector []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}
