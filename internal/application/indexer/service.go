// Package indexer provides the write-path application service of the
// recipe vector index: ingest, embed, upsert and delete
package indexer

import (
	"context"

	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/ingest"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
)

// Service wires the ingestor, embedder and vector index together
type Service struct {
	ingestor *ingest.Ingestor
	embedder outbound.Embedder
	index    outbound.VectorIndex
	logger   *zap.Logger
}

// NewService creates the indexing service
func NewService(
	ingestor *ingest.Ingestor,
	embedder outbound.Embedder,
	index outbound.VectorIndex,
	logger *zap.Logger,
) *Service {
	return &Service{
		ingestor: ingestor,
		embedder: embedder,
		index:    index,
		logger:   logger.Named("indexer"),
	}
}

// IngestDocument extracts, chunks, embeds and indexes one source document.
// An empty document indexes nothing and is not an error.
func (s *Service) IngestDocument(ctx context.Context, cmd inbound.IngestDocumentCommand) error {
	doc := ingest.Document{
		RecipeID: cmd.RecipeID,
		Title:    cmd.Title,
		Language: cmd.Language,
	}
	src := ingest.Source{
		URL:  cmd.URL,
		Path: cmd.FilePath,
		Data: cmd.FileData,
	}

	chunks, err := s.ingestor.Ingest(ctx, doc, src)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	embedded := make([]ingest.EmbeddedChunk, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := s.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return err
		}
		embedded = append(embedded, ingest.EmbeddedChunk{Chunk: chunk, Vector: vector})
	}

	if err := s.index.Upsert(ctx, embedded); err != nil {
		return err
	}

	s.logger.Info("document indexed",
		zap.String("recipe_id", cmd.RecipeID),
		zap.String("source", src.Location()),
		zap.Int("chunks", len(embedded)),
	)
	return nil
}

// DeleteIngestedDocument removes all indexed chunks of the recipe.
// Idempotent; nothing to delete is success.
func (s *Service) DeleteIngestedDocument(ctx context.Context, recipeID string) error {
	return s.index.DeleteByRecipe(ctx, recipeID)
}
