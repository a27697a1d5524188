package outbound

import (
	"context"

	"github.com/saskialein/plan-to-plate/internal/ingest"
)

// Embedder maps text to a fixed-length unit-normalized vector.
// Identical text always yields an identical vector for a fixed model.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	ModelName() string
}

// ChatModel invokes a language model with a single prompt and returns its
// raw text response
type ChatModel interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// IndexEntry is a persisted vector-index row projected for retrieval.
// Metadata always carries recipe_id, title, source and language.
type IndexEntry struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// VectorIndex is the durable store of embedded chunks supporting
// similarity search and deletion by provenance key
type VectorIndex interface {
	// Upsert writes entries, deduplicating identical (source, content)
	// pairs. Re-ingesting unchanged content creates no duplicate rows.
	Upsert(ctx context.Context, chunks []ingest.EmbeddedChunk) error

	// SimilaritySearch returns the k entries most similar to the query,
	// ordered by descending cosine similarity with insertion-order ties.
	SimilaritySearch(ctx context.Context, query string, k int) ([]IndexEntry, error)

	// DeleteByRecipe removes all entries for the recipe. Deleting a recipe
	// with no entries is a no-op, not an error.
	DeleteByRecipe(ctx context.Context, recipeID string) error
}
