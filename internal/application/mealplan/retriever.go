// Package mealplan provides the application layer for the
// retrieval-augmented meal-plan generation pipeline
package mealplan

import (
	"context"

	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
	"github.com/saskialein/plan-to-plate/internal/ingest"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
)

// DefaultRetrievalK is the number of index entries fetched per request
const DefaultRetrievalK = 10

// Retriever finds candidate recipes for a set of on-hand vegetables
type Retriever struct {
	index  outbound.VectorIndex
	k      int
	logger *zap.Logger
}

// NewRetriever creates a retriever over the given vector index
func NewRetriever(index outbound.VectorIndex, k int, logger *zap.Logger) *Retriever {
	if k <= 0 {
		k = DefaultRetrievalK
	}
	return &Retriever{
		index:  index,
		k:      k,
		logger: logger.Named("retriever"),
	}
}

// Retrieve queries the index with the vegetables joined into one string and
// projects each hit to a title and source URL, preserving result order.
// Near-duplicate titles are intentionally kept; the prompt offers them all.
func (r *Retriever) Retrieve(ctx context.Context, req mealplan.PlanRequest) ([]mealplan.RecipeCandidate, error) {
	query := req.Query()

	entries, err := r.index.SimilaritySearch(ctx, query, r.k)
	if err != nil {
		return nil, err
	}

	candidates := make([]mealplan.RecipeCandidate, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, mealplan.RecipeCandidate{
			Title: entry.Metadata[ingest.MetaTitle],
			URL:   entry.Metadata[ingest.MetaSource],
		})
	}

	r.logger.Debug("candidates retrieved",
		zap.String("query", query),
		zap.Int("count", len(candidates)),
	)
	return candidates, nil
}
