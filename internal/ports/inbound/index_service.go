package inbound

import "context"

// IndexService defines the write-path boundary of the recipe vector index
type IndexService interface {
	// IngestDocument extracts, chunks, embeds and indexes a source document
	IngestDocument(ctx context.Context, cmd IngestDocumentCommand) error

	// DeleteIngestedDocument removes every indexed chunk of the recipe.
	// Idempotent; deleting an unindexed recipe is not an error.
	DeleteIngestedDocument(ctx context.Context, recipeID string) error
}

// IngestDocumentCommand locates and describes a document to ingest.
// Exactly one of URL, FilePath or FileData should be set.
type IngestDocumentCommand struct {
	RecipeID string
	Title    string
	Language string
	URL      string
	FilePath string
	FileData []byte
}
