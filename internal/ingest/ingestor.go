package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/pkg/errors"
)

// maxDocumentBytes caps the size of a fetched document
const maxDocumentBytes = 16 << 20

// Ingestor turns a source document into a sequence of provenance-tagged
// text chunks
type Ingestor struct {
	client  *http.Client
	chunker *TokenChunker
	logger  *zap.Logger
}

// NewIngestor creates an ingestor with a default HTTP client and chunker
func NewIngestor(logger *zap.Logger) *Ingestor {
	return &Ingestor{
		client:  &http.Client{Timeout: 30 * time.Second},
		chunker: NewTokenChunker(),
		logger:  logger.Named("ingestor"),
	}
}

// NewIngestorWithClient creates an ingestor with a caller-supplied HTTP
// client, used by tests
func NewIngestorWithClient(client *http.Client, chunker *TokenChunker, logger *zap.Logger) *Ingestor {
	return &Ingestor{client: client, chunker: chunker, logger: logger.Named("ingestor")}
}

// Ingest fetches the source, extracts its text and splits it into chunks.
// Empty documents yield zero chunks without error. Unsupported or
// unreachable sources fail with an ingestion error.
func (i *Ingestor) Ingest(ctx context.Context, doc Document, src Source) ([]Chunk, error) {
	data, err := i.resolve(ctx, src)
	if err != nil {
		return nil, errors.NewIngestionError(src.Location(), err)
	}

	text, err := extractText(src, data)
	if err != nil {
		return nil, errors.NewIngestionError(src.Location(), err)
	}

	pieces := i.chunker.Split(text)
	if len(pieces) == 0 {
		i.logger.Info("document produced no chunks",
			zap.String("recipe_id", doc.RecipeID),
			zap.String("source", src.Location()),
		)
		return nil, nil
	}

	chunks := make([]Chunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, Chunk{
			Text:     piece,
			SourceID: src.Location(),
			Metadata: map[string]string{
				MetaRecipeID: doc.RecipeID,
				MetaTitle:    doc.Title,
				MetaSource:   src.Location(),
				MetaLanguage: doc.Language,
			},
		})
	}

	i.logger.Debug("document chunked",
		zap.String("recipe_id", doc.RecipeID),
		zap.String("source", src.Location()),
		zap.Int("chunks", len(chunks)),
	)
	return chunks, nil
}

// resolve loads the raw bytes of the source
func (i *Ingestor) resolve(ctx context.Context, src Source) ([]byte, error) {
	switch {
	case len(src.Data) > 0:
		return src.Data, nil
	case src.URL != "":
		return i.fetch(ctx, src.URL)
	case src.Path != "":
		return os.ReadFile(src.Path)
	default:
		return nil, fmt.Errorf("source has no url, path or data")
	}
}

// fetch downloads a document over HTTP
func (i *Ingestor) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	return data, nil
}
