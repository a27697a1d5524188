package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	apperrors "github.com/saskialein/plan-to-plate/pkg/errors"
)

// IngestTestSuite provides a test suite for document ingestion
type IngestTestSuite struct {
	suite.Suite
	logger *zap.Logger
}

func (suite *IngestTestSuite) SetupSuite() {
	suite.logger = zap.NewNop()
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func (suite *IngestTestSuite) TestTokenChunker() {
	suite.Run("EmptyText_ShouldYieldNoChunks", func() {
		chunker := NewTokenChunker()
		assert.Nil(suite.T(), chunker.Split(""))
		assert.Nil(suite.T(), chunker.Split("   \n\t  "))
	})

	suite.Run("ShortText_ShouldYieldOneChunk", func() {
		chunker := NewTokenChunker()
		chunks := chunker.Split(words(DefaultMaxTokens))
		require.Len(suite.T(), chunks, 1)
		assert.Len(suite.T(), strings.Fields(chunks[0]), DefaultMaxTokens)
	})

	suite.Run("LongText_ShouldOverlapWindows", func() {
		chunker := NewTokenChunker()
		chunks := chunker.Split(words(DefaultMaxTokens + 100))
		require.Len(suite.T(), chunks, 2)

		first := strings.Fields(chunks[0])
		second := strings.Fields(chunks[1])
		assert.Len(suite.T(), first, DefaultMaxTokens)

		// the second window starts Overlap tokens before the first ends
		assert.Equal(suite.T(), first[len(first)-DefaultOverlap:], second[:DefaultOverlap])
		assert.Len(suite.T(), second, DefaultOverlap+100)
	})

	suite.Run("WhitespaceRuns_ShouldCollapseToSingleSpaces", func() {
		chunker := NewTokenChunker()
		chunks := chunker.Split("one\t\ttwo \n three")
		require.Len(suite.T(), chunks, 1)
		assert.Equal(suite.T(), "one two three", chunks[0])
	})

	suite.Run("CustomWindow_ShouldStepByMaxMinusOverlap", func() {
		chunker := &TokenChunker{MaxTokens: 10, Overlap: 3}
		chunks := chunker.Split(words(24))
		require.Len(suite.T(), chunks, 3)
		assert.Len(suite.T(), strings.Fields(chunks[0]), 10)
		assert.Len(suite.T(), strings.Fields(chunks[1]), 10)
		assert.Len(suite.T(), strings.Fields(chunks[2]), 10)
	})
}

func (suite *IngestTestSuite) TestHTMLExtraction() {
	suite.Run("ShouldStripMarkupAndScripts", func() {
		page := `<html><head><title>Ignored</title><style>p{color:red}</style></head>
			<body><script>var x = 1;</script><h1>Carrot Soup</h1><p>Peel the carrots.</p></body></html>`

		text := extractHTMLText([]byte(page))
		assert.Contains(suite.T(), text, "Carrot Soup")
		assert.Contains(suite.T(), text, "Peel the carrots.")
		assert.NotContains(suite.T(), text, "var x")
		assert.NotContains(suite.T(), text, "color:red")
		assert.NotContains(suite.T(), text, "Ignored")
	})

	suite.Run("MalformedMarkup_ShouldStillYieldText", func() {
		text := extractHTMLText([]byte("<p>Unclosed <b>tag soup"))
		assert.Contains(suite.T(), text, "Unclosed")
		assert.Contains(suite.T(), text, "tag soup")
	})
}

func (suite *IngestTestSuite) TestIngest() {
	newIngestor := func(client *http.Client) *Ingestor {
		return NewIngestorWithClient(client, NewTokenChunker(), suite.logger)
	}

	doc := Document{RecipeID: "42", Title: "Carrot Soup", Language: "en"}

	suite.Run("InlineData_ShouldChunkAndTagMetadata", func() {
		ingestor := newIngestor(http.DefaultClient)
		src := Source{Path: "recipes/soup.html", Data: []byte("<p>Simmer the soup gently.</p>")}

		chunks, err := ingestor.Ingest(context.Background(), doc, src)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), chunks, 1)

		assert.Equal(suite.T(), "Simmer the soup gently.", chunks[0].Text)
		assert.Equal(suite.T(), "recipes/soup.html", chunks[0].SourceID)
		assert.Equal(suite.T(), map[string]string{
			MetaRecipeID: "42",
			MetaTitle:    "Carrot Soup",
			MetaSource:   "recipes/soup.html",
			MetaLanguage: "en",
		}, chunks[0].Metadata)
	})

	suite.Run("URLSource_ShouldFetchOverHTTP", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><body><p>Roast the vegetables.</p></body></html>")
		}))
		defer server.Close()

		ingestor := newIngestor(server.Client())
		chunks, err := ingestor.Ingest(context.Background(), doc, Source{URL: server.URL + "/recipe.html"})
		require.NoError(suite.T(), err)
		require.Len(suite.T(), chunks, 1)
		assert.Equal(suite.T(), "Roast the vegetables.", chunks[0].Text)
	})

	suite.Run("EmptyDocument_ShouldYieldNoChunksWithoutError", func() {
		ingestor := newIngestor(http.DefaultClient)
		chunks, err := ingestor.Ingest(context.Background(), doc, Source{Path: "recipes/empty.html", Data: []byte("<html></html>")})
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), chunks)
	})

	suite.Run("ImageSource_ShouldFailWithIngestionError", func() {
		ingestor := newIngestor(http.DefaultClient)
		_, err := ingestor.Ingest(context.Background(), doc, Source{Path: "recipes/photo.jpg", Data: []byte{0xFF, 0xD8}})
		require.Error(suite.T(), err)

		appErr, ok := err.(*apperrors.AppError)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), apperrors.CodeIngestionFailed, appErr.Code)
	})

	suite.Run("HTTPErrorStatus_ShouldFailWithIngestionError", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer server.Close()

		ingestor := newIngestor(server.Client())
		_, err := ingestor.Ingest(context.Background(), doc, Source{URL: server.URL + "/missing.html"})
		require.Error(suite.T(), err)

		appErr, ok := err.(*apperrors.AppError)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), apperrors.CodeIngestionFailed, appErr.Code)
	})

	suite.Run("NoSource_ShouldFail", func() {
		ingestor := newIngestor(http.DefaultClient)
		_, err := ingestor.Ingest(context.Background(), doc, Source{})
		assert.Error(suite.T(), err)
	})
}

func TestIngestTestSuite(t *testing.T) {
	suite.Run(t, new(IngestTestSuite))
}
