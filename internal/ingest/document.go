// Package ingest turns recipe documents into embeddable text chunks.
// It handles fetching, text extraction and token-window chunking.
package ingest

import (
	"path"
	"strings"
)

// Metadata keys carried by every indexed chunk
const (
	MetaRecipeID = "recipe_id"
	MetaTitle    = "title"
	MetaSource   = "source"
	MetaLanguage = "language"
)

// Document describes the provenance of an ingested source
type Document struct {
	RecipeID string
	Title    string
	Language string
}

// Source locates the content to ingest, either a URL or an uploaded blob
type Source struct {
	URL  string
	Path string
	Data []byte
}

// Location returns the source's canonical location string
func (s Source) Location() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Path
}

// extension returns the lowercased file extension of the source location,
// ignoring any URL query string
func (s Source) extension() string {
	loc := s.Location()
	if i := strings.IndexAny(loc, "?#"); i >= 0 {
		loc = loc[:i]
	}
	return strings.ToLower(path.Ext(loc))
}

// Chunk is a bounded span of extracted document text tagged with provenance
type Chunk struct {
	Text     string
	SourceID string
	Metadata map[string]string
}

// EmbeddedChunk is a chunk paired with its embedding vector
type EmbeddedChunk struct {
	Chunk
	Vector []float32
}
