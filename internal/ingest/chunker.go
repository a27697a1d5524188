package ingest

import "strings"

// Defaults matching the embedding model's context window
const (
	DefaultMaxTokens = 512
	DefaultOverlap   = 20
)

// TokenChunker splits text into windows of at most MaxTokens tokens with
// Overlap tokens shared between consecutive windows. Tokens are whitespace
// separated words, a close upper bound for sentence-transformer tokenizers.
type TokenChunker struct {
	MaxTokens int
	Overlap   int
}

// NewTokenChunker creates a chunker with the default window and overlap
func NewTokenChunker() *TokenChunker {
	return &TokenChunker{MaxTokens: DefaultMaxTokens, Overlap: DefaultOverlap}
}

// Split breaks text into overlapping token windows. Empty or whitespace-only
// text yields no chunks.
func (c *TokenChunker) Split(text string) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	overlap := c.Overlap
	if overlap < 0 || overlap >= maxTokens {
		overlap = 0
	}

	if len(tokens) <= maxTokens {
		return []string{strings.Join(tokens, " ")}
	}

	step := maxTokens - overlap
	var chunks []string
	for start := 0; start < len(tokens); start += step {
		end := start + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, strings.Join(tokens[start:end], " "))
		if end == len(tokens) {
			break
		}
	}
	return chunks
}
