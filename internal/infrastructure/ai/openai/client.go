// Package openai provides chat completion and embeddings via the OpenAI API
package openai

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/pkg/errors"
)

// Default models for chat and embeddings
const (
	DefaultChatModel      = openai.GPT3Dot5Turbo
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
)

// Config holds OpenAI client configuration
type Config struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
}

// Client implements the ChatModel and Embedder ports using the OpenAI API.
// Any OpenAI-compatible endpoint works through BaseURL.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel string
	logger         *zap.Logger
}

// NewClient creates a new OpenAI client
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}

	return &Client{
		client:         openai.NewClientWithConfig(clientConfig),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		logger:         logger.Named("openai"),
	}, nil
}

// Complete sends a single-prompt chat completion and returns the raw text
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", errors.NewUpstreamUnavailableError("openai", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.NewUpstreamUnavailableError("openai", fmt.Errorf("no choices returned"))
	}

	c.logger.Debug("chat completion finished",
		zap.String("model", c.chatModel),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

// Embed returns the unit-normalized embedding vector for the text
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError("openai", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.NewUpstreamUnavailableError("openai", fmt.Errorf("no embeddings returned"))
	}

	vector := resp.Data[0].Embedding
	if len(vector) != c.Dimension() {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vector), c.Dimension())
	}

	Normalize(vector)
	return vector, nil
}

// Dimension returns the embedding dimension of the configured model
func (c *Client) Dimension() int {
	switch c.embeddingModel {
	case string(openai.SmallEmbedding3):
		return 1536
	case string(openai.LargeEmbedding3):
		return 3072
	case string(openai.AdaEmbeddingV2):
		return 1536
	default:
		return 1536
	}
}

// ModelName returns the configured embedding model name
func (c *Client) ModelName() string {
	return c.embeddingModel
}

// Normalize scales a vector to unit length in place. Zero vectors are
// left unchanged.
func Normalize(vector []float32) {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vector {
		vector[i] /= norm
	}
}
