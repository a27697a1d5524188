// Package ollama provides Ollama integration for local AI inference
// Implements the ChatModel and Embedder ports against a local Ollama server
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	openaiadapter "github.com/saskialein/plan-to-plate/internal/infrastructure/ai/openai"
	"github.com/saskialein/plan-to-plate/pkg/errors"
)

// Default local models
const (
	DefaultChatModel      = "llama3.2:3b"
	DefaultEmbeddingModel = "nomic-embed-text"
)

// Config holds Ollama client configuration
type Config struct {
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

// Client talks to an Ollama server over its native HTTP API
type Client struct {
	baseURL        string
	chatModel      string
	embeddingModel string
	client         *http.Client
	logger         *zap.Logger
}

// NewClient creates a new Ollama client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	logger.Info("Ollama client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("chat_model", cfg.ChatModel),
		zap.String("embedding_model", cfg.EmbeddingModel),
	)

	return &Client{
		baseURL:        cfg.BaseURL,
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		client:         &http.Client{Timeout: cfg.Timeout},
		logger:         logger.Named("ollama-client"),
	}
}

// Ollama API structures
type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count,omitempty"`
	EvalCount       int    `json:"eval_count,omitempty"`
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Complete sends a single-prompt generation request and returns the raw text
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := generateRequest{
		Model:  c.chatModel,
		Prompt: prompt,
		Stream: false,
	}
	if maxTokens > 0 {
		reqBody.Options = map[string]interface{}{"num_predict": maxTokens}
	}

	var resp generateResponse
	if err := c.post(ctx, "/api/generate", reqBody, &resp); err != nil {
		return "", errors.NewUpstreamUnavailableError("ollama", err)
	}

	c.logger.Debug("generation finished",
		zap.String("model", c.chatModel),
		zap.Int("prompt_tokens", resp.PromptEvalCount),
		zap.Int("completion_tokens", resp.EvalCount),
	)

	return resp.Response, nil
}

// Embed returns the unit-normalized embedding vector for the text
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp embeddingResponse
	if err := c.post(ctx, "/api/embeddings", embeddingRequest{Model: c.embeddingModel, Prompt: text}, &resp); err != nil {
		return nil, errors.NewUpstreamUnavailableError("ollama", err)
	}

	if len(resp.Embedding) == 0 {
		return nil, errors.NewUpstreamUnavailableError("ollama", fmt.Errorf("empty embedding returned"))
	}

	vector := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vector[i] = float32(v)
	}

	openaiadapter.Normalize(vector)
	return vector, nil
}

// Dimension returns the embedding dimension of the configured model
func (c *Client) Dimension() int {
	switch c.embeddingModel {
	case "nomic-embed-text":
		return 768
	case "mxbai-embed-large":
		return 1024
	case "all-minilm":
		return 384
	default:
		return 768
	}
}

// ModelName returns the configured embedding model name
func (c *Client) ModelName() string {
	return c.embeddingModel
}

// post sends a JSON request to the Ollama server and decodes the response
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama error %d: %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
