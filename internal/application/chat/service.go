// Package chat provides the cooking-assistant chat application service
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
	apperrors "github.com/saskialein/plan-to-plate/pkg/errors"
)

// DefaultMaxTokens caps the assistant's reply length
const DefaultMaxTokens = 100

const promptTemplate = "You are a friendly chatbot. Please help the user with their request: %s"

// Service answers one-off cooking questions and keeps per-session history
// in an injected store
type Service struct {
	model     outbound.ChatModel
	history   outbound.ChatHistoryStore
	maxTokens int
	logger    *zap.Logger
}

// NewService creates the chat service
func NewService(
	model outbound.ChatModel,
	history outbound.ChatHistoryStore,
	maxTokens int,
	logger *zap.Logger,
) *Service {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Service{
		model:     model,
		history:   history,
		maxTokens: maxTokens,
		logger:    logger.Named("chat-service"),
	}
}

// Query sends one user message to the assistant and stores the exchange
func (s *Service) Query(ctx context.Context, cmd inbound.ChatQueryCommand) (string, error) {
	query := strings.TrimSpace(cmd.Query)
	if query == "" {
		return "", apperrors.NewValidationError("query is required")
	}

	response, err := s.model.Complete(ctx, fmt.Sprintf(promptTemplate, query), s.maxTokens)
	if err != nil {
		return "", err
	}

	if cmd.SessionID != "" {
		now := time.Now()
		messages := []outbound.ChatMessage{
			{Role: "user", Content: query, Timestamp: now},
			{Role: "assistant", Content: response, Timestamp: now},
		}
		for _, message := range messages {
			if err := s.history.Append(ctx, cmd.SessionID, message); err != nil {
				s.logger.Error("failed to store chat message",
					zap.String("session_id", cmd.SessionID),
					zap.Error(err),
				)
				break
			}
		}
	}

	return response, nil
}

// History returns the session's conversation so far
func (s *Service) History(ctx context.Context, sessionID string) ([]outbound.ChatMessage, error) {
	return s.history.History(ctx, sessionID)
}

// ClearHistory drops the session's conversation
func (s *Service) ClearHistory(ctx context.Context, sessionID string) error {
	return s.history.Clear(ctx, sessionID)
}
