package inbound

import (
	"context"

	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
)

// ChatService defines the cooking-assistant chat use case
type ChatService interface {
	// Query sends one user message to the assistant and returns its reply.
	// The exchange is appended to the session's history.
	Query(ctx context.Context, cmd ChatQueryCommand) (string, error)

	// History returns the session's conversation so far
	History(ctx context.Context, sessionID string) ([]outbound.ChatMessage, error)

	// ClearHistory drops the session's conversation
	ClearHistory(ctx context.Context, sessionID string) error
}

// ChatQueryCommand carries one chat turn
type ChatQueryCommand struct {
	SessionID string
	Query     string
}
