package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
	apperrors "github.com/saskialein/plan-to-plate/pkg/errors"
)

// MockChatModel is a mock implementation of the chat model port
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

// MockHistoryStore is a mock implementation of the chat history store
type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) Append(ctx context.Context, sessionID string, message outbound.ChatMessage) error {
	args := m.Called(ctx, sessionID, message)
	return args.Error(0)
}

func (m *MockHistoryStore) History(ctx context.Context, sessionID string) ([]outbound.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.ChatMessage), args.Error(1)
}

func (m *MockHistoryStore) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func TestQuery(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("answers and stores both sides of the exchange", func(t *testing.T) {
		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return prompt == "You are a friendly chatbot. Please help the user with their request: How do I dice an onion?"
		}), 100).Return("Cut it in half first.", nil)

		history := new(MockHistoryStore)
		history.On("Append", mock.Anything, "session-1", mock.MatchedBy(func(msg outbound.ChatMessage) bool {
			return msg.Role == "user" && msg.Content == "How do I dice an onion?"
		})).Return(nil)
		history.On("Append", mock.Anything, "session-1", mock.MatchedBy(func(msg outbound.ChatMessage) bool {
			return msg.Role == "assistant" && msg.Content == "Cut it in half first."
		})).Return(nil)

		svc := NewService(model, history, 0, logger)
		answer, err := svc.Query(context.Background(), inbound.ChatQueryCommand{
			SessionID: "session-1",
			Query:     "  How do I dice an onion?  ",
		})

		require.NoError(t, err)
		assert.Equal(t, "Cut it in half first.", answer)
		model.AssertExpectations(t)
		history.AssertExpectations(t)
	})

	t.Run("no session id skips history", func(t *testing.T) {
		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("Sure.", nil)

		history := new(MockHistoryStore)
		svc := NewService(model, history, 100, logger)

		_, err := svc.Query(context.Background(), inbound.ChatQueryCommand{Query: "Hi"})
		require.NoError(t, err)
		history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blank query is rejected", func(t *testing.T) {
		svc := NewService(new(MockChatModel), new(MockHistoryStore), 100, logger)

		_, err := svc.Query(context.Background(), inbound.ChatQueryCommand{Query: "   "})
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("history failure does not fail the query", func(t *testing.T) {
		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("Answer.", nil)

		history := new(MockHistoryStore)
		history.On("Append", mock.Anything, "session-2", mock.Anything).
			Return(assert.AnError)

		svc := NewService(model, history, 100, logger)
		answer, err := svc.Query(context.Background(), inbound.ChatQueryCommand{
			SessionID: "session-2",
			Query:     "Hello",
		})

		require.NoError(t, err)
		assert.Equal(t, "Answer.", answer)
		history.AssertNumberOfCalls(t, "Append", 1)
	})

	t.Run("model failure propagates", func(t *testing.T) {
		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)

		svc := NewService(model, new(MockHistoryStore), 100, logger)
		_, err := svc.Query(context.Background(), inbound.ChatQueryCommand{Query: "Hello"})
		assert.Error(t, err)
	})
}

func TestHistory(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("returns the stored conversation", func(t *testing.T) {
		history := new(MockHistoryStore)
		history.On("History", mock.Anything, "session-3").Return([]outbound.ChatMessage{
			{Role: "user", Content: "Hi"},
			{Role: "assistant", Content: "Hello!"},
		}, nil)

		svc := NewService(new(MockChatModel), history, 100, logger)
		messages, err := svc.History(context.Background(), "session-3")
		require.NoError(t, err)
		assert.Len(t, messages, 2)
	})

	t.Run("clear delegates to the store", func(t *testing.T) {
		history := new(MockHistoryStore)
		history.On("Clear", mock.Anything, "session-4").Return(nil)

		svc := NewService(new(MockChatModel), history, 100, logger)
		require.NoError(t, svc.ClearHistory(context.Background(), "session-4"))
		history.AssertExpectations(t)
	})
}
