// Package redis provides Redis-backed adapters
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/infrastructure/config"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
)

const historyKeyPrefix = "chat:history:"

// HistoryStore keeps per-session chat history in Redis lists.
// Each session is one list, capped to a configured length and
// expired after the configured TTL since the last message.
type HistoryStore struct {
	client *redis.Client
	ttl    time.Duration
	limit  int
	logger *zap.Logger
}

// NewClient creates a Redis client from the application config
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// NewHistoryStore creates a chat history store
func NewHistoryStore(client *redis.Client, cfg *config.Config, logger *zap.Logger) outbound.ChatHistoryStore {
	return &HistoryStore{
		client: client,
		ttl:    cfg.Redis.HistoryTTL,
		limit:  cfg.Redis.HistoryLimit,
		logger: logger.Named("chat-history"),
	}
}

// Append adds a message to the session's history
func (s *HistoryStore) Append(ctx context.Context, sessionID string, message outbound.ChatMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode chat message: %w", err)
	}

	key := historyKeyPrefix + sessionID
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	if s.limit > 0 {
		pipe.LTrim(ctx, key, int64(-s.limit), -1)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}

	return nil
}

// History returns the session's messages in chronological order
func (s *HistoryStore) History(ctx context.Context, sessionID string) ([]outbound.ChatMessage, error) {
	entries, err := s.client.LRange(ctx, historyKeyPrefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	messages := make([]outbound.ChatMessage, 0, len(entries))
	for _, entry := range entries {
		var message outbound.ChatMessage
		if err := json.Unmarshal([]byte(entry), &message); err != nil {
			s.logger.Warn("skipping undecodable chat message",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			continue
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// Clear drops the session's history
func (s *HistoryStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, historyKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
