package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hiibolt/sabi/pkg/state"
)

// RedisStorage implements the Storage interface using Redis for playback
// sessions and the filesystem for static resources (scripts, characters).
type RedisStorage struct {
	client     *redis.Client
	logger     *slog.Logger
	dataDir    string
	sessionTTL time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL, dataDir string, sessionTTL time.Duration, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}
	if sessionTTL <= 0 {
		sessionTTL = 168 * time.Hour
	}

	return &RedisStorage{
		client:     rdb,
		logger:     logger,
		dataDir:    dataDir,
		sessionTTL: sessionTTL,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Playback session operations (Redis-backed)

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (r *RedisStorage) SavePlaybackState(ctx context.Context, id uuid.UUID, st *state.PlaybackState) error {
	st.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(st)
	if err != nil {
		r.logger.Error("Failed to marshal playback state", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal playback state: %w", err)
	}

	cmd := r.client.Set(ctx, sessionKey(id), string(data), r.sessionTTL)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save playback state", "uuid", id, "error", err)
		return fmt.Errorf("failed to save playback state: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadPlaybackState(ctx context.Context, id uuid.UUID) (*state.PlaybackState, error) {
	cmd := r.client.Get(ctx, sessionKey(id))
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Playback state not found", "uuid", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load playback state", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load playback state: %w", err)
	}

	var st state.PlaybackState
	if err := json.Unmarshal([]byte(cmd.Val()), &st); err != nil {
		r.logger.Error("Failed to unmarshal playback state", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal playback state: %w", err)
	}

	return &st, nil
}

func (r *RedisStorage) DeletePlaybackState(ctx context.Context, id uuid.UUID) error {
	cmd := r.client.Del(ctx, sessionKey(id))
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to delete playback state", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete playback state: %w", err)
	}
	return nil
}
