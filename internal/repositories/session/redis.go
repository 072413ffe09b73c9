package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sotiny/sotiny/internal/models"
)

const (
	// Key prefix for Redis
	sessionKeyPrefix = "draft_session:"
)

// ErrSessionNotFound is returned when a session is not found. Expired
// and deleted sessions are indistinguishable: Redis has already
// dropped the key either way.
var ErrSessionNotFound = errors.New("session not found")

// ErrVersionConflict is returned when a compare-and-swap loses to a
// concurrent write
var ErrVersionConflict = errors.New("session version conflict")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSession persists a session to Redis with its TTL. The key
// expires on its own if the session is never completed; expiry is
// enforced by the store, not by application code.
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	payload, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Session.ID)
	if err := r.client.Set(ctx, key, payload, input.Session.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.DraftSession, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	key := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	payload, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.DraftSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// CompareAndSwapSession persists a session only if the stored version
// still matches the expected version. The WATCH/MULTI/EXEC pair makes
// the version check and the write a single atomic step on the server,
// so concurrent swaps against the same session resolve to exactly one
// winner. The stored TTL is preserved across the rewrite.
func (r *redisRepository) CompareAndSwapSession(ctx context.Context, input *CompareAndSwapSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	key := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Session.ID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		var stored models.DraftSession
		if err := json.Unmarshal([]byte(payload), &stored); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		if stored.Version != input.ExpectedVersion {
			return ErrVersionConflict
		}

		newPayload, err := json.Marshal(input.Session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newPayload, redis.KeepTTL)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		// The watched key changed between read and write
		return ErrVersionConflict
	}

	return err
}

// DeleteSession removes a session from Redis. Deleting an absent key
// is not an error.
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	key := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
