package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

const statePrefix = "oauth2_state:"

// StateStore holds one-shot OAuth2 state nonces in Redis.
// Key format: oauth2_state:<state> -> provider, expiring after the TTL the
// caller picks when saving.
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

var _ ports.StateStore = (*StateStore)(nil)

// Save records the state for the given provider with an expiry.
func (s *StateStore) Save(ctx context.Context, state, provider string, ttl time.Duration) error {
	if err := s.client.Set(ctx, statePrefix+state, provider, ttl).Err(); err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes the state via GETDEL, so two callbacks
// racing on the same state value can never both succeed.
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	provider, err := s.client.GetDel(ctx, statePrefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTokenInvalid
		}
		return "", fmt.Errorf("consume oauth state: %w", err)
	}
	return provider, nil
}
