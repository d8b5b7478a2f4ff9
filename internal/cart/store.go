package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type kvStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type cartKeyer interface {
	CartKey(token string) string
}

// Store persists cart state in Redis keyed by an opaque client token.
// Every read and write refreshes the sliding TTL.
type Store struct {
	kv    kvStore
	keyer cartKeyer
	ttl   time.Duration
}

// NewStore builds a cart store with the supplied sliding TTL.
func NewStore(kv kvStore, keyer cartKeyer, ttl time.Duration) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	if keyer == nil {
		return nil, fmt.Errorf("cart keyer is required")
	}
	return &Store{kv: kv, keyer: keyer, ttl: ttl}, nil
}

// Load returns the cart for the token. Unknown or expired tokens read as
// an empty cart, never an error.
func (s *Store) Load(ctx context.Context, token string) (State, error) {
	key := s.keyer.CartKey(token)
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return EmptyState(), nil
		}
		return EmptyState(), err
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return EmptyState(), fmt.Errorf("decode cart state: %w", err)
	}
	if state.Lines == nil {
		state.Lines = []Line{}
	}

	if s.ttl > 0 {
		if err := s.kv.Expire(ctx, key, s.ttl); err != nil {
			return state, err
		}
	}
	return state, nil
}

// Save writes the cart state, resetting the sliding TTL.
func (s *Store) Save(ctx context.Context, token string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode cart state: %w", err)
	}
	return s.kv.Set(ctx, s.keyer.CartKey(token), string(payload), s.ttl)
}

// Delete drops the cart for the token.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.kv.Del(ctx, s.keyer.CartKey(token))
}
