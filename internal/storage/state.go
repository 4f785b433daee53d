package storage

import (
	"context"
	"encoding/json"
	"sync"

	"notekeeper/internal/debug"
)

var logf = debug.Scoped("storage")

// State is a value of type T mirrored to a single KV key as JSON.
//
// The first load reads the key and falls back to the initial value when the
// key is missing or its content cannot be decoded. Every Set writes through
// before the in-memory value changes.
type State[T any] struct {
	kv  KV
	key string

	mu    sync.RWMutex
	value T
}

// LoadState reads key from kv, or uses initial() when the key is absent or
// malformed. Only storage read failures are returned as errors.
func LoadState[T any](ctx context.Context, kv KV, key string, initial func() T) (*State[T], error) {
	s := &State[T]{kv: kv, key: key}

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.value = initial()
		return s, nil
	}

	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		logf("discarding malformed %s: %v", key, err)
		s.value = initial()
		return s, nil
	}
	s.value = decoded
	return s, nil
}

// Key returns the storage key backing this state.
func (s *State[T]) Key() string {
	return s.key
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set serializes v, writes it, and then makes it the current value.
func (s *State[T]) Set(ctx context.Context, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, v)
}

// Update applies fn to the current value and stores the result.
func (s *State[T]) Update(ctx context.Context, fn func(T) T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, fn(s.value))
}

func (s *State[T]) setLocked(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return err
	}
	s.value = v
	return nil
}
