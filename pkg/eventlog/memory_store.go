package eventlog

import (
	"context"
	"sync"
)

// MemoryStore keeps events in memory with no durability. It exists for tests
// and for ephemeral setups such as scenario dry runs; FileStore is the
// production implementation.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store, optionally pre-seeded
// with events in log order.
func NewMemoryStore(events ...Event) *MemoryStore {
	s := &MemoryStore{}
	s.events = append(s.events, events...)
	return s
}

// Append records the event in memory.
func (s *MemoryStore) Append(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, e)
	return nil
}

// ReadAll returns a copy of the recorded events in log order.
func (s *MemoryStore) ReadAll(ctx context.Context) (ReadResult, error) {
	if err := ctx.Err(); err != nil {
		return ReadResult{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return ReadResult{Events: out}, nil
}

// Clear drops all recorded events.
func (s *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	return nil
}
