package watch

import (
	"sync"

	"github.com/dmitrymomot/lockkit/pkg/eventlog"
)

// Subscription is one consumer's view of the event stream. Events arrive on
// the channel returned by Events; when the subscription is closed, the
// channel is closed and no further events are delivered.
type Subscription struct {
	ch     chan eventlog.Event
	closed bool
	mu     sync.RWMutex
}

func newSubscription(bufferSize int) *Subscription {
	return &Subscription{
		ch: make(chan eventlog.Event, bufferSize),
	}
}

// Events returns the channel delivering appended events. The channel is
// closed when the subscription ends; consumers should range over it.
func (s *Subscription) Events() <-chan eventlog.Event {
	return s.ch
}

// Close ends the subscription and closes its channel. Close is idempotent
// and safe to call multiple times.
func (s *Subscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send delivers the event without blocking. It reports false when the
// subscription is closed or its buffer is full; the caller treats either as
// grounds for removal.
func (s *Subscription) send(e eventlog.Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- e:
		return true
	default:
		return false
	}
}
