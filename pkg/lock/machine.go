package lock

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/dmitrymomot/lockkit/pkg/eventlog"
)

// Machine is the single authority for the current lock state. Every change
// flows through Request, which validates the event, persists the resulting
// record, and only then updates the in-memory state, so a failed append
// leaves the machine exactly where it was.
type Machine struct {
	store       eventlog.Store
	transitions Transitions
	now         func() time.Time

	mu        sync.RWMutex
	current   State
	lastStamp time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithInitialState sets the state the machine starts in. The default is
// StateLocked, the safe position for a parked car.
func WithInitialState(s State) Option {
	return func(m *Machine) {
		m.current = s
	}
}

// WithTransitions replaces the default event table. The table is copied, so
// later mutation of the argument does not affect the machine.
func WithTransitions(t Transitions) Option {
	return func(m *Machine) {
		m.transitions = maps.Clone(t)
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// New creates a Machine writing through the given store.
func New(store eventlog.Store, opts ...Option) (*Machine, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	m := &Machine{
		store:       store,
		transitions: DefaultTransitions(),
		now:         time.Now,
		current:     StateLocked,
	}
	for _, opt := range opts {
		opt(m)
	}

	if !m.current.IsValid() {
		return nil, fmt.Errorf("%w: initial state %q", ErrInvalidState, m.current)
	}
	if err := m.transitions.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// MustNew is like New but panics on error. Use when the configuration is
// static and a failure means a programming mistake.
func MustNew(store eventlog.Store, opts ...Option) *Machine {
	m, err := New(store, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Request resolves the event against the transition table and, when known,
// records and applies it. Same-state results are recorded too: downstream
// analytics treats every request as an activity signal, and historical logs
// already contain such records.
//
// The record is persisted before the in-memory state changes. When the
// append fails the returned error wraps the store's and the machine keeps
// its previous state; the caller must not assume the record was written.
func (m *Machine) Request(ctx context.Context, event Event, reason string) (eventlog.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.transitions[event]
	if !ok {
		return eventlog.Event{}, NewErrUnknownEvent(event, m.current)
	}

	e := eventlog.Event{
		Timestamp: m.nextStamp(),
		From:      m.current.String(),
		To:        target.String(),
		Reason:    reason,
	}
	if err := m.store.Append(ctx, e); err != nil {
		return eventlog.Event{}, fmt.Errorf("record transition: %w", err)
	}

	m.lastStamp = e.Timestamp
	m.current = target
	return e, nil
}

// Current returns the state the machine holds right now.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CanApply reports whether the event resolves to a target state, without
// recording anything.
func (m *Machine) CanApply(event Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.transitions[event]
	return ok
}

// Transitions returns a copy of the event table for inspection.
func (m *Machine) Transitions() Transitions {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.transitions)
}

// Restore adopts the most recent usable state from the event log, walking
// backwards past records whose resulting state is outside the current
// vocabulary. It returns the state the machine holds afterwards; an
// unreadable store fails the call and changes nothing.
func (m *Machine) Restore(ctx context.Context) (State, error) {
	res, err := m.store.ReadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("restore state: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(res.Events) - 1; i >= 0; i-- {
		s, err := ParseState(res.Events[i].To)
		if err != nil {
			continue
		}
		m.current = s
		// Adopt the record's timestamp too so new appends never step
		// behind restored history.
		if ts := res.Events[i].Timestamp.Truncate(time.Microsecond); ts.After(m.lastStamp) {
			m.lastStamp = ts
		}
		break
	}
	return m.current, nil
}

// nextStamp produces a microsecond-resolution timestamp clamped to be
// non-decreasing across requests, even if the wall clock steps backwards.
func (m *Machine) nextStamp() time.Time {
	ts := m.now().Truncate(time.Microsecond)
	if ts.Before(m.lastStamp) {
		ts = m.lastStamp
	}
	return ts
}
