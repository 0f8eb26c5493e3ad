// Package lock implements the door lock state machine: a two-state
// (LOCKED/UNLOCKED) finite-state machine driven by symbolic events such as
// "lock", "unlock", or "gear_shifted_to_drive".
//
// The machine is deliberately strict where the log layer is lenient:
//  1. Events are resolved through an explicit, inspectable Transitions table
//     with a single validation point; unknown events are rejected, never
//     silently ignored.
//  2. Every accepted request is persisted to the event log before the
//     in-memory state updates, so the log never lags behind the machine.
//  3. Requests that resolve to the current state are recorded as no-op
//     activity records, a policy historical logs depend on.
//
// # Architecture
//
// Machine serializes all mutation behind one mutex: capturing the previous
// state, stamping the record, appending it, and applying the new state form
// one critical section, so two concurrent requests can never both observe
// the same previous state and diverge. Timestamps carry microsecond
// resolution and are clamped to be non-decreasing even if the wall clock
// steps backwards.
//
// Rich error types with helper predicates (e.g. IsUnknownEventError) let
// callers distinguish a rejected event from a failed append.
//
// # Usage
//
//	import (
//	    "context"
//
//	    "github.com/dmitrymomot/lockkit/pkg/eventlog"
//	    "github.com/dmitrymomot/lockkit/pkg/lock"
//	)
//
//	store := eventlog.MustNewFileStore("lock_events.log")
//	machine := lock.MustNew(store, lock.WithInitialState(lock.StateUnlocked))
//
//	// Adopt the last recorded state after a restart.
//	state, err := machine.Restore(context.Background())
//
//	event, err := machine.Request(ctx, lock.EventGearDrive, "Car shifted to Drive")
//	if lock.IsUnknownEventError(err) {
//	    // event name outside the transition table; state unchanged
//	}
//
// # Error Handling
//
//   - ErrUnknownEvent (IsUnknownEventError) – the event has no target state;
//     nothing was logged
//   - eventlog.ErrStoreUnavailable – the append failed; the machine kept its
//     previous state
//   - ErrInvalidState, ErrInvalidTransitions – constructor rejected the
//     configuration
//
// # Concurrency
//
// All methods are safe for concurrent use. Mutation is serialized behind a
// write lock; Current, CanApply, and Transitions take the read side briefly
// and never block on I/O.
package lock
