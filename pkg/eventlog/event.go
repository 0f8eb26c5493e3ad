package eventlog

import (
	"time"
)

// Event is a single recorded transition attempt: the state before, the state
// after, and the human-readable reason the transition was requested. Events
// are immutable once persisted and are only ever removed by an explicit
// Clear of the whole store.
//
// From and To are plain strings rather than the lock package's State type on
// purpose: the log layer is lenient and must carry whatever historical or
// operator-edited records contain, while the state machine layer stays
// strict about its own vocabulary.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from_state"`
	To        string    `json:"to_state"`
	Reason    string    `json:"reason"`
}

// Action returns the transition description exactly as it appears in the
// persisted record, e.g. "UNLOCKED → LOCKED".
func (e Event) Action() string {
	return e.From + actionSeparator + e.To
}

// StateChanged reports whether the event changed the lock state, as opposed
// to a recorded same-state no-op.
func (e Event) StateChanged() bool {
	return e.From != e.To
}
