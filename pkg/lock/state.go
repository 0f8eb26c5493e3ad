package lock

import (
	"fmt"
	"strings"
)

// State is the lock position as the state machine tracks it.
type State string

const (
	StateLocked   State = "LOCKED"
	StateUnlocked State = "UNLOCKED"

	// StateUnknown is never held by the machine itself; read-side consumers
	// report it when the event log holds no usable history.
	StateUnknown State = "UNKNOWN"
)

// IsValid reports whether s is a state the machine may hold.
func (s State) IsValid() bool {
	return s == StateLocked || s == StateUnlocked
}

func (s State) String() string {
	return string(s)
}

// ParseState converts raw text into a State. It tolerates casing and
// surrounding whitespace but never invents a value: text outside the known
// vocabulary fails with ErrInvalidState.
func ParseState(raw string) (State, error) {
	switch State(strings.ToUpper(strings.TrimSpace(raw))) {
	case StateLocked:
		return StateLocked, nil
	case StateUnlocked:
		return StateUnlocked, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidState, raw)
	}
}
