package lock

import (
	"errors"
	"fmt"
)

var (
	ErrNilStore           = errors.New("event log store is required")
	ErrInvalidState       = errors.New("invalid lock state")
	ErrInvalidTransitions = errors.New("invalid transition table")
)

// ErrUnknownEvent indicates the requested event has no target state in the
// transition table. The machine's state is unchanged and nothing is logged.
type ErrUnknownEvent struct {
	Event Event
	State State
}

func (e *ErrUnknownEvent) Error() string {
	return fmt.Sprintf("unknown event '%s' in state '%s'", e.Event, e.State)
}

func NewErrUnknownEvent(event Event, state State) *ErrUnknownEvent {
	return &ErrUnknownEvent{Event: event, State: state}
}

func IsUnknownEventError(err error) bool {
	var e *ErrUnknownEvent
	return errors.As(err, &e)
}
