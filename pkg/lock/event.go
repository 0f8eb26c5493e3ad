package lock

import (
	"fmt"
	"slices"
)

// Event is a symbolic trigger the state machine resolves to a target state.
type Event string

const (
	// Manual commands force their named state regardless of gear.
	EventLock   Event = "lock"
	EventUnlock Event = "unlock"

	// Gear events mirror the vehicle's shifter: moving gears lock the
	// doors, resting gears release them.
	EventGearDrive   Event = "gear_shifted_to_drive"
	EventGearReverse Event = "gear_shifted_to_reverse"
	EventGearPark    Event = "gear_shifted_to_park"
	EventGearNeutral Event = "gear_shifted_to_neutral"
)

// Transitions maps each known event to the state it drives the lock into.
// The mapping is a plain inspectable table: one lookup decides both validity
// and target, giving a single validation point for unknown events.
type Transitions map[Event]State

// DefaultTransitions returns the standard vehicle mapping.
func DefaultTransitions() Transitions {
	return Transitions{
		EventLock:        StateLocked,
		EventUnlock:      StateUnlocked,
		EventGearDrive:   StateLocked,
		EventGearReverse: StateLocked,
		EventGearPark:    StateUnlocked,
		EventGearNeutral: StateUnlocked,
	}
}

// Validate checks that every entry names a non-empty event and targets a
// valid state.
func (t Transitions) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidTransitions)
	}
	for event, target := range t {
		if event == "" {
			return fmt.Errorf("%w: empty event name", ErrInvalidTransitions)
		}
		if !target.IsValid() {
			return fmt.Errorf("%w: event %q targets %q", ErrInvalidTransitions, event, target)
		}
	}
	return nil
}

// Events returns the known event names in sorted order.
func (t Transitions) Events() []Event {
	events := make([]Event, 0, len(t))
	for e := range t {
		events = append(events, e)
	}
	slices.Sort(events)
	return events
}
