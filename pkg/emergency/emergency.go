package emergency

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/lockkit/pkg/lock"
)

// Kind names an emergency situation the system knows how to respond to.
type Kind string

const (
	KindFireAlarm           Kind = "fire_alarm"
	KindMedicalEmergency    Kind = "medical_emergency"
	KindPowerFailure        Kind = "power_failure"
	KindSecurityBreach      Kind = "security_breach"
	KindSystemMalfunction   Kind = "system_malfunction"
	KindNaturalDisaster     Kind = "natural_disaster"
	KindLockoutEmergency    Kind = "lockout_emergency"
	KindBatteryCritical     Kind = "battery_critical"
	KindConnectivityFailure Kind = "connectivity_failure"
)

// Response is the lock-level action an emergency resolves to.
type Response string

const (
	// ResponseUnlock releases the doors so people can get out or in.
	ResponseUnlock Response = "unlock"
	// ResponseLock secures the doors against an active threat.
	ResponseLock Response = "lock"
	// ResponseMaintain holds the current state, recorded as a no-op so the
	// emergency still leaves a trace in the log.
	ResponseMaintain Response = "maintain"
)

// event resolves the response to the lock event implementing it given the
// current state.
func (r Response) event(current lock.State) (lock.Event, error) {
	switch r {
	case ResponseLock:
		return lock.EventLock, nil
	case ResponseUnlock:
		return lock.EventUnlock, nil
	case ResponseMaintain:
		if current == lock.StateUnlocked {
			return lock.EventUnlock, nil
		}
		return lock.EventLock, nil
	default:
		return "", fmt.Errorf("%w: response %q", ErrInvalidProtocol, r)
	}
}

// FailsafeMode describes what the lock does when the system itself fails
// mid-emergency.
type FailsafeMode string

const (
	// FailSecure keeps the lock locked on failure.
	FailSecure FailsafeMode = "fail_secure"
	// FailSafe unlocks on failure.
	FailSafe FailsafeMode = "fail_safe"
	// FailMaintain holds the current state on failure.
	FailMaintain FailsafeMode = "fail_maintain"
)

// Priority ranks how urgently an emergency must be handled.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Protocol is one emergency's scripted reaction.
type Protocol struct {
	Response Response     `json:"response"`
	Mode     FailsafeMode `json:"failsafe_mode"`
	Priority Priority     `json:"priority"`
}

// Protocols maps each emergency kind to its reaction. Like the lock's
// transition table it is plain data: inspectable, testable entry by entry,
// and replaceable as a whole.
type Protocols map[Kind]Protocol

// DefaultProtocols returns the standard table. Life-safety emergencies
// unlock, an active breach locks, and infrastructure degradation holds the
// current state.
func DefaultProtocols() Protocols {
	return Protocols{
		KindFireAlarm:           {Response: ResponseUnlock, Mode: FailSafe, Priority: PriorityCritical},
		KindMedicalEmergency:    {Response: ResponseUnlock, Mode: FailSafe, Priority: PriorityCritical},
		KindNaturalDisaster:     {Response: ResponseUnlock, Mode: FailSafe, Priority: PriorityCritical},
		KindSecurityBreach:      {Response: ResponseLock, Mode: FailSecure, Priority: PriorityCritical},
		KindSystemMalfunction:   {Response: ResponseUnlock, Mode: FailSafe, Priority: PriorityHigh},
		KindPowerFailure:        {Response: ResponseMaintain, Mode: FailMaintain, Priority: PriorityHigh},
		KindLockoutEmergency:    {Response: ResponseUnlock, Mode: FailSafe, Priority: PriorityMedium},
		KindBatteryCritical:     {Response: ResponseMaintain, Mode: FailMaintain, Priority: PriorityMedium},
		KindConnectivityFailure: {Response: ResponseMaintain, Mode: FailMaintain, Priority: PriorityLow},
	}
}

// Validate checks that every entry carries a known response, mode, and
// priority.
func (p Protocols) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidProtocol)
	}
	for kind, proto := range p {
		if kind == "" {
			return fmt.Errorf("%w: empty kind", ErrInvalidProtocol)
		}
		switch proto.Response {
		case ResponseUnlock, ResponseLock, ResponseMaintain:
		default:
			return fmt.Errorf("%w: kind %q response %q", ErrInvalidProtocol, kind, proto.Response)
		}
		switch proto.Mode {
		case FailSecure, FailSafe, FailMaintain:
		default:
			return fmt.Errorf("%w: kind %q failsafe mode %q", ErrInvalidProtocol, kind, proto.Mode)
		}
		switch proto.Priority {
		case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		default:
			return fmt.Errorf("%w: kind %q priority %q", ErrInvalidProtocol, kind, proto.Priority)
		}
	}
	return nil
}

// Kinds returns the known emergency kinds in sorted order.
func (p Protocols) Kinds() []Kind {
	kinds := make([]Kind, 0, len(p))
	for k := range p {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
