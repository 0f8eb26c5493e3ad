package emergency

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/lockkit/pkg/eventlog"
	"github.com/dmitrymomot/lockkit/pkg/lock"
	"github.com/dmitrymomot/lockkit/pkg/logger"
)

// Machine is the surface emergencies drive. *lock.Machine satisfies it.
type Machine interface {
	Request(ctx context.Context, event lock.Event, reason string) (eventlog.Event, error)
	Current() lock.State
}

// Report documents one handled emergency for the presentation layer.
type Report struct {
	ID          uuid.UUID      `json:"id"`
	Kind        Kind           `json:"kind"`
	Source      string         `json:"source"`
	Response    Response       `json:"response"`
	Mode        FailsafeMode   `json:"failsafe_mode"`
	Priority    Priority       `json:"priority"`
	Before      lock.State     `json:"state_before"`
	After       lock.State     `json:"state_after"`
	Event       eventlog.Event `json:"event"`
	TriggeredAt time.Time      `json:"triggered_at"`
}

// Manager resolves emergencies against the protocol table and drives the
// lock machine accordingly. Every handled emergency flows through the
// machine's normal request path, so it lands in the event log with full
// reason text like any other transition.
type Manager struct {
	machine   Machine
	protocols Protocols
	log       *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithProtocols replaces the default table. The table is copied and must
// validate.
func WithProtocols(p Protocols) Option {
	return func(m *Manager) {
		m.protocols = maps.Clone(p)
	}
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a Manager driving the given machine.
func NewManager(machine Machine, opts ...Option) (*Manager, error) {
	if machine == nil {
		return nil, fmt.Errorf("%w: machine is required", ErrInvalidProtocol)
	}

	m := &Manager{
		machine:   machine,
		protocols: DefaultProtocols(),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.protocols.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// MustNewManager is like NewManager but panics on error.
func MustNewManager(machine Machine, opts ...Option) *Manager {
	m, err := NewManager(machine, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Protocols returns a copy of the protocol table for inspection.
func (m *Manager) Protocols() Protocols {
	return maps.Clone(m.protocols)
}

// Trigger handles one emergency: it resolves the protocol, issues the
// matching lock event with an "Emergency: ..." reason, and reports what
// happened. A maintain response records a same-state no-op rather than
// staying silent. Unknown kinds fail with *ErrUnknownKind and touch
// nothing.
func (m *Manager) Trigger(ctx context.Context, kind Kind, source string) (Report, error) {
	proto, ok := m.protocols[kind]
	if !ok {
		return Report{}, NewErrUnknownKind(kind)
	}

	before := m.machine.Current()
	event, err := proto.Response.event(before)
	if err != nil {
		return Report{}, err
	}

	m.log.WarnContext(ctx, "emergency triggered",
		slog.String("kind", string(kind)),
		logger.Source(source),
		slog.String("priority", string(proto.Priority)),
		slog.String("response", string(proto.Response)),
		logger.State(before),
	)

	reason := fmt.Sprintf("Emergency: %s (%s)", kind, source)
	e, err := m.machine.Request(ctx, event, reason)
	if err != nil {
		m.log.ErrorContext(ctx, "emergency response failed",
			slog.String("kind", string(kind)),
			logger.Error(err),
		)
		return Report{}, fmt.Errorf("apply emergency response: %w", err)
	}

	return Report{
		ID:          uuid.New(),
		Kind:        kind,
		Source:      source,
		Response:    proto.Response,
		Mode:        proto.Mode,
		Priority:    proto.Priority,
		Before:      before,
		After:       m.machine.Current(),
		Event:       e,
		TriggeredAt: e.Timestamp,
	}, nil
}
