package scenario

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/lockkit/pkg/eventlog"
	"github.com/dmitrymomot/lockkit/pkg/lock"
	"github.com/dmitrymomot/lockkit/pkg/logger"
)

// Machine is the surface the runner drives. *lock.Machine satisfies it.
type Machine interface {
	Request(ctx context.Context, event lock.Event, reason string) (eventlog.Event, error)
	CanApply(event lock.Event) bool
	Current() lock.State
}

// Result describes one run: which scenario, when, and the events the run
// durably produced. On a failed run Applied holds the events recorded up to
// the failing step; they are not rolled back.
type Result struct {
	ID         uuid.UUID        `json:"id"`
	Scenario   string           `json:"scenario"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Applied    []eventlog.Event `json:"applied"`
}

// Runner replays scenarios against a lock machine, step by step, stopping
// at the first failure.
type Runner struct {
	machine Machine
	pace    *rate.Limiter
	log     *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithPace throttles step application with the given limiter, mimicking the
// cadence of real driving instead of replaying as fast as the log can sync.
// Nil (the default) applies steps back to back.
func WithPace(limiter *rate.Limiter) Option {
	return func(r *Runner) {
		r.pace = limiter
	}
}

// WithLogger attaches a structured logger for per-step progress. The
// default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRunner creates a Runner driving the given machine. Panics when machine
// is nil.
func NewRunner(machine Machine, opts ...Option) *Runner {
	if machine == nil {
		panic("scenario: machine is required")
	}

	r := &Runner{
		machine: machine,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Validate pre-checks the scenario without mutating anything: structural
// validity plus every event resolving in the machine's transition table.
// A clean Validate does not guarantee a clean Run (the store can still
// fail), but it catches every scripting mistake up front.
func (r *Runner) Validate(sc Scenario) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	for i, step := range sc.Steps {
		if !r.machine.CanApply(step.Event) {
			return NewErrStep(sc.Name, i, step.Event,
				lock.NewErrUnknownEvent(step.Event, r.machine.Current()))
		}
	}
	return nil
}

// Run applies every step in order. The first failing step stops the run:
// earlier events are already durably logged and stay that way, the failing
// index and cause come back as an *ErrStep, and the Result carries whatever
// was applied. A nil error means every step was recorded.
func (r *Runner) Run(ctx context.Context, sc Scenario) (Result, error) {
	res := Result{
		ID:        uuid.New(),
		Scenario:  sc.Name,
		StartedAt: time.Now(),
	}

	if err := sc.Validate(); err != nil {
		res.FinishedAt = time.Now()
		return res, err
	}

	log := r.log.With(
		logger.RunID(res.ID.String()),
		logger.Scenario(sc.Name),
	)
	log.InfoContext(ctx, "scenario started", slog.Int("steps", len(sc.Steps)))

	for i, step := range sc.Steps {
		if r.pace != nil {
			if err := r.pace.Wait(ctx); err != nil {
				res.FinishedAt = time.Now()
				return res, NewErrStep(sc.Name, i, step.Event, err)
			}
		}

		e, err := r.machine.Request(ctx, step.Event, step.Reason)
		if err != nil {
			res.FinishedAt = time.Now()
			log.ErrorContext(ctx, "scenario stopped",
				logger.Step(i),
				logger.Event(string(step.Event)),
				logger.Error(err),
			)
			return res, NewErrStep(sc.Name, i, step.Event, err)
		}

		res.Applied = append(res.Applied, e)
		log.InfoContext(ctx, "step applied",
			logger.Step(i),
			slog.String("action", e.Action()),
			logger.Reason(e.Reason),
		)
	}

	res.FinishedAt = time.Now()
	log.InfoContext(ctx, "scenario finished", slog.Int("applied", len(res.Applied)))
	return res, nil
}
