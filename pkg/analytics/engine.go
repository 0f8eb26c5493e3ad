package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/lockkit/pkg/eventlog"
	"github.com/dmitrymomot/lockkit/pkg/lock"
)

// Engine derives statistics from the event log. It only ever reads: every
// snapshot is recomputed from scratch against the store's current contents,
// nothing is cached, and concurrent writers are tolerated by the store's
// own read semantics.
type Engine struct {
	store eventlog.Store
	cfg   Config
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default thresholds and window.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine reading the given store. Panics when store is nil.
func New(store eventlog.Store, opts ...Option) *Engine {
	if store == nil {
		panic("analytics: event log store is required")
	}

	e := &Engine{
		store: store,
		cfg:   DefaultConfig(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot reads the whole log and computes a fresh statistics snapshot.
// A store read failure fails the snapshot with an error wrapping
// ErrUnavailable; malformed lines merely raise Snapshot.ParseErrors.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	res, err := e.store.ReadAll(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return e.compute(res), nil
}

// Health reports the classification alone. Unlike Snapshot it degrades an
// unreadable store to HealthError instead of failing, so a status indicator
// always has something to show.
func (e *Engine) Health(ctx context.Context) HealthStatus {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return HealthError
	}
	return snap.Health
}

func (e *Engine) compute(res eventlog.ReadResult) Snapshot {
	now := e.now()
	snap := Snapshot{
		GeneratedAt:   now,
		CurrentState:  lock.StateUnknown,
		TotalEvents:   len(res.Events),
		ParseErrors:   res.ParseErrors,
		DailyActivity: make(map[string]int),
	}

	if last, ok := res.Last(); ok {
		if s, err := lock.ParseState(last.To); err == nil {
			snap.CurrentState = s
		}
		snap.FirstActivity = res.Events[0].Timestamp
		snap.LastActivity = last.Timestamp
		snap.UptimeHours = last.Timestamp.Sub(res.Events[0].Timestamp).Hours()
	}

	windowStart := now.Add(-e.cfg.TimelineWindow)
	for _, ev := range res.Events {
		switch ev.To {
		case lock.StateLocked.String():
			snap.LockEvents++
		case lock.StateUnlocked.String():
			snap.UnlockEvents++
		}

		snap.HourlyActivity[ev.Timestamp.Hour()]++
		snap.DailyActivity[ev.Timestamp.Format(time.DateOnly)]++

		if e.cfg.TimelineWindow > 0 && !ev.Timestamp.Before(windowStart) && !ev.Timestamp.After(now) {
			snap.Timeline = append(snap.Timeline, ev)
		}
	}

	if snap.TotalEvents > 0 {
		snap.LockedPercent = float64(snap.LockEvents) / float64(snap.TotalEvents) * 100
		snap.UnlockedPercent = float64(snap.UnlockEvents) / float64(snap.TotalEvents) * 100
	}

	snap.SessionCount, snap.AvgSessionDuration = sessions(res.Events)
	snap.Health = e.classify(res, now)
	return snap
}

// sessions walks the change points of the log: the first record opens one,
// and every record whose resulting state differs from the previous change
// point opens the next. The average spans the gaps between consecutive
// change points; fewer than two change points leave it undefined.
//
// The comparison uses the raw recorded state text, so historical records
// with states outside today's vocabulary still delimit sessions.
func sessions(events []eventlog.Event) (int, time.Duration) {
	var (
		changes int
		state   string
		prev    time.Time
		total   time.Duration
	)
	for _, ev := range events {
		if changes == 0 || ev.To != state {
			if changes > 0 {
				total += ev.Timestamp.Sub(prev)
			}
			changes++
			state = ev.To
			prev = ev.Timestamp
		}
	}

	if changes < 2 {
		return 0, 0
	}
	return changes - 1, total / time.Duration(changes-1)
}

func (e *Engine) classify(res eventlog.ReadResult, now time.Time) HealthStatus {
	// An empty log where history is expected is an error, not a warning:
	// either nothing was ever recorded or everything was lost.
	if len(res.Events) == 0 {
		return HealthError
	}

	if e.cfg.MaxParseErrorRatio > 0 {
		ratio := float64(res.ParseErrors) / float64(len(res.Events)+res.ParseErrors)
		if ratio > e.cfg.MaxParseErrorRatio {
			return HealthWarning
		}
	}

	if e.cfg.StaleAfter > 0 {
		if last, ok := res.Last(); ok && now.Sub(last.Timestamp) > e.cfg.StaleAfter {
			return HealthWarning
		}
	}

	return HealthHealthy
}
