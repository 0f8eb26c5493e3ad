package analytics

import (
	"time"

	"github.com/dmitrymomot/lockkit/pkg/eventlog"
	"github.com/dmitrymomot/lockkit/pkg/lock"
)

// HealthStatus is a coarse classification of the log's condition, derived
// from parse errors and staleness, not from the lock hardware.
type HealthStatus string

const (
	HealthHealthy HealthStatus = "HEALTHY"
	HealthWarning HealthStatus = "WARNING"
	HealthError   HealthStatus = "ERROR"
)

// Snapshot is one self-contained statistics computation over the event log.
// Snapshots are ephemeral: recomputed on demand, never persisted, and never
// updated in place. JSON tags exist so an export layer can serialize the
// snapshot as is; the engine itself performs no serialization.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`

	// CurrentState is the resulting state of the newest record, or
	// lock.StateUnknown when the log is empty or its newest record names a
	// state outside the vocabulary.
	CurrentState lock.State `json:"current_state"`

	TotalEvents  int `json:"total_events"`
	LockEvents   int `json:"lock_events"`
	UnlockEvents int `json:"unlock_events"`

	// ParseErrors counts the malformed lines skipped while reading. It is
	// carried in every snapshot so consumers can surface degraded data.
	ParseErrors int `json:"parse_errors"`

	LockedPercent   float64 `json:"locked_percent"`
	UnlockedPercent float64 `json:"unlocked_percent"`

	// HourlyActivity buckets events by local hour of day.
	HourlyActivity [24]int `json:"hourly_activity"`

	// DailyActivity counts events per local calendar day, keyed YYYY-MM-DD.
	DailyActivity map[string]int `json:"daily_activity"`

	// Timeline holds the events inside the configured window (newest
	// portion of the log), in original order.
	Timeline []eventlog.Event `json:"timeline"`

	// SessionCount is the number of intervals between consecutive
	// state-changing records. Zero means the average is undefined.
	SessionCount       int           `json:"session_count"`
	AvgSessionDuration time.Duration `json:"avg_session_duration"`

	FirstActivity time.Time `json:"first_activity"`
	LastActivity  time.Time `json:"last_activity"`
	UptimeHours   float64   `json:"uptime_hours"`

	Health HealthStatus `json:"health"`
}

// HasSessions reports whether enough state changes exist for the average
// session duration to be defined.
func (s Snapshot) HasSessions() bool {
	return s.SessionCount > 0
}

// RecentActivity returns the timeline events no older than d, measured
// against the snapshot's generation time.
func (s Snapshot) RecentActivity(d time.Duration) []eventlog.Event {
	cutoff := s.GeneratedAt.Add(-d)

	var out []eventlog.Event
	for _, ev := range s.Timeline {
		if !ev.Timestamp.Before(cutoff) {
			out = append(out, ev)
		}
	}
	return out
}
