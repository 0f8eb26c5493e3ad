// Package analytics reconstructs lock usage statistics purely from the
// event log. The engine owns no state of its own: every Snapshot call reads
// the whole log through the eventlog.Store interface and recomputes from
// scratch, so the numbers always reflect the log as persisted, including
// records written by other processes or edited by hand.
//
// # Derived Statistics
//
//   - Distribution – counts and percentages of events resulting in LOCKED
//     vs UNLOCKED, guarded against an empty log
//   - Hourly histogram – 24 buckets by local hour of day
//   - Daily activity – events per local calendar day
//   - Timeline – events within the configured window (7 days by default),
//     original order preserved
//   - Average session duration – mean gap between consecutive
//     state-changing records; undefined below two change points
//   - Current state, first/last activity, uptime hours
//   - Health – HEALTHY / WARNING / ERROR classification
//
// # Health Classification
//
// Thresholds are configuration, not constants (Config, environment-driven
// via pkg/config):
//
//   - ERROR – the log is unreadable or holds no valid records
//   - WARNING – the malformed-line ratio exceeds MaxParseErrorRatio, or the
//     newest record is older than StaleAfter
//   - HEALTHY – otherwise
//
// Health never fails: an unreadable store degrades to ERROR. Snapshot, by
// contrast, reports unreadable stores as an error wrapping ErrUnavailable
// because its consumers need the full numbers or an explicit failure.
//
// # Usage
//
//	engine := analytics.New(store, analytics.WithConfig(cfg))
//
//	snap, err := engine.Snapshot(ctx)
//	if errors.Is(err, analytics.ErrUnavailable) {
//	    // store unreadable; no statistics this round
//	}
//	fmt.Printf("%s: %d events, %.1f%% locked, health %s\n",
//	    snap.CurrentState, snap.TotalEvents, snap.LockedPercent, snap.Health)
//
// The engine runs safely in parallel with writers; it sees every record
// appended before the read and tolerates a partial record at end of file.
package analytics
