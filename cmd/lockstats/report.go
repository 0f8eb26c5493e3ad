package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrymomot/lockkit/pkg/analytics"
	"github.com/dmitrymomot/lockkit/pkg/eventlog"
)

const (
	barWidth    = 40
	recentLimit = 10
)

// writeReport renders the human-readable text report for a snapshot.
func writeReport(w io.Writer, snap analytics.Snapshot) {
	fmt.Fprintf(w, "Lock activity report, generated %s\n\n",
		snap.GeneratedAt.Format(eventlog.TimeLayout))

	fmt.Fprintf(w, "Current state: %s    Health: %s\n\n", snap.CurrentState, snap.Health)

	fmt.Fprintln(w, "Events")
	fmt.Fprintf(w, "  total: %d    lock: %d (%.1f%%)    unlock: %d (%.1f%%)\n",
		snap.TotalEvents, snap.LockEvents, snap.LockedPercent,
		snap.UnlockEvents, snap.UnlockedPercent)
	if snap.ParseErrors > 0 {
		fmt.Fprintf(w, "  malformed lines skipped: %d\n", snap.ParseErrors)
	}
	if snap.TotalEvents > 0 {
		fmt.Fprintf(w, "  first: %s    last: %s    span: %.1fh\n",
			snap.FirstActivity.Format(eventlog.TimeLayout),
			snap.LastActivity.Format(eventlog.TimeLayout),
			snap.UptimeHours)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Sessions")
	if snap.HasSessions() {
		fmt.Fprintf(w, "  count: %d    average duration: %s\n",
			snap.SessionCount, snap.AvgSessionDuration.Round(time.Second))
	} else {
		fmt.Fprintln(w, "  not enough state changes to measure")
	}
	fmt.Fprintln(w)

	writeHourly(w, snap.HourlyActivity)
	writeDaily(w, snap)
	writeRecent(w, snap.Timeline)
}

// writeHourly renders the 24-bucket activity histogram, one row per hour,
// bars scaled to the busiest hour.
func writeHourly(w io.Writer, hours [24]int) {
	max := 0
	for _, n := range hours {
		if n > max {
			max = n
		}
	}

	fmt.Fprintln(w, "Activity by hour")
	if max == 0 {
		fmt.Fprintln(w, "  no events")
		fmt.Fprintln(w)
		return
	}

	for h, n := range hours {
		fmt.Fprintf(w, "  %02d:00 %-*s %d\n", h, barWidth, bar(n, max), n)
	}
	fmt.Fprintln(w)
}

// writeDaily renders the event counts for the seven calendar days ending at
// the snapshot's generation day, including empty days.
func writeDaily(w io.Writer, snap analytics.Snapshot) {
	fmt.Fprintln(w, "Last 7 days")
	for i := 6; i >= 0; i-- {
		day := snap.GeneratedAt.AddDate(0, 0, -i).Format(time.DateOnly)
		fmt.Fprintf(w, "  %s  %d\n", day, snap.DailyActivity[day])
	}
	fmt.Fprintln(w)
}

// writeRecent renders the tail of the timeline in log-line form.
func writeRecent(w io.Writer, timeline []eventlog.Event) {
	if len(timeline) == 0 {
		fmt.Fprintln(w, "Recent events: none in window")
		return
	}

	tail := timeline
	if len(tail) > recentLimit {
		tail = tail[len(tail)-recentLimit:]
	}

	fmt.Fprintf(w, "Recent events (%d in window, showing %d)\n", len(timeline), len(tail))
	for _, ev := range tail {
		fmt.Fprintf(w, "  %s\n", eventlog.FormatLine(ev))
	}
}

// bar returns a histogram bar for n scaled against max. Any nonzero count
// gets at least one mark.
func bar(n, max int) string {
	if n == 0 {
		return ""
	}
	width := n * barWidth / max
	if width == 0 {
		width = 1
	}
	return strings.Repeat("#", width)
}
