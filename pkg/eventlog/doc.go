// Package eventlog provides the append-only store of lock state transitions
// that the rest of the system treats as its single source of truth. Every
// transition the state machine performs is recorded here before the machine
// updates its own view, so the log can always reconstruct what the lock did
// and why.
//
// The package is a pure utility with no infrastructure dependencies: the
// production FileStore writes a flat text file, and MemoryStore backs tests
// and dry runs. Both are goroutine-safe.
//
// # Record Format
//
// One event per line, three comma-separated fields:
//
//	2025-07-26T14:30:00.123456,UNLOCKED → LOCKED,Car shifted to Drive
//
// The timestamp is local time with microsecond precision and no zone
// suffix. The action field joins the previous and new states with " → ".
// The reason is free text and extends to the end of the line, so commas
// inside it are preserved.
//
// # Tolerant Reading
//
// Logs outlive the code that wrote them and are occasionally touched by
// hand, so readers never trust the file:
//
//   - Blank lines are skipped silently.
//   - Lines with missing fields or unparsable timestamps are skipped and
//     counted in ReadResult.ParseErrors.
//   - An action field without the " → " separator is read as a plain state
//     observation (From == To).
//   - An unterminated final line is treated as an append in flight and
//     ignored.
//
// A single damaged line therefore degrades the dataset by exactly one
// record, never the whole log.
//
// # Usage
//
//	import "github.com/dmitrymomot/lockkit/pkg/eventlog"
//
//	store, err := eventlog.NewFileStore("lock_events.log")
//	if err != nil {
//	    // resolve the path or fail startup
//	}
//
//	err = store.Append(ctx, eventlog.Event{
//	    Timestamp: time.Now(),
//	    From:      "UNLOCKED",
//	    To:        "LOCKED",
//	    Reason:    "Car shifted to Drive",
//	})
//
//	res, err := store.ReadAll(ctx)
//	for _, e := range res.Events {
//	    fmt.Println(e.Action(), e.Reason)
//	}
//
// # Error Handling
//
// The package defines sentinel errors for its failure modes:
//
//   - ErrStoreUnavailable – the backing resource cannot be opened, read,
//     or written
//   - ErrMalformedLine – a single record failed to parse (surfaced by
//     ParseLine; store readers count these instead of returning them)
//
// Append never hides failures: when it returns an error the caller must
// treat the transition that produced the event as failed.
package eventlog
