package analytics

import "errors"

// ErrUnavailable is returned when the event log store cannot be read at
// all. Partial parse failures never trigger it; they degrade the snapshot
// and are reported through Snapshot.ParseErrors instead.
var ErrUnavailable = errors.New("analytics unavailable")
