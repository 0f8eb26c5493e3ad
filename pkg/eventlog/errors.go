package eventlog

import "errors"

var (
	// ErrStoreUnavailable is returned when the underlying log resource
	// cannot be opened, read, or written. Append failures are never
	// swallowed: a failed append must fail the transition that produced
	// the event.
	ErrStoreUnavailable = errors.New("event log store is unavailable")

	// ErrMalformedLine is returned by ParseLine for records with a wrong
	// field count or an unparsable timestamp. Store readers skip and count
	// such lines instead of failing the whole read.
	ErrMalformedLine = errors.New("malformed log line")
)
