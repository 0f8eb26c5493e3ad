package eventlog

import "context"

// Store is the durable, append-only home of transition events and the single
// source of truth everything else derives its view from.
type Store interface {
	// Append serializes the event and durably appends it. When Append
	// returns an error the record may or may not have reached storage;
	// callers must treat the transition that produced it as failed and
	// leave their own state unchanged.
	Append(ctx context.Context, e Event) error

	// ReadAll parses every complete record in the store, in log order.
	// Malformed lines are skipped and counted in ReadResult.ParseErrors
	// rather than failing the read; one bad line never invalidates the
	// log.
	ReadAll(ctx context.Context) (ReadResult, error)

	// Clear irreversibly truncates the store to empty.
	Clear(ctx context.Context) error
}

// ReadResult carries the parsed events in log order together with the number
// of complete lines that could not be parsed.
type ReadResult struct {
	Events      []Event
	ParseErrors int
}

// Last returns the most recent event and true, or a zero event and false
// when the result holds no events.
func (r ReadResult) Last() (Event, bool) {
	if len(r.Events) == 0 {
		return Event{}, false
	}
	return r.Events[len(r.Events)-1], true
}
