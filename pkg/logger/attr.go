package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// State records a lock state under the key "state".
// If state is nil, it returns an empty Attr.
func State(state any) slog.Attr {
	if state == nil {
		return slog.Attr{}
	}
	return slog.Any("state", state)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Reason records the human-readable trigger context under the key "reason".
func Reason(reason string) slog.Attr {
	return slog.String("reason", reason)
}

// Scenario records the scenario name under the key "scenario".
func Scenario(name string) slog.Attr {
	return slog.String("scenario", name)
}

// RunID records the scenario run identifier under the key "run_id".
// If id is nil, it returns an empty Attr.
func RunID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("run_id", id)
}

// Step records a zero-based scenario step index under the key "step".
func Step(index int) slog.Attr {
	return slog.Int("step", index)
}

// Source records the origin of a request under the key "source".
func Source(source string) slog.Attr {
	return slog.String("source", source)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Path records a filesystem path under the key "path".
func Path(path string) slog.Attr {
	return slog.String("path", path)
}
