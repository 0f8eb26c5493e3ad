package eventlog

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

const (
	// TimeLayout is the timestamp format written to persisted records:
	// ISO-8601 local time with microsecond precision and no zone suffix.
	TimeLayout = "2006-01-02T15:04:05.000000"

	// actionSeparator joins the from and to states in the action field.
	actionSeparator = " → "

	fieldCount = 3
)

// FormatLine serializes an event into its wire form without the trailing
// newline: `<timestamp>,<FROM> → <TO>,<reason>`. Newlines inside the reason
// are replaced with spaces so one event always occupies exactly one line.
func FormatLine(e Event) string {
	reason := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(e.Reason)
	return e.Timestamp.Format(TimeLayout) + "," + e.From + actionSeparator + e.To + "," + reason
}

// ParseLine parses one wire-format line into an Event. The reason is
// everything after the second comma, so commas inside reasons survive a
// round trip. An action field without the ` → ` separator yields an event
// with From == To, matching how older logs recorded plain state
// observations.
func ParseLine(line string) (Event, error) {
	parts := strings.SplitN(line, ",", fieldCount)
	if len(parts) < fieldCount {
		return Event{}, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedLine, fieldCount, len(parts))
	}

	ts, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return Event{}, fmt.Errorf("%w: timestamp %q: %v", ErrMalformedLine, parts[0], err)
	}

	from, to := splitAction(parts[1])

	return Event{
		Timestamp: ts,
		From:      from,
		To:        to,
		Reason:    parts[2],
	}, nil
}

// parseTimestamp accepts the canonical layout plus the variants operators
// and older tooling have produced: missing fractional seconds and explicit
// zone offsets. Zone-less values are interpreted in local time, the zone
// they were written in.
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// splitAction separates the action field into its from and to states. The
// fallback for separator-less values reads the whole field as a single
// state, recorded as a transition to itself.
func splitAction(action string) (from, to string) {
	if i := strings.Index(action, actionSeparator); i >= 0 {
		return strings.TrimSpace(action[:i]), strings.TrimSpace(action[i+len(actionSeparator):])
	}
	s := strings.TrimSpace(action)
	return s, s
}

// parseLog walks complete lines only: a trailing chunk without a newline is
// an append still in flight and is ignored rather than counted as corrupt.
// Blank lines are skipped silently; any other unparsable line increments
// ParseErrors and never fails the read.
func parseLog(data []byte) ReadResult {
	var res ReadResult
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(data[:i]), "\r")
		data = data[i+1:]

		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := ParseLine(line)
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Events = append(res.Events, e)
	}
	return res
}
