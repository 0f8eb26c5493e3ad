package eventlog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lockkit/pkg/eventlog"
)

func TestFormatLine(t *testing.T) {
	t.Parallel()

	t.Run("formats canonical record", func(t *testing.T) {
		t.Parallel()
		e := eventlog.Event{
			Timestamp: time.Date(2025, 7, 26, 14, 30, 0, 123456000, time.Local),
			From:      "UNLOCKED",
			To:        "LOCKED",
			Reason:    "Car shifted to Drive",
		}

		line := eventlog.FormatLine(e)

		assert.Equal(t, "2025-07-26T14:30:00.123456,UNLOCKED → LOCKED,Car shifted to Drive", line)
	})

	t.Run("pads missing fraction to six digits", func(t *testing.T) {
		t.Parallel()
		e := eventlog.Event{
			Timestamp: time.Date(2025, 7, 26, 14, 30, 0, 0, time.Local),
			From:      "LOCKED",
			To:        "UNLOCKED",
			Reason:    "Driver door handle pulled",
		}

		line := eventlog.FormatLine(e)

		assert.Equal(t, "2025-07-26T14:30:00.000000,LOCKED → UNLOCKED,Driver door handle pulled", line)
	})

	t.Run("keeps commas in reason", func(t *testing.T) {
		t.Parallel()
		e := eventlog.Event{
			Timestamp: time.Date(2025, 7, 26, 14, 30, 0, 0, time.Local),
			From:      "LOCKED",
			To:        "LOCKED",
			Reason:    "Ignition on, brake pressed, gear in Drive",
		}

		parsed, err := eventlog.ParseLine(eventlog.FormatLine(e))

		require.NoError(t, err)
		assert.Equal(t, "Ignition on, brake pressed, gear in Drive", parsed.Reason)
	})

	t.Run("flattens newlines in reason", func(t *testing.T) {
		t.Parallel()
		e := eventlog.Event{
			Timestamp: time.Date(2025, 7, 26, 14, 30, 0, 0, time.Local),
			From:      "LOCKED",
			To:        "UNLOCKED",
			Reason:    "multi\nline\r\nreason",
		}

		line := eventlog.FormatLine(e)

		assert.NotContains(t, line, "\n")
		assert.NotContains(t, line, "\r")
	})
}

func TestParseLine(t *testing.T) {
	t.Parallel()

	t.Run("parses canonical record", func(t *testing.T) {
		t.Parallel()
		e, err := eventlog.ParseLine("2025-07-26T14:30:00.123456,UNLOCKED → LOCKED,Car shifted to Drive")

		require.NoError(t, err)
		assert.True(t, e.Timestamp.Equal(time.Date(2025, 7, 26, 14, 30, 0, 123456000, time.Local)))
		assert.Equal(t, "UNLOCKED", e.From)
		assert.Equal(t, "LOCKED", e.To)
		assert.Equal(t, "Car shifted to Drive", e.Reason)
		assert.Equal(t, "UNLOCKED → LOCKED", e.Action())
		assert.True(t, e.StateChanged())
	})

	t.Run("accepts timestamp without fraction", func(t *testing.T) {
		t.Parallel()
		e, err := eventlog.ParseLine("2025-07-26T14:30:00,LOCKED → UNLOCKED,Remote unlock")

		require.NoError(t, err)
		assert.True(t, e.Timestamp.Equal(time.Date(2025, 7, 26, 14, 30, 0, 0, time.Local)))
	})

	t.Run("accepts timestamp with zone offset", func(t *testing.T) {
		t.Parallel()
		e, err := eventlog.ParseLine("2025-07-26T14:30:00.500000+02:00,LOCKED → UNLOCKED,Remote unlock")

		require.NoError(t, err)
		want := time.Date(2025, 7, 26, 14, 30, 0, 500000000, time.FixedZone("", 2*60*60))
		assert.True(t, e.Timestamp.Equal(want))
	})

	t.Run("reads action without separator as state observation", func(t *testing.T) {
		t.Parallel()
		e, err := eventlog.ParseLine("2025-07-26T14:30:00.000000,LOCKED,Initial state recorded")

		require.NoError(t, err)
		assert.Equal(t, "LOCKED", e.From)
		assert.Equal(t, "LOCKED", e.To)
		assert.False(t, e.StateChanged())
	})

	t.Run("keeps everything after second comma as reason", func(t *testing.T) {
		t.Parallel()
		e, err := eventlog.ParseLine("2025-07-26T14:30:00.000000,UNLOCKED → LOCKED,speed 12 km/h, all doors closed")

		require.NoError(t, err)
		assert.Equal(t, "speed 12 km/h, all doors closed", e.Reason)
	})

	t.Run("rejects record with missing fields", func(t *testing.T) {
		t.Parallel()
		_, err := eventlog.ParseLine("2025-07-26T14:30:00.000000,UNLOCKED → LOCKED")

		assert.ErrorIs(t, err, eventlog.ErrMalformedLine)
	})

	t.Run("rejects unparsable timestamp", func(t *testing.T) {
		t.Parallel()
		_, err := eventlog.ParseLine("yesterday about noon,UNLOCKED → LOCKED,Car shifted to Drive")

		assert.ErrorIs(t, err, eventlog.ErrMalformedLine)
	})

	t.Run("allows empty reason", func(t *testing.T) {
		t.Parallel()
		e, err := eventlog.ParseLine("2025-07-26T14:30:00.000000,UNLOCKED → LOCKED,")

		require.NoError(t, err)
		assert.Empty(t, e.Reason)
	})
}
