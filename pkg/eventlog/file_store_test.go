package eventlog_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lockkit/pkg/eventlog"
)

func testEvent(reason string) eventlog.Event {
	return eventlog.Event{
		Timestamp: time.Date(2025, 7, 26, 14, 30, 0, 123456000, time.Local),
		From:      "UNLOCKED",
		To:        "LOCKED",
		Reason:    reason,
	}
}

func TestNewFileStore(t *testing.T) {
	t.Parallel()

	t.Run("creates the log file eagerly", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "lock_log.csv")

		store, err := eventlog.NewFileStore(path)

		require.NoError(t, err)
		assert.Equal(t, path, store.Path())
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "logs", "lock_log.csv")

		_, err := eventlog.NewFileStore(path)

		require.NoError(t, err)
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("keeps existing records", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "lock_log.csv")
		require.NoError(t, os.WriteFile(path, []byte("2025-07-26T14:30:00.000000,LOCKED → UNLOCKED,Key fob unlock\n"), 0o644))

		store, err := eventlog.NewFileStore(path)
		require.NoError(t, err)

		res, err := store.ReadAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, res.Events, 1)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()
		_, err := eventlog.NewFileStore("")

		assert.ErrorIs(t, err, eventlog.ErrStoreUnavailable)
	})

	t.Run("must variant panics on error", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			eventlog.MustNewFileStore("")
		})
	})
}

func TestFileStore_Append(t *testing.T) {
	t.Parallel()

	t.Run("appends one line per event", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "lock_log.csv")
		store, err := eventlog.NewFileStore(path)
		require.NoError(t, err)
		ctx := context.Background()

		require.NoError(t, store.Append(ctx, testEvent("Car shifted to Drive")))
		require.NoError(t, store.Append(ctx, testEvent("Car shifted to Park")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t,
			"2025-07-26T14:30:00.123456,UNLOCKED → LOCKED,Car shifted to Drive\n"+
				"2025-07-26T14:30:00.123456,UNLOCKED → LOCKED,Car shifted to Park\n",
			string(data))
	})

	t.Run("respects canceled context", func(t *testing.T) {
		t.Parallel()
		store, err := eventlog.NewFileStore(filepath.Join(t.TempDir(), "lock_log.csv"))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, store.Append(ctx, testEvent("never written")), context.Canceled)
	})

	t.Run("is safe under concurrent writers", func(t *testing.T) {
		t.Parallel()
		store, err := eventlog.NewFileStore(filepath.Join(t.TempDir(), "lock_log.csv"))
		require.NoError(t, err)
		ctx := context.Background()

		const writers = 10
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				assert.NoError(t, store.Append(ctx, testEvent(fmt.Sprintf("writer %d", n))))
			}(i)
		}
		wg.Wait()

		res, err := store.ReadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, res.Events, writers)
		assert.Zero(t, res.ParseErrors)
	})
}

func TestFileStore_ReadAll(t *testing.T) {
	t.Parallel()

	writeLog := func(t *testing.T, content string) *eventlog.FileStore {
		t.Helper()
		path := filepath.Join(t.TempDir(), "lock_log.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		store, err := eventlog.NewFileStore(path)
		require.NoError(t, err)
		return store
	}

	t.Run("returns events in log order", func(t *testing.T) {
		t.Parallel()
		store := writeLog(t,
			"2025-07-26T08:00:00.000000,LOCKED → UNLOCKED,Morning unlock\n"+
				"2025-07-26T08:05:00.000000,UNLOCKED → LOCKED,Car shifted to Drive\n")

		res, err := store.ReadAll(context.Background())

		require.NoError(t, err)
		require.Len(t, res.Events, 2)
		assert.Equal(t, "Morning unlock", res.Events[0].Reason)
		assert.Equal(t, "Car shifted to Drive", res.Events[1].Reason)
		assert.Zero(t, res.ParseErrors)
	})

	t.Run("counts malformed lines without failing", func(t *testing.T) {
		t.Parallel()
		store := writeLog(t,
			"2025-07-26T08:00:00.000000,LOCKED → UNLOCKED,Morning unlock\n"+
				"not a timestamp,LOCKED → UNLOCKED,bad\n"+
				"only-one-field\n"+
				"2025-07-26T08:05:00.000000,UNLOCKED → LOCKED,Car shifted to Drive\n")

		res, err := store.ReadAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, res.Events, 2)
		assert.Equal(t, 2, res.ParseErrors)
	})

	t.Run("skips blank lines silently", func(t *testing.T) {
		t.Parallel()
		store := writeLog(t,
			"\n"+
				"2025-07-26T08:00:00.000000,LOCKED → UNLOCKED,Morning unlock\n"+
				"   \n"+
				"\n")

		res, err := store.ReadAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, res.Events, 1)
		assert.Zero(t, res.ParseErrors)
	})

	t.Run("ignores unterminated final line", func(t *testing.T) {
		t.Parallel()
		store := writeLog(t,
			"2025-07-26T08:00:00.000000,LOCKED → UNLOCKED,Morning unlock\n"+
				"2025-07-26T08:05:00.000000,UNLOCKED → LOCK")

		res, err := store.ReadAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, res.Events, 1)
		assert.Zero(t, res.ParseErrors)
	})

	t.Run("tolerates windows line endings", func(t *testing.T) {
		t.Parallel()
		store := writeLog(t, "2025-07-26T08:00:00.000000,LOCKED → UNLOCKED,Morning unlock\r\n")

		res, err := store.ReadAll(context.Background())

		require.NoError(t, err)
		require.Len(t, res.Events, 1)
		assert.Equal(t, "Morning unlock", res.Events[0].Reason)
	})

	t.Run("reports removed file as unavailable", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "lock_log.csv")
		store, err := eventlog.NewFileStore(path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		_, err = store.ReadAll(context.Background())

		assert.ErrorIs(t, err, eventlog.ErrStoreUnavailable)
	})
}

func TestFileStore_Clear(t *testing.T) {
	t.Parallel()

	t.Run("truncates the log", func(t *testing.T) {
		t.Parallel()
		store, err := eventlog.NewFileStore(filepath.Join(t.TempDir(), "lock_log.csv"))
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, store.Append(ctx, testEvent("Car shifted to Drive")))

		require.NoError(t, store.Clear(ctx))

		res, err := store.ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, res.Events)
	})

	t.Run("appends continue after clear", func(t *testing.T) {
		t.Parallel()
		store, err := eventlog.NewFileStore(filepath.Join(t.TempDir(), "lock_log.csv"))
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, store.Append(ctx, testEvent("before clear")))
		require.NoError(t, store.Clear(ctx))

		require.NoError(t, store.Append(ctx, testEvent("after clear")))

		res, err := store.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, res.Events, 1)
		assert.Equal(t, "after clear", res.Events[0].Reason)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("round trips events in order", func(t *testing.T) {
		t.Parallel()
		store := eventlog.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, store.Append(ctx, testEvent("first")))
		require.NoError(t, store.Append(ctx, testEvent("second")))

		res, err := store.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, res.Events, 2)
		assert.Equal(t, "first", res.Events[0].Reason)
		assert.Equal(t, "second", res.Events[1].Reason)
	})

	t.Run("seeded events are visible", func(t *testing.T) {
		t.Parallel()
		store := eventlog.NewMemoryStore(testEvent("seeded"))

		res, err := store.ReadAll(context.Background())

		require.NoError(t, err)
		require.Len(t, res.Events, 1)

		last, ok := res.Last()
		assert.True(t, ok)
		assert.Equal(t, "seeded", last.Reason)
	})

	t.Run("read returns a copy", func(t *testing.T) {
		t.Parallel()
		store := eventlog.NewMemoryStore(testEvent("original"))
		ctx := context.Background()

		res, err := store.ReadAll(ctx)
		require.NoError(t, err)
		res.Events[0].Reason = "mutated"

		again, err := store.ReadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, "original", again.Events[0].Reason)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		t.Parallel()
		store := eventlog.NewMemoryStore(testEvent("seeded"))
		ctx := context.Background()

		require.NoError(t, store.Clear(ctx))

		res, err := store.ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, res.Events)

		_, ok := res.Last()
		assert.False(t, ok)
	})
}
