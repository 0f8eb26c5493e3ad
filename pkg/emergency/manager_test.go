package emergency_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lockkit/pkg/emergency"
	"github.com/dmitrymomot/lockkit/pkg/eventlog"
	"github.com/dmitrymomot/lockkit/pkg/lock"
)

type deadStore struct{}

func (deadStore) Append(context.Context, eventlog.Event) error { return eventlog.ErrStoreUnavailable }
func (deadStore) ReadAll(context.Context) (eventlog.ReadResult, error) {
	return eventlog.ReadResult{}, eventlog.ErrStoreUnavailable
}
func (deadStore) Clear(context.Context) error { return eventlog.ErrStoreUnavailable }

func TestNewManager(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil machine", func(t *testing.T) {
		t.Parallel()
		_, err := emergency.NewManager(nil)

		assert.ErrorIs(t, err, emergency.ErrInvalidProtocol)
	})

	t.Run("rejects invalid protocol table", func(t *testing.T) {
		t.Parallel()
		machine := lock.MustNew(eventlog.NewMemoryStore())

		_, err := emergency.NewManager(machine, emergency.WithProtocols(emergency.Protocols{
			emergency.KindFireAlarm: {Response: "evacuate", Mode: emergency.FailSafe, Priority: emergency.PriorityHigh},
		}))

		assert.ErrorIs(t, err, emergency.ErrInvalidProtocol)
	})

	t.Run("must variant panics on error", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			emergency.MustNewManager(nil)
		})
	})

	t.Run("protocol table accessor returns a copy", func(t *testing.T) {
		t.Parallel()
		manager := emergency.MustNewManager(lock.MustNew(eventlog.NewMemoryStore()))

		table := manager.Protocols()
		table[emergency.Kind("zombies")] = emergency.Protocol{}

		_, err := manager.Trigger(context.Background(), emergency.Kind("zombies"), "test")
		assert.True(t, emergency.IsUnknownKindError(err))
	})
}

func TestManager_Trigger(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fire alarm unlocks a locked car", func(t *testing.T) {
		t.Parallel()
		store := eventlog.NewMemoryStore()
		machine := lock.MustNew(store, lock.WithInitialState(lock.StateLocked))
		manager := emergency.MustNewManager(machine)

		report, err := manager.Trigger(ctx, emergency.KindFireAlarm, "smoke detector 2")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, report.ID)
		assert.Equal(t, emergency.KindFireAlarm, report.Kind)
		assert.Equal(t, "smoke detector 2", report.Source)
		assert.Equal(t, emergency.ResponseUnlock, report.Response)
		assert.Equal(t, emergency.FailSafe, report.Mode)
		assert.Equal(t, emergency.PriorityCritical, report.Priority)
		assert.Equal(t, lock.StateLocked, report.Before)
		assert.Equal(t, lock.StateUnlocked, report.After)
		assert.Equal(t, lock.StateUnlocked, machine.Current())
		assert.Equal(t, "Emergency: fire_alarm (smoke detector 2)", report.Event.Reason)
		assert.True(t, report.TriggeredAt.Equal(report.Event.Timestamp))

		res, readErr := store.ReadAll(ctx)
		require.NoError(t, readErr)
		require.Len(t, res.Events, 1)
		assert.Equal(t, "UNLOCKED", res.Events[0].To)
	})

	t.Run("security breach locks an unlocked car", func(t *testing.T) {
		t.Parallel()
		machine := lock.MustNew(eventlog.NewMemoryStore(), lock.WithInitialState(lock.StateUnlocked))
		manager := emergency.MustNewManager(machine)

		report, err := manager.Trigger(ctx, emergency.KindSecurityBreach, "intrusion sensor")

		require.NoError(t, err)
		assert.Equal(t, emergency.ResponseLock, report.Response)
		assert.Equal(t, lock.StateLocked, report.After)
	})

	t.Run("maintain records a same-state no-op", func(t *testing.T) {
		t.Parallel()
		for _, initial := range []lock.State{lock.StateLocked, lock.StateUnlocked} {
			store := eventlog.NewMemoryStore()
			machine := lock.MustNew(store, lock.WithInitialState(initial))
			manager := emergency.MustNewManager(machine)

			report, err := manager.Trigger(ctx, emergency.KindPowerFailure, "power monitor")

			require.NoError(t, err)
			assert.Equal(t, initial, report.Before)
			assert.Equal(t, initial, report.After)
			assert.False(t, report.Event.StateChanged())

			res, readErr := store.ReadAll(ctx)
			require.NoError(t, readErr)
			require.Len(t, res.Events, 1, "maintain must still leave a log record")
			assert.Equal(t, initial.String(), res.Events[0].From)
			assert.Equal(t, initial.String(), res.Events[0].To)
		}
	})

	t.Run("unknown kind touches nothing", func(t *testing.T) {
		t.Parallel()
		store := eventlog.NewMemoryStore()
		machine := lock.MustNew(store)
		manager := emergency.MustNewManager(machine)

		_, err := manager.Trigger(ctx, emergency.Kind("alien_invasion"), "telescope")

		require.Error(t, err)
		assert.True(t, emergency.IsUnknownKindError(err))

		var kindErr *emergency.ErrUnknownKind
		require.ErrorAs(t, err, &kindErr)
		assert.Equal(t, emergency.Kind("alien_invasion"), kindErr.Kind)

		res, readErr := store.ReadAll(ctx)
		require.NoError(t, readErr)
		assert.Empty(t, res.Events)
	})

	t.Run("propagates machine failure", func(t *testing.T) {
		t.Parallel()
		machine := lock.MustNew(deadStore{})
		manager := emergency.MustNewManager(machine)

		_, err := manager.Trigger(ctx, emergency.KindFireAlarm, "smoke detector")

		assert.ErrorIs(t, err, eventlog.ErrStoreUnavailable)
		assert.Equal(t, lock.StateLocked, machine.Current(), "failed response leaves state alone")
	})
}
