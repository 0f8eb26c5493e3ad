package scenario_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lockkit/pkg/lock"
	"github.com/dmitrymomot/lockkit/pkg/scenario"
)

const sampleYAML = `name: morning-departure
description: Leaving for work.
steps:
  - event: unlock
    reason: Driver approached with key fob
  - event: gear_shifted_to_drive
    reason: Car shifted to Drive
`

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("parses a scenario document", func(t *testing.T) {
		t.Parallel()
		sc, err := scenario.Load(strings.NewReader(sampleYAML))

		require.NoError(t, err)
		assert.Equal(t, "morning-departure", sc.Name)
		assert.Equal(t, "Leaving for work.", sc.Description)
		require.Len(t, sc.Steps, 2)
		assert.Equal(t, lock.EventUnlock, sc.Steps[0].Event)
		assert.Equal(t, "Driver approached with key fob", sc.Steps[0].Reason)
		assert.Equal(t, lock.EventGearDrive, sc.Steps[1].Event)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		doc := "name: typo\nsteps:\n  - evnt: lock\n    reason: oops\n"

		_, err := scenario.Load(strings.NewReader(doc))

		assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
	})

	t.Run("rejects scenario without steps", func(t *testing.T) {
		t.Parallel()
		_, err := scenario.Load(strings.NewReader("name: empty\nsteps: []\n"))

		assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
	})

	t.Run("rejects scenario without name", func(t *testing.T) {
		t.Parallel()
		doc := "steps:\n  - event: lock\n    reason: r\n"

		_, err := scenario.Load(strings.NewReader(doc))

		assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
	})

	t.Run("rejects step without event", func(t *testing.T) {
		t.Parallel()
		doc := "name: holes\nsteps:\n  - reason: no event here\n"

		_, err := scenario.Load(strings.NewReader(doc))

		assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := scenario.Load(strings.NewReader("name: [unclosed"))

		assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("loads from disk", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

		sc, err := scenario.LoadFile(path)

		require.NoError(t, err)
		assert.Equal(t, "morning-departure", sc.Name)
	})

	t.Run("fails on missing file", func(t *testing.T) {
		t.Parallel()
		_, err := scenario.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Error(t, err)
	})
}

func TestDemo(t *testing.T) {
	t.Parallel()

	t.Run("is structurally valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, scenario.Demo().Validate())
	})

	t.Run("uses only events from the default table", func(t *testing.T) {
		t.Parallel()
		table := lock.DefaultTransitions()
		for i, step := range scenario.Demo().Steps {
			_, ok := table[step.Event]
			assert.True(t, ok, "step %d event %q", i, step.Event)
		}
	})

	t.Run("contains a same-state no-op", func(t *testing.T) {
		t.Parallel()
		table := lock.DefaultTransitions()

		// Walk the demo as a fold and look for a step that lands on the
		// state it started in.
		state := table[scenario.Demo().Steps[0].Event]
		var noop bool
		for _, step := range scenario.Demo().Steps[1:] {
			target := table[step.Event]
			if target == state {
				noop = true
			}
			state = target
		}
		assert.True(t, noop, "demo should exercise the no-op logging policy")
	})
}
