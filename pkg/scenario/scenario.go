package scenario

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/lockkit/pkg/lock"
)

// Step is one scripted request: a symbolic event plus the reason recorded
// with it.
type Step struct {
	Event  lock.Event `yaml:"event" json:"event"`
	Reason string     `yaml:"reason" json:"reason"`
}

// Scenario is a named, ordered script of steps replayed against the state
// machine. Scenario content is external configuration; this package only
// validates and executes it.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

// Validate checks the scenario is structurally runnable: a name, at least
// one step, and no step without an event. Whether each event resolves in a
// particular machine's table is Runner.Validate's job.
func (s Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScenario)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: %q has no steps", ErrInvalidScenario, s.Name)
	}
	for i, step := range s.Steps {
		if step.Event == "" {
			return fmt.Errorf("%w: %q step %d has no event", ErrInvalidScenario, s.Name, i)
		}
	}
	return nil
}

// Load parses one YAML scenario document. Unknown fields are rejected so a
// typo in a scenario file fails loudly instead of silently dropping steps.
func Load(r io.Reader) (Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// LoadFile reads and parses the YAML scenario at path.
func LoadFile(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("open scenario %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Demo returns the built-in demonstration script: a short daily drive that
// exercises manual commands, gear events, and one same-state no-op.
func Demo() Scenario {
	return Scenario{
		Name:        "daily-drive",
		Description: "Unlock, drive to work, park, and lock up again.",
		Steps: []Step{
			{Event: lock.EventUnlock, Reason: "Driver approached with key fob"},
			{Event: lock.EventGearDrive, Reason: "Car shifted to Drive"},
			{Event: lock.EventGearPark, Reason: "Car shifted to Park"},
			{Event: lock.EventLock, Reason: "Driver locked the car"},
			{Event: lock.EventLock, Reason: "Lock button pressed again"},
		},
	}
}
