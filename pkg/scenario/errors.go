package scenario

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/lockkit/pkg/lock"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// ErrStep reports the step a run stopped at. Events applied before Index
// are already durably logged; there is no rollback.
type ErrStep struct {
	Scenario string
	Index    int
	Event    lock.Event
	Err      error
}

func (e *ErrStep) Error() string {
	return fmt.Sprintf("scenario '%s' stopped at step %d (event '%s'): %v",
		e.Scenario, e.Index, e.Event, e.Err)
}

func (e *ErrStep) Unwrap() error {
	return e.Err
}

func NewErrStep(scenario string, index int, event lock.Event, err error) *ErrStep {
	return &ErrStep{Scenario: scenario, Index: index, Event: event, Err: err}
}

func IsStepError(err error) bool {
	var e *ErrStep
	return errors.As(err, &e)
}
