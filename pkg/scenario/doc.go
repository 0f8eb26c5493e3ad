// Package scenario replays named, ordered scripts of lock events against
// the state machine, for simulation and testing.
//
// A scenario is external configuration: a YAML document listing steps of
// {event, reason}. The package loads, validates, and executes scenarios but
// does not invent them; Demo is the one built-in script, kept for quick
// demonstrations.
//
// Execution is fail-stop with no rollback. Every applied step is already a
// durable log record when the next one starts, so a failed run reports the
// failing step index (*ErrStep) plus the events applied before it, exactly
// matching what the log now contains.
//
//	sc, err := scenario.LoadFile("scenarios/daily-drive.yaml")
//	if err != nil { ... }
//
//	runner := scenario.NewRunner(machine,
//	    scenario.WithPace(rate.NewLimiter(rate.Every(time.Second), 1)),
//	)
//	if err := runner.Validate(sc); err != nil { ... }
//
//	res, err := runner.Run(ctx, sc)
//	var stepErr *scenario.ErrStep
//	if errors.As(err, &stepErr) {
//	    // res.Applied holds the events recorded before stepErr.Index
//	}
package scenario
