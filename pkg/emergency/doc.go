// Package emergency maps emergency situations (fire alarm, security
// breach, power failure, ...) to lock responses through an explicit
// protocol table.
//
// The table mirrors standard vehicle safety policy: life-safety emergencies
// unlock the doors, an active security breach locks them, and
// infrastructure problems (power, battery, connectivity) hold the current
// state. Holding state is still recorded in the event log as a same-state
// transition, so an emergency never passes without a trace.
//
// Responses travel through the state machine's ordinary request path; the
// package adds no second way to move the lock.
//
//	manager := emergency.MustNewManager(machine)
//
//	report, err := manager.Trigger(ctx, emergency.KindFireAlarm, "smoke detector 2")
//	if emergency.IsUnknownKindError(err) {
//	    // no protocol for this kind; nothing happened
//	}
//	fmt.Println(report.Before, "→", report.After, report.Priority)
package emergency
