// Package watch adds live change notification on top of an event log store.
//
// Notifier implements eventlog.Store by delegation, so it drops into any
// place a store is expected; the state machine writes through it unchanged.
// Consumers such as a dashboard or console echo subscribe and receive each
// appended event as it is recorded.
//
// Delivery is best effort: a subscription whose buffer is full drops events
// and is detached, because a slow reader must never stall a lock transition.
// Consumers needing a complete history read the log itself.
//
//	notifier := watch.New(store)
//	defer notifier.Close()
//
//	machine := lock.MustNew(notifier)
//
//	sub := notifier.Subscribe(ctx)
//	go func() {
//	    for e := range sub.Events() {
//	        fmt.Println(e.Action(), e.Reason)
//	    }
//	}()
package watch
