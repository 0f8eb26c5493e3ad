package watch

import (
	"context"
	"sync"

	"github.com/dmitrymomot/lockkit/pkg/eventlog"
)

// Notifier decorates an eventlog.Store with live fan-out: every successfully
// appended event is also delivered to all active subscriptions. The log
// remains the source of truth; subscriptions are a best-effort stream and
// slow consumers drop events rather than ever blocking a writer.
//
// All methods are safe for concurrent use.
type Notifier struct {
	store      eventlog.Store
	bufferSize int

	subscribers map[*Subscription]struct{}
	closed      bool
	done        chan struct{}
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

var _ eventlog.Store = (*Notifier)(nil)

// Option configures a Notifier.
type Option func(*Notifier)

// WithBufferSize sets the per-subscription channel buffer. A minimum of 1 is
// enforced; a zero buffer would make every send blocking and defeat the
// non-blocking design.
func WithBufferSize(n int) Option {
	return func(w *Notifier) {
		w.bufferSize = max(n, 1)
	}
}

// New wraps the given store. Panics when store is nil: a notifier without a
// log to decorate is a programming mistake, not a runtime condition.
func New(store eventlog.Store, opts ...Option) *Notifier {
	if store == nil {
		panic("watch: event log store is required")
	}

	w := &Notifier{
		store:       store,
		bufferSize:  16,
		subscribers: make(map[*Subscription]struct{}),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Subscribe creates a subscription receiving every event appended from now
// on. The subscription is cleaned up automatically when ctx is canceled. If
// the notifier is already closed, the returned subscription is closed too.
func (w *Notifier) Subscribe(ctx context.Context) *Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		sub := newSubscription(w.bufferSize)
		_ = sub.Close()
		return sub
	}

	sub := newSubscription(w.bufferSize)
	w.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		w.cleanupWg.Add(1)
		go func() {
			defer w.cleanupWg.Done()
			select {
			case <-ctx.Done():
				w.unsubscribe(sub)
			case <-w.done:
				// Close already tore every subscription down.
			}
		}()
	}

	return sub
}

// Append writes through to the underlying store and, only on success, fans
// the event out. A failed append delivers nothing: subscribers must never
// see an event the log does not hold.
func (w *Notifier) Append(ctx context.Context, e eventlog.Event) error {
	if err := w.store.Append(ctx, e); err != nil {
		return err
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return nil
	}

	for sub := range w.subscribers {
		if !sub.send(e) {
			// Slow or closed subscribers are removed asynchronously so the
			// write path never waits for the subscriber map's write lock.
			go w.unsubscribe(sub)
		}
	}
	return nil
}

// ReadAll delegates to the underlying store.
func (w *Notifier) ReadAll(ctx context.Context) (eventlog.ReadResult, error) {
	return w.store.ReadAll(ctx)
}

// Clear delegates to the underlying store. Active subscriptions are not
// notified; a cleared log simply stops producing events until the next
// append.
func (w *Notifier) Clear(ctx context.Context) error {
	return w.store.Clear(ctx)
}

// Close shuts down the notifier and closes every subscription. The wrapped
// store is left untouched. Close is idempotent.
func (w *Notifier) Close() error {
	w.mu.Lock()

	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)

	for sub := range w.subscribers {
		_ = sub.Close()
	}
	clear(w.subscribers)
	w.mu.Unlock()

	// Wait for pending context-cancellation cleanups so none of them race
	// a caller that frees resources right after Close.
	w.cleanupWg.Wait()
	return nil
}

func (w *Notifier) unsubscribe(sub *Subscription) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.subscribers, sub)
	_ = sub.Close()
}
