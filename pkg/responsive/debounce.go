package responsive

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period used by the CLI and server.
const DefaultDebounce = 150 * time.Millisecond

// Debouncer delays a callback until Trigger has not been called for a quiet
// period. Only the value passed to the last Trigger is delivered, and it is
// delivered once. It is safe for concurrent use.
type Debouncer[T any] struct {
	wait time.Duration
	fn   func(T)

	mu      sync.Mutex
	timer   *time.Timer // non-nil while a value is pending
	gen     uint64      // bumped by every Trigger and Flush; stale timers see a mismatch
	pending T
	stopped bool
}

// NewDebouncer returns a Debouncer that calls fn once events stop for wait.
func NewDebouncer[T any](wait time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{wait: wait, fn: fn}
}

// Trigger records v and restarts the quiet period.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

// fire delivers the pending value if no Trigger or Flush happened since the
// timer for gen was armed.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.timer = nil
	d.mu.Unlock()
	d.fn(v)
}

// Flush delivers a pending value immediately. It reports whether one was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	d.gen++
	v := d.pending
	d.timer = nil
	d.mu.Unlock()
	d.fn(v)
	return true
}

// Stop cancels any pending callback. Later Triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
