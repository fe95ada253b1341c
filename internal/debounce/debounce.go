// Package debounce coalesces bursts of calls into a single delayed call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered function once no new trigger
// has arrived for the configured delay.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	// inflight counts calls that are scheduled and not cancelled, running or not.
	inflight sync.WaitGroup
}

// New returns a Debouncer with the given delay.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger cancels any pending call and schedules fn after the delay.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
	d.inflight.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.inflight.Done()
		fn()
	})
}

// Stop cancels the pending call, if any. It reports whether a call was cancelled;
// a call that has already started is not interrupted.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Wait blocks until every call that was not cancelled has returned.
func (d *Debouncer) Wait() {
	d.inflight.Wait()
}

func (d *Debouncer) cancelLocked() bool {
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	if stopped {
		d.inflight.Done()
	}
	d.timer = nil
	return stopped
}
