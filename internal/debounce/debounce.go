// Package debounce delays a rapidly-changing input value until it has been
// stable for a quiet period, then commits the last value seen.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules a value commit after a fixed delay. Each Set cancels
// the previous schedule, so only the final value of a burst is committed.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending string
	commit  func(string)
	stopped bool
}

// New builds a debouncer that invokes commit with the settled value. A
// non-positive delay commits synchronously on every Set.
func New(delay time.Duration, commit func(string)) *Debouncer {
	return &Debouncer{delay: delay, commit: commit}
}

// Set records a new input value and restarts the quiet-period timer.
func (d *Debouncer) Set(value string) {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.pending = value

	if d.delay <= 0 {
		d.mu.Unlock()
		d.commit(value)
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		value := d.pending
		d.mu.Unlock()
		d.commit(value)
	})

	d.mu.Unlock()
}

// Flush commits the pending value immediately, cancelling any timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	value := d.pending
	d.mu.Unlock()
	d.commit(value)
}

// Stop cancels any scheduled commit; the debouncer accepts no further input.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
