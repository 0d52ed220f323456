// Package debounce coalesces rapid value changes into a single delayed
// callback: schedule on every change, and any new change cancels the
// pending schedule and reschedules.
package debounce

import (
	"sync"
	"time"
)

type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// New returns a debouncer that invokes fn with the most recent value once
// no Trigger has been seen for delay. fn runs on the timer goroutine.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Trigger records v as the latest value and restarts the delay. Exactly one
// callback fires per quiescent period, carrying the last triggered value.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stale := d.stopped || gen != d.gen
		d.mu.Unlock()
		if stale {
			return
		}
		d.fn(v)
	})
}

// Cancel drops any pending callback without stopping the debouncer.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending callback permanently. No callback runs after
// Stop returns observably to the caller's goroutine.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
