package persistence

import (
	"sync"
	"time"
)

// Debouncer coalesces calls per key: only the last function scheduled for a
// key runs, delay after the last call. A zero delay runs the function
// immediately on the caller's goroutine.
type Debouncer struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]func()
	closed  bool
}

// NewDebouncer creates an idle debouncer
func NewDebouncer() *Debouncer {
	return &Debouncer{
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]func()),
	}
}

// Schedule arranges for fn to run after delay, replacing anything pending
// for key. It returns false once the debouncer is stopped.
func (d *Debouncer) Schedule(key string, delay time.Duration, fn func()) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	if timer, ok := d.timers[key]; ok {
		timer.Stop()
		delete(d.timers, key)
	}
	if delay <= 0 {
		delete(d.pending, key)
		d.mu.Unlock()
		fn()
		return true
	}

	d.pending[key] = fn
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		if d.timers[key] != timer {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		run := d.pending[key]
		delete(d.pending, key)
		d.mu.Unlock()

		if run != nil {
			run()
		}
	})
	d.timers[key] = timer
	d.mu.Unlock()
	return true
}

// Pending returns the number of keys waiting to run
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush runs every pending function now, on the caller's goroutine
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fns := make([]func(), 0, len(d.pending))
	for key, fn := range d.pending {
		if timer, ok := d.timers[key]; ok {
			timer.Stop()
			delete(d.timers, key)
		}
		fns = append(fns, fn)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Stop flushes pending work and refuses further scheduling
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.Flush()
}
