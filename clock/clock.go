// Package clock implements the divider-based cooperative scheduler that
// drives the CPU and PPU at their native tick ratio.
package clock

import (
	"sync/atomic"
	"time"
)

// TickFunc is invoked when a registered callback's divider expires.
type TickFunc func()

type callback struct {
	fn              TickFunc
	divider         int
	cyclesRemaining int
}

// Clock fans a single master tick out to registered callbacks, each firing
// once every divider ticks. Registration order is preserved, and callbacks
// fire in that order within a Step.
type Clock struct {
	callbacks []callback
	running   atomic.Bool
}

// New returns an empty Clock; use Register to attach tick sources.
func New() *Clock {
	return &Clock{}
}

// Register adds a callback that fires every divider ticks. offset shifts
// the callback's initial countdown, letting two callbacks with different
// dividers be phase-aligned (e.g. the PPU running 3 dots ahead of the CPU
// within the same Step).
func (c *Clock) Register(fn TickFunc, divider, offset int) {
	remaining := divider - 1 - offset
	if remaining < 0 {
		remaining = 0
	}
	c.callbacks = append(c.callbacks, callback{fn: fn, divider: divider, cyclesRemaining: remaining})
}

// Step advances every registered callback by one master tick, invoking
// those whose countdown has reached zero.
func (c *Clock) Step() {
	for i := range c.callbacks {
		cb := &c.callbacks[i]
		if cb.cyclesRemaining <= 0 {
			cb.fn()
			cb.cyclesRemaining = cb.divider - 1
		} else {
			cb.cyclesRemaining--
		}
	}
}

// StepN runs n master ticks.
func (c *Clock) StepN(n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}

// Start runs a cooperative batch loop: yieldInterval Steps, then a pause of
// yieldDelay before resuming, so the host gets a chance to service I/O,
// timers, and presentation without the Clock ever suspending mid-batch.
// Start blocks until Stop is called; it is meant to run on its own
// goroutine.
func (c *Clock) Start(yieldInterval int, yieldDelay time.Duration) {
	c.running.Store(true)
	for c.running.Load() {
		for i := 0; i < yieldInterval; i++ {
			c.Step()
		}
		if !c.running.Load() {
			return
		}
		if yieldDelay > 0 {
			time.Sleep(yieldDelay)
		}
	}
}

// Stop requests the running batch loop to exit at its next batch boundary.
func (c *Clock) Stop() {
	c.running.Store(false)
}

// Running reports whether Start's loop is currently active.
func (c *Clock) Running() bool {
	return c.running.Load()
}
