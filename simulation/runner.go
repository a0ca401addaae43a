package simulation

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	goutils "go.viam.com/utils"
)

// DefaultTickInterval matches the reference animation's 50ms frame interval.
const DefaultTickInterval = 50 * time.Millisecond

// FrameFunc consumes one snapshot per tick. Returning an error stops the
// runner.
type FrameFunc func(ctx context.Context, frame Frame) error

// Runner drives one or more simulations at a fixed tick interval on a single
// goroutine, handing each tick's frames to a callback. All simulations
// advance by the same wall-clock dt so side-by-side layouts stay in step.
type Runner struct {
	sims     []*Simulation
	interval time.Duration
	clock    clock.Clock
	script   Script
	logger   golog.Logger
}

// NewRunner returns a runner over the given simulations using the real
// clock.
func NewRunner(sims []*Simulation, interval time.Duration, logger golog.Logger) *Runner {
	return newRunnerWithClock(sims, interval, clock.New(), logger)
}

func newRunnerWithClock(sims []*Simulation, interval time.Duration, c clock.Clock, logger golog.Logger) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{sims: sims, interval: interval, clock: c, logger: logger}
}

// SetScript installs a canned drive sequence applied before each tick.
// Paused simulations keep their last command, freezing the sequence for them
// until they resume.
func (r *Runner) SetScript(script Script) {
	r.script = script
}

// Run ticks until the context is cancelled or the callback errors. Each tick
// advances every simulation by the tick interval and invokes onFrame once
// per simulation, in order.
func (r *Runner) Run(ctx context.Context, onFrame FrameFunc) error {
	dt := r.interval.Seconds()
	r.logger.Debugw("animation loop starting", "interval", r.interval.String(), "platforms", len(r.sims))
	ticker := r.clock.Ticker(r.interval)
	defer ticker.Stop()

	for tick := 0; ; tick++ {
		if !goutils.SelectContextOrWaitChan(ctx, ticker.C) {
			return ctx.Err()
		}
		for _, sim := range r.sims {
			if r.script != nil && !sim.State().Paused() {
				sim.State().SetVelocity(r.script(tick))
			}
			frame := sim.Tick(dt)
			if err := onFrame(ctx, frame); err != nil {
				return err
			}
		}
	}
}
