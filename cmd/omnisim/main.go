// Package main contains a command to animate omnidirectional platform
// kinematics, rendering one PNG per tick.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/tokenthinker/omnisim/geometry"
	"github.com/tokenthinker/omnisim/kinematics"
	"github.com/tokenthinker/omnisim/render"
	"github.com/tokenthinker/omnisim/simulation"
)

var logger = golog.NewDevelopmentLogger("omnisim")

func main() {
	goutils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	FourWheels bool    `flag:"four-wheels,usage=use the four wheel layout"`
	Both       bool    `flag:"both,usage=run the three and four wheel layouts side by side"`
	Omega      float64 `flag:"omega,usage=angular velocity (rad/s)"`
	Frames     int     `flag:"frames,default=720,usage=number of frames to render (0 for unlimited)"`
	IntervalMs int     `flag:"interval,default=50,usage=tick interval in milliseconds"`
	OutDir     string  `flag:"out,usage=directory to write PNG frames to (omit to only log)"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := goutils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	configs := platformConfigs(argsParsed)

	// report every configuration problem before starting anything
	var validationErr error
	for i, cfg := range configs {
		validationErr = multierr.Combine(validationErr, cfg.Validate(fmt.Sprintf("platform.%d", i)))
	}
	if validationErr != nil {
		return validationErr
	}

	sims := make([]*simulation.Simulation, 0, len(configs))
	for _, cfg := range configs {
		sim, err := simulation.NewFromConfig(cfg, logger)
		if err != nil {
			return err
		}
		sims = append(sims, sim)
	}

	if argsParsed.OutDir != "" {
		if err := os.MkdirAll(argsParsed.OutDir, 0o755); err != nil {
			return errors.Wrap(err, "cannot create output directory")
		}
	}

	return runAnimation(ctx, sims, argsParsed, logger)
}

func platformConfigs(args Arguments) []simulation.Config {
	if args.Both {
		return []simulation.Config{
			{WheelCount: geometry.ThreeWheels, Omega: args.Omega},
			{WheelCount: geometry.FourWheels, Omega: args.Omega},
		}
	}
	wheelCount := geometry.ThreeWheels
	if args.FourWheels {
		wheelCount = geometry.FourWheels
	}
	return []simulation.Config{{WheelCount: wheelCount, Omega: args.Omega}}
}

func runAnimation(
	ctx context.Context,
	sims []*simulation.Simulation,
	args Arguments,
	logger golog.Logger,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// omega may be retargeted from stdin while the animation runs
	omega := newSharedOmega(args.Omega)

	goutils.PanicCapturingGo(func() {
		readControls(ctx, sims, omega, logger)
	})

	interval := time.Duration(args.IntervalMs) * time.Millisecond
	runner := simulation.NewRunner(sims, interval, logger)
	runner.SetScript(func(tick int) kinematics.BodyVelocity {
		return simulation.DemoScript(omega.get())(tick)
	})

	renderer := render.NewRenderer()
	pending := make([]simulation.Frame, 0, len(sims))
	frameNum := 0

	err := runner.Run(ctx, func(ctx context.Context, frame simulation.Frame) error {
		pending = append(pending, frame)
		if len(pending) < len(sims) {
			return nil
		}

		img := render.SideBySide(renderer, pending...)
		pending = pending[:0]

		if args.OutDir != "" {
			path := filepath.Join(args.OutDir, fmt.Sprintf("frame_%04d.png", frameNum))
			if err := gg.SavePNG(path, img); err != nil {
				return errors.Wrapf(err, "cannot save frame %d", frameNum)
			}
		}
		if frameNum%100 == 0 {
			logger.Infow("tick",
				"frame", frameNum,
				"pose_x", frame.Pose.X,
				"pose_y", frame.Pose.Y,
				"heading", frame.Pose.Heading,
				"wheel_velocities", frame.WheelVelocities,
			)
		}

		frameNum++
		if args.Frames > 0 && frameNum >= args.Frames {
			cancel()
		}
		return nil
	})
	return goutils.FilterOutError(err, context.Canceled)
}

// readControls turns stdin lines into pause/resume toggles and velocity
// updates for every platform. The blocking read stays out of the simulation
// core.
func readControls(ctx context.Context, sims []*simulation.Simulation, omega *sharedOmega, logger golog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || line == "p":
			for _, sim := range sims {
				paused := sim.State().TogglePaused()
				logger.Infow("pause toggled", "paused", paused)
			}
		case strings.HasPrefix(line, "omega "):
			value, err := strconv.ParseFloat(strings.TrimPrefix(line, "omega "), 64)
			if err != nil {
				logger.Errorw("bad omega value", "input", line, "error", err)
				continue
			}
			omega.set(value)
			for _, sim := range sims {
				v := sim.State().Velocity()
				v.Omega = value
				sim.State().SetVelocity(v)
			}
			logger.Infow("omega updated", "omega", value)
		default:
			logger.Infow("unrecognized control", "input", line)
		}
	}
}

type sharedOmega struct {
	mu    sync.Mutex
	value float64
}

func newSharedOmega(value float64) *sharedOmega {
	return &sharedOmega{value: value}
}

func (o *sharedOmega) get() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

func (o *sharedOmega) set(value float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.value = value
}
