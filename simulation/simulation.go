package simulation

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"

	"github.com/tokenthinker/omnisim/geometry"
	"github.com/tokenthinker/omnisim/kinematics"
)

// Simulation ties one wheel layout, its Jacobian, and one mutable state into
// an independent simulated platform. Running two layouts side by side means
// building two Simulations; they share nothing.
type Simulation struct {
	model    *geometry.Model
	jacobian *kinematics.Jacobian
	state    *State
	logger   golog.Logger
}

// New builds a simulation for the given wheel layout with an initial
// velocity command.
func New(model *geometry.Model, velocity kinematics.BodyVelocity, logger golog.Logger) *Simulation {
	logger.Debugw("built simulation",
		"wheel_count", model.WheelCount(),
		"wheel_radius", model.WheelRadius(),
		"center_distance", model.CenterDistance(),
	)
	return &Simulation{
		model:    model,
		jacobian: kinematics.NewJacobian(model),
		state:    NewState(velocity),
		logger:   logger,
	}
}

// NewFromConfig builds a simulation from a validated config.
func NewFromConfig(cfg Config, logger golog.Logger) (*Simulation, error) {
	model, err := cfg.model()
	if err != nil {
		return nil, err
	}
	return New(model, kinematics.BodyVelocity{Omega: cfg.Omega}, logger), nil
}

// Model returns the wheel layout.
func (sim *Simulation) Model() *geometry.Model {
	return sim.model
}

// Jacobian returns the layout's velocity map.
func (sim *Simulation) Jacobian() *kinematics.Jacobian {
	return sim.jacobian
}

// State returns the mutable platform state.
func (sim *Simulation) State() *State {
	return sim.state
}

// Frame is one tick's snapshot of a simulation, consumed by a renderer. It
// carries the wheel dimensions so renderers need no access to the geometry
// model.
type Frame struct {
	Pose            Pose
	Velocity        kinematics.BodyVelocity
	WheelCount      int
	WheelRadius     float64
	WheelWidth      float64
	CenterDistance  float64
	WheelPositions  []r2.Point
	WheelVelocities []float64
}

// Tick advances the simulation by dt seconds and returns the resulting
// snapshot.
func (sim *Simulation) Tick(dt float64) Frame {
	sim.state.Advance(dt)
	return sim.SampleFrame()
}

// SampleFrame captures the current pose, each wheel's world-frame position,
// and each wheel's angular velocity under the current command. Wheel offsets
// rotate with the platform's heading.
func (sim *Simulation) SampleFrame() Frame {
	pose := sim.state.Pose()
	velocity := sim.state.Velocity()

	sin, cos := math.Sincos(pose.Heading)
	offsets := sim.model.WheelPositions()
	positions := make([]r2.Point, len(offsets))
	for i, o := range offsets {
		positions[i] = r2.Point{
			X: pose.X + o.X*cos - o.Y*sin,
			Y: pose.Y + o.X*sin + o.Y*cos,
		}
	}

	return Frame{
		Pose:            pose,
		Velocity:        velocity,
		WheelCount:      sim.model.WheelCount(),
		WheelRadius:     sim.model.WheelRadius(),
		WheelWidth:      sim.model.WheelWidth(),
		CenterDistance:  sim.model.CenterDistance(),
		WheelPositions:  positions,
		WheelVelocities: sim.jacobian.WheelVelocities(velocity),
	}
}
