package simulation

import (
	"math"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/tokenthinker/omnisim/geometry"
	"github.com/tokenthinker/omnisim/kinematics"
)

func TestSampleFrame(t *testing.T) {
	logger := golog.NewTestLogger(t)
	model := geometry.NewThreeWheelModel()
	sim := New(model, kinematics.BodyVelocity{VX: 1}, logger)

	frame := sim.SampleFrame()
	test.That(t, frame.WheelCount, test.ShouldEqual, 3)
	test.That(t, len(frame.WheelPositions), test.ShouldEqual, 3)
	test.That(t, len(frame.WheelVelocities), test.ShouldEqual, 3)
	test.That(t, frame.Velocity, test.ShouldResemble, kinematics.BodyVelocity{VX: 1})

	// at the origin with zero heading, world positions equal model offsets
	for i, offset := range model.WheelPositions() {
		test.That(t, frame.WheelPositions[i].X, test.ShouldAlmostEqual, offset.X, 1e-9)
		test.That(t, frame.WheelPositions[i].Y, test.ShouldAlmostEqual, offset.Y, 1e-9)
	}
}

func TestWheelPositionsRotateWithHeading(t *testing.T) {
	logger := golog.NewTestLogger(t)
	model := geometry.NewFourWheelModel()
	sim := New(model, kinematics.BodyVelocity{Omega: math.Pi / 2}, logger)

	// one 1s tick turns the platform a quarter turn
	frame := sim.Tick(1)
	test.That(t, frame.Pose.Heading, test.ShouldAlmostEqual, math.Pi/2, 1e-9)

	for i, offset := range model.WheelPositions() {
		test.That(t, frame.WheelPositions[i].X, test.ShouldAlmostEqual, -offset.Y, 1e-9)
		test.That(t, frame.WheelPositions[i].Y, test.ShouldAlmostEqual, offset.X, 1e-9)
	}
}

func TestFramePositionsFollowPose(t *testing.T) {
	logger := golog.NewTestLogger(t)
	sim := New(geometry.NewThreeWheelModel(), kinematics.BodyVelocity{VX: 2, VY: -1}, logger)

	frame := sim.Tick(0.5)
	test.That(t, frame.Pose.X, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, frame.Pose.Y, test.ShouldAlmostEqual, -0.5, 1e-9)

	for i, offset := range sim.Model().WheelPositions() {
		test.That(t, frame.WheelPositions[i].X, test.ShouldAlmostEqual, 1.0+offset.X, 1e-9)
		test.That(t, frame.WheelPositions[i].Y, test.ShouldAlmostEqual, -0.5+offset.Y, 1e-9)
	}
}

func TestSideBySideIndependence(t *testing.T) {
	logger := golog.NewTestLogger(t)
	three := New(geometry.NewThreeWheelModel(), kinematics.BodyVelocity{VX: 1}, logger)
	four := New(geometry.NewFourWheelModel(), kinematics.BodyVelocity{VX: 1}, logger)

	three.State().Pause()
	three.Tick(1)
	frame := four.Tick(1)

	// pausing one platform must not leak into the other
	test.That(t, three.State().Pose(), test.ShouldResemble, Pose{})
	test.That(t, frame.Pose.X, test.ShouldAlmostEqual, 1.0, 1e-9)
}
