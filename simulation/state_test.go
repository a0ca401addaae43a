package simulation

import (
	"testing"

	"go.viam.com/test"

	"github.com/tokenthinker/omnisim/kinematics"
)

func TestAdvanceIntegration(t *testing.T) {
	// translation integrates directly in the world frame; heading only
	// affects where the wheels are drawn, not where the platform goes
	state := NewState(kinematics.BodyVelocity{VX: 1})
	for i := 0; i < 10; i++ {
		state.Advance(0.1)
	}
	pose := state.Pose()
	test.That(t, pose.X, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, pose.Y, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, pose.Heading, test.ShouldAlmostEqual, 0, 1e-9)
}

func TestAdvanceAllComponents(t *testing.T) {
	state := NewState(kinematics.BodyVelocity{VX: 0.5, VY: -0.25, Omega: 2})
	state.Advance(0.2)
	pose := state.Pose()
	test.That(t, pose.X, test.ShouldAlmostEqual, 0.1, 1e-9)
	test.That(t, pose.Y, test.ShouldAlmostEqual, -0.05, 1e-9)
	test.That(t, pose.Heading, test.ShouldAlmostEqual, 0.4, 1e-9)
}

func TestPausedAdvanceIsNoOp(t *testing.T) {
	state := NewState(kinematics.BodyVelocity{VX: 3, VY: 7, Omega: 11})
	state.Advance(0.1)
	before := state.Pose()

	state.Pause()
	test.That(t, state.Paused(), test.ShouldBeTrue)
	for i := 0; i < 100; i++ {
		state.Advance(0.1)
	}
	test.That(t, state.Pose(), test.ShouldResemble, before)

	state.Resume()
	test.That(t, state.Paused(), test.ShouldBeFalse)
	state.Advance(0.1)
	test.That(t, state.Pose(), test.ShouldNotResemble, before)
}

func TestSetVelocityWhilePaused(t *testing.T) {
	state := NewState(kinematics.BodyVelocity{VX: 1})
	state.Pause()

	// velocity updates are accepted in both states without transitioning
	updated := kinematics.BodyVelocity{VY: 2}
	state.SetVelocity(updated)
	test.That(t, state.Paused(), test.ShouldBeTrue)
	test.That(t, state.Velocity(), test.ShouldResemble, updated)

	state.Resume()
	state.Advance(0.5)
	pose := state.Pose()
	test.That(t, pose.X, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, pose.Y, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestTogglePaused(t *testing.T) {
	state := NewState(kinematics.BodyVelocity{})
	test.That(t, state.TogglePaused(), test.ShouldBeTrue)
	test.That(t, state.Paused(), test.ShouldBeTrue)
	test.That(t, state.TogglePaused(), test.ShouldBeFalse)
	test.That(t, state.Paused(), test.ShouldBeFalse)
}
