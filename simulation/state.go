// Package simulation advances an omnidirectional platform through time,
// producing per-tick snapshots of its pose and wheel velocities for an
// external renderer.
package simulation

import (
	"sync"

	"github.com/tokenthinker/omnisim/kinematics"
)

// Pose is a platform position and heading in the world frame. X and Y are in
// meters, Heading in radians.
type Pose struct {
	X       float64
	Y       float64
	Heading float64
}

// State owns a platform's pose and its commanded velocity and integrates
// them over time. Advancing is tick-driven and synchronous; the mutex only
// exists so an input handler may pause or retarget the platform from another
// goroutine between ticks.
type State struct {
	mu       sync.Mutex
	pose     Pose
	velocity kinematics.BodyVelocity
	paused   bool
}

// NewState returns a state at the origin with the given initial velocity
// command, running.
func NewState(velocity kinematics.BodyVelocity) *State {
	return &State{velocity: velocity}
}

// Advance integrates the commanded velocity over dt seconds with a forward
// Euler step. While paused it does nothing, leaving the pose bit-identical.
func (s *State) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	s.pose.X += s.velocity.VX * dt
	s.pose.Y += s.velocity.VY * dt
	s.pose.Heading += s.velocity.Omega * dt
}

// Pose returns a snapshot of the current pose.
func (s *State) Pose() Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose
}

// Velocity returns the current velocity command.
func (s *State) Velocity() kinematics.BodyVelocity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.velocity
}

// SetVelocity replaces the velocity command. Allowed in both the running and
// paused states.
func (s *State) SetVelocity(v kinematics.BodyVelocity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.velocity = v
}

// Pause stops Advance from having any effect until Resume is called.
func (s *State) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

// Resume re-enables Advance.
func (s *State) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

// Paused reports whether the state is paused.
func (s *State) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// TogglePaused flips between the running and paused states and reports the
// new paused value.
func (s *State) TogglePaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}
