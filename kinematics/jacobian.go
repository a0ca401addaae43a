// Package kinematics maps body-frame velocity commands for an
// omnidirectional platform onto per-wheel angular velocities.
package kinematics

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/tokenthinker/omnisim/geometry"
)

// NewDimensionError is used when a velocity vector does not match the
// Jacobian's wheel count. This indicates a wiring bug between components, not
// bad runtime data.
func NewDimensionError(got, want int) error {
	return errors.Errorf("dimension mismatch: got %d, want %d", got, want)
}

// BodyVelocity is a velocity command in the platform's own frame: forward and
// lateral linear velocity in m/s and angular velocity in rad/s.
type BodyVelocity struct {
	VX    float64
	VY    float64
	Omega float64
}

// BodyVelocityFromPolar converts a drive command given as a speed, a drive
// direction, and the platform's current orientation (both in degrees) into a
// body-frame velocity. The drive vector is first expressed relative to the
// platform's orientation and then rotated a further 90 degrees so that a zero
// drive direction maps onto the platform's forward axis.
func BodyVelocityFromPolar(speed, directionDeg, orientationDeg, omega float64) BodyVelocity {
	rel := (directionDeg - orientationDeg) * math.Pi / 180
	vx0 := speed * math.Cos(rel)
	vy0 := speed * math.Sin(rel)
	return BodyVelocity{VX: -vy0, VY: vx0, Omega: omega}
}

// vector returns the command as a column vector for the matrix product.
func (v BodyVelocity) vector() *mat.VecDense {
	return mat.NewVecDense(3, []float64{v.VX, v.VY, v.Omega})
}

// Jacobian is the linear map from a body velocity to wheel angular
// velocities for a particular wheel layout. It is a pure function of the
// layout and is safe for shared read-only use once built.
type Jacobian struct {
	m          *mat.Dense
	wheelCount int
}

// NewJacobian builds the Jacobian for a wheel layout. Row i is
// [cos(θ_i)/r, sin(θ_i)/r, L/r] where θ_i is wheel i's mount angle, r the
// wheel radius, and L the center-to-wheel distance: the projection of the
// body velocity onto wheel i's rolling direction plus the tangential
// contribution of the angular velocity, scaled from linear to angular wheel
// speed.
func NewJacobian(model *geometry.Model) *Jacobian {
	r := model.WheelRadius()
	l := model.CenterDistance()
	angles := model.WheelAngles()

	m := mat.NewDense(len(angles), 3, nil)
	for i, angle := range angles {
		m.Set(i, 0, math.Cos(angle)/r)
		m.Set(i, 1, math.Sin(angle)/r)
		m.Set(i, 2, l/r)
	}
	return &Jacobian{m: m, wheelCount: len(angles)}
}

// WheelCount returns the number of wheel rows in the map.
func (j *Jacobian) WheelCount() int {
	return j.wheelCount
}

// At returns the coefficient at row i, column k.
func (j *Jacobian) At(i, k int) float64 {
	return j.m.At(i, k)
}

// RawMatrix returns a copy of the underlying dense matrix.
func (j *Jacobian) RawMatrix() *mat.Dense {
	return mat.DenseCopyOf(j.m)
}

// WheelVelocities computes the angular velocity of each wheel, in rad/s, for
// the given body velocity: Ω = J·[vx vy ω]ᵀ.
func (j *Jacobian) WheelVelocities(v BodyVelocity) []float64 {
	var out mat.VecDense
	out.MulVec(j.m, v.vector())

	velocities := make([]float64, j.wheelCount)
	for i := range velocities {
		velocities[i] = out.AtVec(i)
	}
	return velocities
}

// Apply multiplies the Jacobian by a raw velocity vector. The vector must
// have exactly three components (vx, vy, ω).
func (j *Jacobian) Apply(velocity []float64) ([]float64, error) {
	if len(velocity) != 3 {
		return nil, NewDimensionError(len(velocity), 3)
	}
	return j.WheelVelocities(BodyVelocity{VX: velocity[0], VY: velocity[1], Omega: velocity[2]}), nil
}
