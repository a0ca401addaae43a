package simulation

import (
	"math"

	"github.com/tokenthinker/omnisim/kinematics"
)

// Script produces the velocity command for a given tick index. Scripts let a
// runner replay a canned drive sequence instead of waiting on live input.
type Script func(tick int) kinematics.BodyVelocity

// DemoScript reproduces the reference animation's drive sequence: speed
// oscillates between 0 and 1, the drive direction sweeps a full circle every
// 360 ticks, and the platform's orientation advances with omega.
func DemoScript(omega float64) Script {
	return func(tick int) kinematics.BodyVelocity {
		speed := 0.5 * (1 + math.Sin(float64(tick)*math.Pi/180))
		directionDeg := math.Mod(float64(tick), 360)
		orientationDeg := math.Mod(omega*float64(tick), 360)
		return kinematics.BodyVelocityFromPolar(speed, directionDeg, orientationDeg, omega)
	}
}
