// Package geometry describes the physical layout of an omnidirectional
// wheeled platform: wheel radius, the distance from the platform center to
// each wheel, and the fixed angles the wheels are mounted at.
package geometry

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Defaults match a small three- or four-wheel omni platform with 148mm
// diameter wheels on a 390mm diameter body.
const (
	DefaultWheelRadius    = 0.148
	DefaultWheelWidth     = 0.044
	DefaultCenterDistance = 0.195
)

// Supported wheel counts.
const (
	ThreeWheels = 3
	FourWheels  = 4
)

// NewInvalidConfigurationError is used when a model cannot be built from the
// given physical parameters.
func NewInvalidConfigurationError(reason string, args ...interface{}) error {
	return errors.Errorf("invalid configuration: "+reason, args...)
}

// Model is an immutable description of a wheel layout. All lengths are in
// meters and all angles in radians.
type Model struct {
	wheelRadius    float64
	wheelWidth     float64
	centerDistance float64
	wheelAngles    []float64
}

// NewModel builds a model with wheelCount wheels evenly spaced around the
// platform, the first wheel mounted at phaseOffset. Only 3- and 4-wheel
// layouts are supported.
func NewModel(wheelCount int, wheelRadius, centerDistance, phaseOffset float64) (*Model, error) {
	if wheelCount != ThreeWheels && wheelCount != FourWheels {
		return nil, NewInvalidConfigurationError("wheel count must be 3 or 4, got %d", wheelCount)
	}
	if wheelRadius <= 0 {
		return nil, NewInvalidConfigurationError("wheel radius must be positive, got %f", wheelRadius)
	}
	if centerDistance <= 0 {
		return nil, NewInvalidConfigurationError("center distance must be positive, got %f", centerDistance)
	}

	spacing := 2 * math.Pi / float64(wheelCount)
	angles := make([]float64, wheelCount)
	for i := range angles {
		angles[i] = phaseOffset + float64(i)*spacing
	}

	return &Model{
		wheelRadius:    wheelRadius,
		wheelWidth:     DefaultWheelWidth,
		centerDistance: centerDistance,
		wheelAngles:    angles,
	}, nil
}

// NewThreeWheelModel builds the standard three-wheel layout with wheels at
// 60, 180, and 300 degrees.
func NewThreeWheelModel() *Model {
	m, err := NewModel(ThreeWheels, DefaultWheelRadius, DefaultCenterDistance, math.Pi/3)
	if err != nil {
		panic(err) // unreachable with valid defaults
	}
	return m
}

// NewFourWheelModel builds the standard four-wheel layout with wheels at
// 45, 135, 225, and 315 degrees.
func NewFourWheelModel() *Model {
	m, err := NewModel(FourWheels, DefaultWheelRadius, DefaultCenterDistance, math.Pi/4)
	if err != nil {
		panic(err) // unreachable with valid defaults
	}
	return m
}

// WheelCount returns the number of wheels in the layout.
func (m *Model) WheelCount() int {
	return len(m.wheelAngles)
}

// WheelRadius returns the wheel radius in meters.
func (m *Model) WheelRadius() float64 {
	return m.wheelRadius
}

// WheelWidth returns the wheel width in meters.
func (m *Model) WheelWidth() float64 {
	return m.wheelWidth
}

// CenterDistance returns the distance from the platform center to each wheel
// in meters.
func (m *Model) CenterDistance() float64 {
	return m.centerDistance
}

// WheelAngles returns a copy of the wheel mount angles in radians.
func (m *Model) WheelAngles() []float64 {
	angles := make([]float64, len(m.wheelAngles))
	copy(angles, m.wheelAngles)
	return angles
}

// WheelPositions returns each wheel's offset from the platform center.
func (m *Model) WheelPositions() []r2.Point {
	positions := make([]r2.Point, len(m.wheelAngles))
	for i, angle := range m.wheelAngles {
		positions[i] = r2.Point{
			X: m.centerDistance * math.Cos(angle),
			Y: m.centerDistance * math.Sin(angle),
		}
	}
	return positions
}
