package simulation

import (
	"math"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/tokenthinker/omnisim/geometry"
)

// Config describes a simulated platform. Zero values for the physical
// parameters fall back to the standard layout defaults.
type Config struct {
	WheelCount     int     `json:"wheel_count"`
	Omega          float64 `json:"omega,omitempty"`
	WheelRadius    float64 `json:"wheel_radius,omitempty"`
	CenterDistance float64 `json:"center_distance,omitempty"`
	PhaseOffsetDeg float64 `json:"phase_offset_deg,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.WheelCount == 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "wheel_count")
	}
	if cfg.WheelCount != geometry.ThreeWheels && cfg.WheelCount != geometry.FourWheels {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("wheel_count must be 3 or 4, not %d", cfg.WheelCount))
	}
	if cfg.WheelRadius < 0 {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("wheel_radius must be positive, not %f", cfg.WheelRadius))
	}
	if cfg.CenterDistance < 0 {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("center_distance must be positive, not %f", cfg.CenterDistance))
	}
	return nil
}

// model builds the wheel layout the config describes, applying defaults for
// unset physical parameters.
func (cfg Config) model() (*geometry.Model, error) {
	radius := cfg.WheelRadius
	if radius == 0 {
		radius = geometry.DefaultWheelRadius
	}
	centerDistance := cfg.CenterDistance
	if centerDistance == 0 {
		centerDistance = geometry.DefaultCenterDistance
	}
	phase := cfg.PhaseOffsetDeg * math.Pi / 180
	if cfg.PhaseOffsetDeg == 0 {
		// standard layouts put the first wheel half a spacing off the x-axis
		phase = math.Pi / float64(cfg.WheelCount)
	}
	return geometry.NewModel(cfg.WheelCount, radius, centerDistance, phase)
}
