package main

import (
	"testing"

	"go.viam.com/test"

	"github.com/tokenthinker/omnisim/geometry"
)

func TestPlatformConfigs(t *testing.T) {
	t.Run("default three wheel", func(t *testing.T) {
		configs := platformConfigs(Arguments{Omega: 1.5})
		test.That(t, len(configs), test.ShouldEqual, 1)
		test.That(t, configs[0].WheelCount, test.ShouldEqual, geometry.ThreeWheels)
		test.That(t, configs[0].Omega, test.ShouldAlmostEqual, 1.5, 1e-9)
	})

	t.Run("four wheel", func(t *testing.T) {
		configs := platformConfigs(Arguments{FourWheels: true})
		test.That(t, len(configs), test.ShouldEqual, 1)
		test.That(t, configs[0].WheelCount, test.ShouldEqual, geometry.FourWheels)
	})

	t.Run("both overrides four wheel flag", func(t *testing.T) {
		configs := platformConfigs(Arguments{Both: true, FourWheels: true, Omega: 0.5})
		test.That(t, len(configs), test.ShouldEqual, 2)
		test.That(t, configs[0].WheelCount, test.ShouldEqual, geometry.ThreeWheels)
		test.That(t, configs[1].WheelCount, test.ShouldEqual, geometry.FourWheels)
		for _, cfg := range configs {
			test.That(t, cfg.Omega, test.ShouldAlmostEqual, 0.5, 1e-9)
		}
	})

	t.Run("each platform validates", func(t *testing.T) {
		for _, cfg := range platformConfigs(Arguments{Both: true}) {
			test.That(t, cfg.Validate("test"), test.ShouldBeNil)
		}
	})
}
