// Package config loads the engine's tunable constants from a YAML
// config file, falling back to defaults. It deliberately never reads
// environment variables or flags for these values, so the engine's
// numeric contract stays predictable regardless of the caller's shell.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	nearby_search "nearby_search"
)

// Tuning holds the distance-metric and radius-growth constants that
// the engine would otherwise hardcode (§10.2).
type Tuning struct {
	Epsilon           float64 `mapstructure:"epsilon"`
	RadiusGrowthStart float64 `mapstructure:"radius_growth_start"`
	RadiusGrowthStep  float64 `mapstructure:"radius_growth_step"`
}

// DefaultTuning returns the constants the engine uses absent any
// configuration.
func DefaultTuning() Tuning {
	return Tuning{
		Epsilon:           1e-3,
		RadiusGrowthStart: 1.0,
		RadiusGrowthStep:  0.1,
	}
}

// Load reads Tuning from the YAML file at path, falling back to
// DefaultTuning for any field a given file leaves unset, or entirely
// when path is empty.
func Load(path string) (Tuning, error) {
	v := viper.New()

	def := DefaultTuning()
	v.SetDefault("epsilon", def.Epsilon)
	v.SetDefault("radius_growth_start", def.RadiusGrowthStart)
	v.SetDefault("radius_growth_step", def.RadiusGrowthStep)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Tuning{}, errors.Wrapf(err, "reading config %q", path)
		}
	}

	var t Tuning
	if err := v.Unmarshal(&t); err != nil {
		return Tuning{}, errors.Wrap(err, "decoding tuning config")
	}
	return t, nil
}

// Metric converts Tuning into the core engine's Metric value.
func (t Tuning) Metric() nearby_search.Metric {
	return nearby_search.Metric{
		Epsilon:           t.Epsilon,
		RadiusGrowthStart: t.RadiusGrowthStart,
		RadiusGrowthStep:  t.RadiusGrowthStep,
	}
}
