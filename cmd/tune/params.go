// Package main provides CMA-ES tuning of physics and pacing parameters
// against autoplay sessions.
package main

import (
	"math"

	"github.com/pthm-cable/fruitmerge/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "gravity", Path: "physics.gravity", Min: 600, Max: 2000, Default: 1200},
			{Name: "restitution", Path: "physics.restitution", Min: 0, Max: 0.6, Default: 0.2},
			{Name: "friction", Path: "physics.friction", Min: 0.1, Max: 1.0, Default: 0.5},
			{Name: "pop_impulse", Path: "merge.pop_impulse", Min: 0, Max: 400, Default: 150},
			{Name: "drop_cooldown_ms", Path: "spawn.drop_cooldown_ms", Min: 200, Max: 1000, Default: 400},
			{Name: "max_level", Path: "spawn.max_level", Min: 2, Max: 5, Default: 4},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(v[i], spec.Max))
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg and refreshes its derived
// values. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	c := pv.Clamp(values)

	cfg.Physics.Gravity = c[0]
	cfg.Physics.Restitution = c[1]
	cfg.Physics.Friction = c[2]
	cfg.Merge.PopImpulse = c[3]
	cfg.Spawn.DropCooldownMS = int(math.Round(c[4]))
	cfg.Spawn.MaxLevel = int(math.Round(c[5]))

	return cfg.Recompute()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Physics.Gravity,
		cfg.Physics.Restitution,
		cfg.Physics.Friction,
		cfg.Merge.PopImpulse,
		float64(cfg.Spawn.DropCooldownMS),
		float64(cfg.Spawn.MaxLevel),
	}
}
