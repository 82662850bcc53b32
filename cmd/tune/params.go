// Package main implements a parameter-search CLI over a bounded subset of
// the evolution core's simulation parameters.
package main

import (
	"github.com/agloe-labs/evocore/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the standard set of optimizable parameters: the
// mutation rates and the responsiveness curve's k factor.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "point_mutation_rate", Min: 0.0001, Max: 0.01, Default: 0.001},
			{Name: "gene_insertion_deletion_rate", Min: 0.0001, Max: 0.01, Default: 0.001},
			{Name: "deletion_ratio", Min: 0.1, Max: 0.9, Default: 0.5},
			{Name: "responsiveness_curve_k_factor", Min: 0.5, Max: 6.0, Default: 2.0},
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

// Normalize converts raw parameter values to [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		out[i] = val
	}
	return out
}

// ApplyToConfig writes clamped parameter values into cfg. Order must
// match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Mutation.PointRate = clamped[0]
	cfg.Mutation.InsertionDeletionRate = clamped[1]
	cfg.Mutation.DeletionRatio = clamped[2]
	cfg.Agent.ResponsivenessCurveKFactor = clamped[3]
}
