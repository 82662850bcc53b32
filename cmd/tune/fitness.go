package main

import (
	"github.com/agloe-labs/evocore/config"
	"github.com/agloe-labs/evocore/sim"
)

// FitnessEvaluator runs headless generations across a fixed seed set and
// scores a parameter vector by the mean of the chosen metric (lower is
// better, matching gonum/optimize's minimization convention).
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []uint32
	baseConfig  *config.Config
	bySurvival  bool
}

// NewFitnessEvaluator constructs an evaluator over generations generations
// per seed, for each of seeds.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []uint32, baseCfg *config.Config, bySurvival bool) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bySurvival:  bySurvival,
	}
}

// Evaluate returns the negated mean metric across all seeds for raw (the
// denormalized parameter values, clamped into range by ApplyToConfig), so
// minimizing the returned value maximizes the metric.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	var total float64
	for _, seed := range fe.seeds {
		cfg := fe.baseConfig.Clone()
		fe.params.ApplyToConfig(cfg, raw)
		cfg.Simulation.RNGSeed = seed

		s := sim.New(cfg)
		if err := s.Init(); err != nil {
			continue
		}

		var last float64
		for g := 0; g < fe.generations; g++ {
			stats := s.RunGeneration()
			if fe.bySurvival {
				last = stats.SurvivalRate
			} else {
				last = stats.GeneticDiversity
			}
		}
		total += last
	}
	mean := total / float64(len(fe.seeds))
	return -mean
}
