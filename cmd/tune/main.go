package main

import (
	"flag"
	"fmt"
	"log"

	"gonum.org/v1/gonum/optimize"

	"github.com/agloe-labs/evocore/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	generations := flag.Int("generations", 20, "Generations to run per seed per evaluation")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	bySurvival := flag.Bool("by-survival", false, "Maximize mean survivalRate instead of mean geneticDiversity")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]uint32, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint32(i*1000 + 1)
	}

	evaluator := NewFitnessEvaluator(params, *generations, evalSeeds, baseCfg, *bySurvival)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			return evaluator.Evaluate(raw)
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Fatalf("optimization failed: %v", err)
	}

	bestRaw := params.Clamp(params.Denormalize(result.X))
	fmt.Println("best parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s = %.6f\n", spec.Name, bestRaw[i])
	}
	metric := "geneticDiversity"
	if *bySurvival {
		metric = "survivalRate"
	}
	fmt.Printf("achieved mean %s = %.6f (%d evaluations)\n", metric, -result.F, result.Stats.FuncEvaluations)
}
