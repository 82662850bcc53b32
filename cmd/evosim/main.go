// Command evosim is the headless runner: it drives a Simulator through a
// fixed number of generations and logs a one-line summary per generation,
// with no rendering of any kind.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/agloe-labs/evocore/config"
	"github.com/agloe-labs/evocore/sim"
	"github.com/agloe-labs/evocore/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed override (0 = use config)")
	generations := flag.Int("generations", 1, "Number of generations to run")
	quiet := flag.Bool("quiet", false, "Suppress per-generation log lines")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *seed != 0 {
		cfg.Simulation.RNGSeed = uint32(*seed)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	telemetry.SetLogger(logger)

	s := sim.New(cfg)
	if err := s.Init(); err != nil {
		slog.Error("failed to initialize simulator", "error", err)
		os.Exit(1)
	}

	telemetry.LogInit(cfg.Simulation.RNGSeed, cfg.Simulation.SizeX, cfg.Simulation.SizeY, cfg.Simulation.Population)

	for g := 0; g < *generations; g++ {
		stats := s.RunGeneration()
		if !*quiet {
			telemetry.LogGenerationComplete(stats)
			fmt.Fprintf(os.Stdout, "generation %d: population=%d survivors=%d survival_rate=%.3f diversity=%.3f\n",
				stats.Generation, stats.Population, stats.Survivors, stats.SurvivalRate, stats.GeneticDiversity)
		}
	}
}
