// Package sim implements the Simulator: the orchestrator that owns the
// grid, signal field, population, and PRNG, and drives them through
// stepOnce/runGeneration/endGeneration in the exact order the rest of the
// core's reproducibility guarantee depends on.
package sim

import (
	"fmt"

	"github.com/agloe-labs/evocore/action"
	"github.com/agloe-labs/evocore/agent"
	"github.com/agloe-labs/evocore/barrier"
	"github.com/agloe-labs/evocore/colorize"
	"github.com/agloe-labs/evocore/config"
	"github.com/agloe-labs/evocore/gene"
	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/gridworld"
	"github.com/agloe-labs/evocore/population"
	"github.com/agloe-labs/evocore/rng"
	"github.com/agloe-labs/evocore/sensor"
	"github.com/agloe-labs/evocore/signal"
	"github.com/agloe-labs/evocore/spawner"
	"github.com/agloe-labs/evocore/survival"
	"github.com/agloe-labs/evocore/telemetry"
)

const maxPlacementAttempts = 10000

// NumActions and NumSensors mirror the action/sensor packages' own
// constants, re-exported here so callers that only import sim (the
// network's public boundary) never need to import action/sensor directly.
const (
	NumSensors = int(sensor.NumSensors)
	NumActions = int(action.NumActions)
)

// Simulator owns every piece of per-run state: the grid, the signal
// layers, the population manager, the PRNG, and the config it was built
// from. It has no goroutines of its own; a host drives it synchronously,
// one command at a time, from a single goroutine it chooses.
type Simulator struct {
	cfg *config.Config
	r   *rng.Source

	grid    *gridworld.Grid
	signals *signal.Field
	pop     *population.Manager
	colors  []colorize.RGB

	generation int
	simStep    int
	running    bool
	paused     bool

	history *telemetry.History
}

// New constructs an uninitialized Simulator for cfg. Callers normally call
// Init first; StepOnce and RunGeneration call it themselves if it has not
// been called.
func New(cfg *config.Config) *Simulator {
	return &Simulator{
		cfg:     cfg,
		history: telemetry.NewHistory(historyCapacity(cfg)),
	}
}

func historyCapacity(cfg *config.Config) int {
	if cfg.Simulation.MaxGenerations > 0 {
		return cfg.Simulation.MaxGenerations
	}
	return 200
}

// sensor.World / action.World / survival.World implementations.

func (s *Simulator) Grid() *gridworld.Grid  { return s.grid }
func (s *Simulator) Signals() *signal.Field { return s.signals }
func (s *Simulator) SizeX() int             { return s.cfg.Simulation.SizeX }
func (s *Simulator) SizeY() int             { return s.cfg.Simulation.SizeY }
func (s *Simulator) SimStep() int           { return s.simStep }
func (s *Simulator) StepsPerGeneration() int { return s.cfg.Simulation.StepsPerGeneration }

func (s *Simulator) PopulationSensorRadius() float64 { return s.cfg.Sensors.PopulationRadius }
func (s *Simulator) SignalSensorRadius() float64     { return s.cfg.Signals.SensorRadius }
func (s *Simulator) ShortProbeBarrierDistance() int  { return s.cfg.Sensors.ShortProbeBarrierDistance }

func (s *Simulator) AgentAt(c geom.Coord) (*agent.Agent, bool) {
	return s.pop.AgentAt(c)
}

// Generation returns the current generation counter.
func (s *Simulator) Generation() int { return s.generation }

// History returns the retained per-generation stats, oldest first.
func (s *Simulator) History() []telemetry.GenerationStats {
	return s.history.Snapshot()
}

func validateConfig(cfg *config.Config) error {
	if cfg.Simulation.SizeX <= 0 || cfg.Simulation.SizeY <= 0 {
		return fmt.Errorf("sim: sizeX and sizeY must be positive, got %d x %d", cfg.Simulation.SizeX, cfg.Simulation.SizeY)
	}
	if cfg.Simulation.Population < 0 {
		return fmt.Errorf("sim: population must be non-negative, got %d", cfg.Simulation.Population)
	}
	if cfg.Mutation.PointRate < 0 || cfg.Mutation.InsertionDeletionRate < 0 || cfg.Mutation.DeletionRatio < 0 {
		return fmt.Errorf("sim: mutation rates must be non-negative")
	}
	return nil
}

// Init (re)initializes the simulator from its config: zeroes counters and
// history, clears the grid and signals, creates barriers, places a fresh
// population with random genomes, and builds per-agent colors. Returns an
// error, leaving the simulator's prior state untouched, if cfg fails
// validation.
func (s *Simulator) Init() error {
	if err := validateConfig(s.cfg); err != nil {
		return err
	}
	pattern, err := s.cfg.BarrierPattern()
	if err != nil {
		return fmt.Errorf("sim: init: %w", err)
	}

	s.r = rng.New(s.cfg.Simulation.RNGSeed)
	s.grid = gridworld.New(s.cfg.Simulation.SizeX, s.cfg.Simulation.SizeY)
	s.signals = signal.New(s.cfg.Simulation.SizeX, s.cfg.Simulation.SizeY, s.cfg.Signals.NumLayers)
	s.generation = 0
	s.simStep = 0
	s.running = false
	s.paused = false
	s.history = telemetry.NewHistory(historyCapacity(s.cfg))

	barrier.Apply(s.grid, s.SizeX(), s.SizeY(), pattern, s.r)

	genomes := make([]gene.Genome, s.cfg.Simulation.Population)
	for i := range genomes {
		n := s.r.NextRange(s.cfg.Genome.InitialLengthMin, s.cfg.Genome.InitialLengthMax)
		genomes[i] = gene.MakeRandom(s.r, n)
	}
	s.spawnPopulation(genomes)

	return nil
}

// spawnPopulation places len(genomes) fresh agents, one per genome, at
// random empty cells (retrying up to maxPlacementAttempts per agent before
// giving up on that agent and continuing with the rest), and rebuilds the
// color table to match.
func (s *Simulator) spawnPopulation(genomes []gene.Genome) {
	s.pop = population.New(s.grid, len(genomes))
	s.colors = make([]colorize.RGB, len(genomes)+1)

	index := 1
	for _, g := range genomes {
		loc, ok := s.randomEmptyLocation()
		if !ok {
			continue
		}
		a := agent.New(index, loc, g, NumSensors, NumActions, s.cfg.Neural.MaxInternalNeurons, s.cfg.Sensors.LongProbeDistance)
		s.pop.Place(a)
		s.colors[index] = colorize.FromGenome(g)
		index++
	}
}

func (s *Simulator) randomEmptyLocation() (geom.Coord, bool) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		c := geom.Coord{X: s.r.NextInt(s.SizeX()), Y: s.r.NextInt(s.SizeY())}
		if s.grid.IsEmpty(c) {
			return c, true
		}
	}
	return geom.Coord{}, false
}

func (s *Simulator) actionConfig() action.Config {
	return action.Config{
		ResponsivenessCurveKFactor: s.cfg.Agent.ResponsivenessCurveKFactor,
		LongProbeDistance:          s.cfg.Sensors.LongProbeDistance,
		KillEnable:                 s.cfg.Simulation.KillEnable,
	}
}

// StepOnce advances the simulation by exactly one step: every alive agent,
// in ascending index order, senses the world as it stood at step start,
// feeds forward, applies its actions (which queue moves/deaths, mutate the
// acting agent's own immediate state, and emit signals immediately), and
// ages; then queued
// deaths are drained, then queued moves, then every signal layer fades by
// one, then simStep increments. If Init has never been called, it is
// called first with the simulator's current config.
func (s *Simulator) StepOnce() {
	if s.pop == nil {
		_ = s.Init()
	}

	cfg := s.actionConfig()
	for _, a := range s.pop.Agents[1:] {
		if a == nil || !a.Alive {
			continue
		}
		sensors := sensor.ComputeAll(a, s, s.r)
		levels := a.Network.FeedForward(sensors)
		eff := action.Apply(a, levels, s, cfg, s.r)
		a.Age++

		if eff.HasKill {
			s.pop.EnqueueDeath(eff.KillTarget, true)
		}
		if eff.HasMove {
			s.pop.EnqueueMove(a.Index, eff.NewLoc)
		}
	}

	s.pop.Drain()
	s.signals.FadeAll()
	s.simStep++
}

// RunGeneration calls StepOnce until simStep reaches stepsPerGeneration,
// then EndGeneration, returning its stats.
func (s *Simulator) RunGeneration() telemetry.GenerationStats {
	if s.pop == nil {
		_ = s.Init()
	}
	for s.simStep < s.cfg.Simulation.StepsPerGeneration {
		s.StepOnce()
	}
	return s.EndGeneration()
}

func (s *Simulator) survivalCriteria() []survival.Criterion {
	criteria, err := s.cfg.SurvivalCriteria()
	if err != nil {
		return nil
	}
	return criteria
}

// EndGeneration computes survivors and GenerationStats from the current
// population, appends the stats to history, spawns the next generation's
// genomes from the survivors, clears the grid and signals, re-creates
// barriers (consuming the PRNG again), places the new agents, rebuilds
// colors, and advances the generation counter. It returns the stats for
// the generation that just ended.
func (s *Simulator) EndGeneration() telemetry.GenerationStats {
	living := s.pop.Alive()
	survivors := survival.Survivors(living, s.survivalCriteria(), s)

	stats := s.computeStats(living, survivors)
	s.history.Append(stats)

	spawnCfg := spawner.Config{
		Population:                s.cfg.Simulation.Population,
		GenomeInitialLengthMin:    s.cfg.Genome.InitialLengthMin,
		GenomeInitialLengthMax:    s.cfg.Genome.InitialLengthMax,
		GenomeMaxLength:           s.cfg.Genome.MaxLength,
		PointMutationRate:         s.cfg.Mutation.PointRate,
		GeneInsertionDeletionRate: s.cfg.Mutation.InsertionDeletionRate,
		DeletionRatio:             s.cfg.Mutation.DeletionRatio,
		SexualReproduction:        s.cfg.Reproduction.Sexual,
		ChooseParentsByFitness:    s.cfg.Reproduction.ChooseParentsByFitness,
		SizeX:                     s.SizeX(),
		SizeY:                     s.SizeY(),
	}
	genomes := spawner.NextGeneration(survivors, spawnCfg, s.r)

	s.grid.Clear()
	s.signals = signal.New(s.SizeX(), s.SizeY(), s.cfg.Signals.NumLayers)

	pattern, err := s.cfg.BarrierPattern()
	if err == nil {
		barrier.Apply(s.grid, s.SizeX(), s.SizeY(), pattern, s.r)
	}

	s.spawnPopulation(genomes)

	s.generation++
	s.simStep = 0

	return stats
}

func (s *Simulator) computeStats(living, survivors []*agent.Agent) telemetry.GenerationStats {
	stats := telemetry.GenerationStats{
		Generation: s.generation,
		Population: len(living),
		Survivors:  len(survivors),
		KillDeaths: s.pop.KillDeaths,
	}
	if len(living) > 0 {
		stats.SurvivalRate = float64(len(survivors)) / float64(len(living))
	}

	genomes := make([]gene.Genome, len(living))
	for i, a := range living {
		genomes[i] = a.Genome
	}
	stats.GeneticDiversity = gene.Diversity(genomes, diversitySamples(len(genomes)), s.r)

	if len(genomes) > 0 {
		total := 0
		stats.MinGenomeLength = len(genomes[0])
		stats.MaxGenomeLength = len(genomes[0])
		for _, g := range genomes {
			n := len(g)
			total += n
			if n < stats.MinGenomeLength {
				stats.MinGenomeLength = n
			}
			if n > stats.MaxGenomeLength {
				stats.MaxGenomeLength = n
			}
		}
		stats.AvgGenomeLength = float64(total) / float64(len(genomes))
	}

	return stats
}

func diversitySamples(n int) int {
	if n < 2 {
		return 0
	}
	return 100
}
