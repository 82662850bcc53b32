// Package config provides configuration loading and access for the
// evolution core.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agloe-labs/evocore/barrier"
	"github.com/agloe-labs/evocore/survival"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every simulation configuration parameter recognized by the
// core.
type Config struct {
	Simulation   SimulationConfig   `yaml:"simulation"`
	Genome       GenomeConfig       `yaml:"genome"`
	Neural       NeuralConfig       `yaml:"neural"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Survival     SurvivalConfig     `yaml:"survival"`
	Barrier      BarrierConfig      `yaml:"barrier"`
	Signals      SignalsConfig      `yaml:"signals"`
	Sensors      SensorsConfig      `yaml:"sensors"`
	Agent        AgentConfig        `yaml:"agent"`

	// Derived values computed after loading or merging.
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds the top-level sizing and lifecycle parameters.
// SizeX, SizeY, and RNGSeed are "requires reset" fields: changing them
// through UpdateParams is rejected rather than merged live.
type SimulationConfig struct {
	Population         int    `yaml:"population"`
	StepsPerGeneration int    `yaml:"steps_per_generation"`
	MaxGenerations     int    `yaml:"max_generations"`
	SizeX              int    `yaml:"size_x"`
	SizeY              int    `yaml:"size_y"`
	RNGSeed            uint32 `yaml:"rng_seed"`
	KillEnable         bool   `yaml:"kill_enable"`
}

// GenomeConfig holds genome length bounds.
type GenomeConfig struct {
	InitialLengthMin int `yaml:"initial_length_min"`
	InitialLengthMax int `yaml:"initial_length_max"`
	MaxLength        int `yaml:"max_length"`
}

// NeuralConfig holds neural network construction parameters.
type NeuralConfig struct {
	MaxInternalNeurons int `yaml:"max_internal_neurons"`
}

// MutationConfig holds the genetic mutation rates.
type MutationConfig struct {
	PointRate             float64 `yaml:"point_rate"`
	InsertionDeletionRate float64 `yaml:"insertion_deletion_rate"`
	DeletionRatio         float64 `yaml:"deletion_ratio"`
}

// ReproductionConfig holds spawner selection parameters.
type ReproductionConfig struct {
	Sexual                 bool `yaml:"sexual"`
	ChooseParentsByFitness bool `yaml:"choose_parents_by_fitness"`
}

// SurvivalConfig names the active survival criteria by their recognized
// string identifiers (e.g. "circle", "contact").
type SurvivalConfig struct {
	Criteria []string `yaml:"criteria"`
}

// BarrierConfig names the barrier pattern by its recognized string
// identifier. This is a "requires reset" field.
type BarrierConfig struct {
	Type string `yaml:"type"`
}

// SignalsConfig holds pheromone layer parameters. NumLayers is a
// "requires reset" field.
type SignalsConfig struct {
	NumLayers    int     `yaml:"num_layers"`
	SensorRadius float64 `yaml:"sensor_radius"`
}

// SensorsConfig holds the remaining sensor-geometry parameters.
type SensorsConfig struct {
	PopulationRadius          float64 `yaml:"population_radius"`
	LongProbeDistance         int     `yaml:"long_probe_distance"`
	ShortProbeBarrierDistance int     `yaml:"short_probe_barrier_distance"`
}

// AgentConfig holds the per-agent action-layer tunable.
type AgentConfig struct {
	ResponsivenessCurveKFactor float64 `yaml:"responsiveness_curve_k_factor"`
}

// DerivedConfig holds values computed from the loaded config rather than
// read from it directly.
type DerivedConfig struct {
	GridCellCount int
}

var requiresReset = map[string]bool{
	"simulation.size_x":   true,
	"simulation.size_y":   true,
	"simulation.rng_seed": true,
	"barrier.type":        true,
	"signals.num_layers":  true,
}

// global holds the loaded configuration for the process-global singleton
// accessors used by the CLIs. The Simulator itself never touches this.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) computeDerived() {
	c.Derived.GridCellCount = c.Simulation.SizeX * c.Simulation.SizeY
}

// Clone returns a deep-enough copy of c for safe independent mutation
// (every field is a value type or a freshly-copied slice).
func (c *Config) Clone() *Config {
	out := *c
	out.Survival.Criteria = append([]string(nil), c.Survival.Criteria...)
	return &out
}

// UpdateParams merges the fields of patch named in setFields into c, zero
// values included, rejecting the merge entirely if setFields names any
// "requires reset" field. setFields lists dotted field names (e.g.
// "mutation.point_rate"); it exists because the zero value of a field is
// otherwise indistinguishable from "not specified".
func (c *Config) UpdateParams(patch *Config, setFields []string) error {
	for _, f := range setFields {
		if requiresReset[f] {
			return fmt.Errorf("config: field %q requires a reset, not a live update", f)
		}
	}

	set := make(map[string]bool, len(setFields))
	for _, f := range setFields {
		set[f] = true
	}

	if set["simulation.population"] {
		c.Simulation.Population = patch.Simulation.Population
	}
	if set["simulation.steps_per_generation"] {
		c.Simulation.StepsPerGeneration = patch.Simulation.StepsPerGeneration
	}
	if set["simulation.max_generations"] {
		c.Simulation.MaxGenerations = patch.Simulation.MaxGenerations
	}
	if set["simulation.kill_enable"] {
		c.Simulation.KillEnable = patch.Simulation.KillEnable
	}
	if set["mutation.point_rate"] {
		c.Mutation.PointRate = patch.Mutation.PointRate
	}
	if set["mutation.insertion_deletion_rate"] {
		c.Mutation.InsertionDeletionRate = patch.Mutation.InsertionDeletionRate
	}
	if set["mutation.deletion_ratio"] {
		c.Mutation.DeletionRatio = patch.Mutation.DeletionRatio
	}
	if set["reproduction.sexual"] {
		c.Reproduction.Sexual = patch.Reproduction.Sexual
	}
	if set["reproduction.choose_parents_by_fitness"] {
		c.Reproduction.ChooseParentsByFitness = patch.Reproduction.ChooseParentsByFitness
	}
	if set["survival.criteria"] {
		c.Survival.Criteria = patch.Survival.Criteria
	}
	if set["agent.responsiveness_curve_k_factor"] {
		c.Agent.ResponsivenessCurveKFactor = patch.Agent.ResponsivenessCurveKFactor
	}
	if set["signals.sensor_radius"] {
		c.Signals.SensorRadius = patch.Signals.SensorRadius
	}
	if set["sensors.population_radius"] {
		c.Sensors.PopulationRadius = patch.Sensors.PopulationRadius
	}
	if set["sensors.long_probe_distance"] {
		c.Sensors.LongProbeDistance = patch.Sensors.LongProbeDistance
	}
	if set["sensors.short_probe_barrier_distance"] {
		c.Sensors.ShortProbeBarrierDistance = patch.Sensors.ShortProbeBarrierDistance
	}

	c.computeDerived()
	return nil
}

var criteriaByName = map[string]survival.Criterion{
	"circle":           survival.Circle,
	"right_eighth":     survival.RightEighth,
	"left_eighth":      survival.LeftEighth,
	"center_weighted":  survival.CenterWeighted,
	"corner_weighted":  survival.CornerWeighted,
	"pairs":            survival.Pairs,
	"contact":          survival.Contact,
	"against_any_wall": survival.AgainstAnyWall,
	"touch_any_wall":   survival.TouchAnyWall,
}

// SurvivalCriteria parses Survival.Criteria into their typed form.
func (c *Config) SurvivalCriteria() ([]survival.Criterion, error) {
	out := make([]survival.Criterion, 0, len(c.Survival.Criteria))
	for _, name := range c.Survival.Criteria {
		crit, ok := criteriaByName[name]
		if !ok {
			return nil, fmt.Errorf("config: unrecognized survival criterion %q", name)
		}
		out = append(out, crit)
	}
	return out, nil
}

var barrierByName = map[string]barrier.Pattern{
	"none":                    barrier.None,
	"vertical_bar_constant":   barrier.VerticalBarConstant,
	"vertical_bar_random":     barrier.VerticalBarRandom,
	"horizontal_bar_constant": barrier.HorizontalBarConstant,
	"five_blocks":             barrier.FiveBlocks,
	"floating_islands":        barrier.FloatingIslands,
	"spots":                   barrier.Spots,
}

// BarrierPattern parses Barrier.Type into its typed form.
func (c *Config) BarrierPattern() (barrier.Pattern, error) {
	pattern, ok := barrierByName[c.Barrier.Type]
	if !ok {
		return barrier.None, fmt.Errorf("config: unrecognized barrier type %q", c.Barrier.Type)
	}
	return pattern, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
