package spawner

import (
	"testing"

	"github.com/agloe-labs/evocore/agent"
	"github.com/agloe-labs/evocore/gene"
	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/rng"
)

func testAgent(idx int, loc geom.Coord, g gene.Genome) *agent.Agent {
	return agent.New(idx, loc, g, 21, 17, 4, 4)
}

func baseConfig() Config {
	return Config{
		Population:                10,
		GenomeInitialLengthMin:    2,
		GenomeInitialLengthMax:    4,
		GenomeMaxLength:           32,
		PointMutationRate:         0,
		GeneInsertionDeletionRate: 0,
		DeletionRatio:             0.5,
		SexualReproduction:        false,
		ChooseParentsByFitness:    false,
		SizeX:                     40,
		SizeY:                     40,
	}
}

func TestNextGenerationSizeMatchesPopulation(t *testing.T) {
	cfg := baseConfig()
	out := NextGeneration(nil, cfg, rng.New(1))
	if len(out) != cfg.Population {
		t.Fatalf("len(out) = %d, want %d", len(out), cfg.Population)
	}
}

func TestNextGenerationWithNoSurvivorsProducesNonEmptyGenomes(t *testing.T) {
	cfg := baseConfig()
	out := NextGeneration(nil, cfg, rng.New(1))
	for i, g := range out {
		if len(g) == 0 {
			t.Fatalf("genome %d is empty, want a fresh random genome", i)
		}
	}
}

func TestNextGenerationAsexualClonesSurvivorGenome(t *testing.T) {
	cfg := baseConfig()
	g := gene.Genome{{SourceIsSensor: true, SourceID: 1, SinkIsAction: true, SinkID: 2, Weight: 500}}
	survivors := []*agent.Agent{testAgent(1, geom.Coord{X: 5, Y: 5}, g)}
	out := NextGeneration(survivors, cfg, rng.New(1))
	for _, child := range out {
		if !gene.Equal(child, g) {
			t.Fatalf("expected asexual child to equal sole survivor genome, got %+v", child)
		}
	}
}

func TestNextGenerationSexualProducesCrossoverChild(t *testing.T) {
	cfg := baseConfig()
	cfg.SexualReproduction = true
	g1 := gene.Genome{
		{SourceIsSensor: true, SourceID: 1, SinkIsAction: true, SinkID: 1, Weight: 1},
		{SourceIsSensor: true, SourceID: 2, SinkIsAction: true, SinkID: 2, Weight: 2},
	}
	g2 := gene.Genome{
		{SourceIsSensor: true, SourceID: 3, SinkIsAction: true, SinkID: 3, Weight: 3},
		{SourceIsSensor: true, SourceID: 4, SinkIsAction: true, SinkID: 4, Weight: 4},
	}
	survivors := []*agent.Agent{
		testAgent(1, geom.Coord{X: 5, Y: 5}, g1),
		testAgent(2, geom.Coord{X: 35, Y: 35}, g2),
	}
	out := NextGeneration(survivors, cfg, rng.New(3))
	for _, child := range out {
		if len(child) == 0 {
			t.Fatal("expected non-empty crossover child")
		}
	}
}

func TestSelectParentUniformWhenFitnessSelectionOff(t *testing.T) {
	cfg := baseConfig()
	survivors := []*agent.Agent{
		testAgent(1, geom.Coord{X: 0, Y: 0}, gene.Genome{{Weight: 1}}),
		testAgent(2, geom.Coord{X: 20, Y: 20}, gene.Genome{{Weight: 2}}),
	}
	r := rng.New(5)
	p := selectParent(survivors, cfg, r)
	if p != survivors[0] && p != survivors[1] {
		t.Fatal("selectParent must return one of the survivors")
	}
}

func TestSelectParentFitnessFavorsCloserToCenter(t *testing.T) {
	cfg := baseConfig()
	cfg.ChooseParentsByFitness = true
	center := testAgent(1, geom.Coord{X: 20, Y: 20}, gene.Genome{{Weight: 1}})
	corner := testAgent(2, geom.Coord{X: 0, Y: 0}, gene.Genome{{Weight: 2}})
	survivors := []*agent.Agent{center, corner}

	centerPicks := 0
	for seed := uint32(0); seed < 50; seed++ {
		p := selectParent(survivors, cfg, rng.New(seed))
		if p != center && p != corner {
			t.Fatal("selectParent must return one of the survivors")
		}
		if p == center {
			centerPicks++
		}
	}
	// The tournament returns the corner agent only when both draws pick it.
	if centerPicks <= 25 {
		t.Fatalf("center agent picked %d of 50 times, want a majority", centerPicks)
	}
}

func TestMutationRateOneAlwaysMutates(t *testing.T) {
	cfg := baseConfig()
	cfg.PointMutationRate = 1.0
	g := gene.Genome{{SourceIsSensor: true, SourceID: 1, SinkIsAction: true, SinkID: 2, Weight: 100}}
	survivors := []*agent.Agent{testAgent(1, geom.Coord{X: 5, Y: 5}, g)}
	out := NextGeneration(survivors, cfg, rng.New(1))
	for i, child := range out {
		if gene.Equal(child, g) {
			t.Fatalf("child %d unchanged; expected point mutation rate of 1.0 to alter every child genome", i)
		}
	}
}
