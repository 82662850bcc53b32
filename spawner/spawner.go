// Package spawner produces the next generation's genome list from the
// previous generation's survivors.
package spawner

import (
	"github.com/agloe-labs/evocore/agent"
	"github.com/agloe-labs/evocore/gene"
	"github.com/agloe-labs/evocore/rng"
)

// Config holds the spawner tunables sourced from the simulation
// configuration.
type Config struct {
	Population                int
	GenomeInitialLengthMin    int
	GenomeInitialLengthMax    int
	GenomeMaxLength           int
	PointMutationRate         float64
	GeneInsertionDeletionRate float64
	DeletionRatio             float64
	SexualReproduction        bool
	ChooseParentsByFitness    bool
	SizeX, SizeY              int
}

// NextGeneration returns cfg.Population genomes derived from survivors (the
// prior generation's survivor set). If survivors is empty, every genome is
// freshly randomized.
func NextGeneration(survivors []*agent.Agent, cfg Config, r *rng.Source) []gene.Genome {
	out := make([]gene.Genome, cfg.Population)
	for i := range out {
		var child gene.Genome
		switch {
		case len(survivors) == 0:
			n := r.NextRange(cfg.GenomeInitialLengthMin, cfg.GenomeInitialLengthMax)
			child = gene.MakeRandom(r, n)
		case cfg.SexualReproduction && len(survivors) >= 2:
			p1 := selectParent(survivors, cfg, r)
			p2 := selectParent(survivors, cfg, r)
			for attempt := 0; attempt < 10 && p2 == p1; attempt++ {
				p2 = selectParent(survivors, cfg, r)
			}
			child = gene.Crossover(p1.Genome, p2.Genome, r)
		default:
			p := selectParent(survivors, cfg, r)
			child = gene.Clone(p.Genome)
		}

		gene.ApplyPointMutations(child, cfg.PointMutationRate, r)
		child = gene.ApplyInsertionDeletion(child, cfg.GeneInsertionDeletionRate, cfg.DeletionRatio, cfg.GenomeMaxLength, r)
		out[i] = child
	}
	return out
}

// selectParent picks one survivor. With chooseParentsByFitness and at least
// two survivors, it runs a binary tournament favoring the candidate closer
// to the grid center (Manhattan distance); otherwise it picks uniformly.
func selectParent(survivors []*agent.Agent, cfg Config, r *rng.Source) *agent.Agent {
	if !cfg.ChooseParentsByFitness || len(survivors) < 2 {
		return survivors[r.NextInt(len(survivors))]
	}
	a := survivors[r.NextInt(len(survivors))]
	b := survivors[r.NextInt(len(survivors))]
	if manhattanToCenter(a, cfg) <= manhattanToCenter(b, cfg) {
		return a
	}
	return b
}

func manhattanToCenter(a *agent.Agent, cfg Config) int {
	cx, cy := cfg.SizeX/2, cfg.SizeY/2
	dx := a.Loc.X - cx
	if dx < 0 {
		dx = -dx
	}
	dy := a.Loc.Y - cy
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
