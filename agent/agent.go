// Package agent defines the per-individual simulation state.
package agent

import (
	"github.com/agloe-labs/evocore/gene"
	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/neural"
)

// Agent is one individual's full per-lifetime state. Index is 1-based and
// stable for the agent's lifetime within a generation; index 0 is reserved
// as the grid's "empty" sentinel and is never assigned to a live agent.
type Agent struct {
	Index int

	Alive    bool
	Loc      geom.Coord
	BirthLoc geom.Coord

	LastMoveDir geom.Direction

	Genome  gene.Genome
	Network *neural.Network

	Age int

	Responsiveness float64
	OscPeriod      int
	LongProbeDist  int
}

// New constructs a fresh agent at loc with the given genome, built into a
// network with numSensors/numActions/maxInternalNeurons, and the default
// per-agent state the spec assigns at birth.
func New(index int, loc geom.Coord, g gene.Genome, numSensors, numActions, maxInternalNeurons, longProbeDist int) *Agent {
	return &Agent{
		Index:          index,
		Alive:          true,
		Loc:            loc,
		BirthLoc:       loc,
		LastMoveDir:    geom.Center,
		Genome:         g,
		Network:        neural.Build(g, numSensors, numActions, maxInternalNeurons),
		Age:            0,
		Responsiveness: 0.5,
		OscPeriod:      34,
		LongProbeDist:  longProbeDist,
	}
}
