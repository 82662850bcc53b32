// Package neural builds a sparse feed-forward network from a packed gene
// sequence and evaluates it against a sensor vector each step.
package neural

import "github.com/agloe-labs/evocore/gene"

// Connection is one resolved (post-remap) synapse: its endpoints are
// already dense indices into the sensor, action, or internal-neuron index
// spaces, and its weight has already been converted from the packed
// integer form to a real number.
type Connection struct {
	SourceIsSensor bool
	SourceID       int
	SinkIsAction   bool
	SinkID         int
	Weight         float64
}

// Neuron is one internal neuron's persistent state.
type Neuron struct {
	Output float64
	Driven bool
}

// Network is the built form of a genome: a flat connection list plus the
// internal neuron state array it reads and writes each step.
type Network struct {
	Connections []Connection
	Neurons     []Neuron
	NumSensors  int
	NumActions  int
}

func remap(id, count int) int {
	if count <= 0 {
		return 0
	}
	return id % count
}

// Build resolves a genome's gene endpoints into a Network with
// maxInternalNeurons internal neurons, numSensors sensors, and numActions
// actions. Every connection whose source is an internal neuron that never
// becomes driven — directly or transitively — by a sensor is pruned to a
// fixed point.
//
// The pruning fixed point is computed by growing the driven set outward
// from sensor-fed neurons rather than by repeatedly removing connections
// and recomputing driven from what remains; both characterize the same set
// (a neuron is driven iff some surviving chain of connections traces back
// to a sensor), and the growing form terminates in at most
// maxInternalNeurons passes without needing a separate "remove, then
// recheck" loop.
func Build(g gene.Genome, numSensors, numActions, maxInternalNeurons int) *Network {
	conns := make([]Connection, len(g))
	for i, gg := range g {
		c := Connection{
			SourceIsSensor: gg.SourceIsSensor,
			SinkIsAction:   gg.SinkIsAction,
			Weight:         gg.WeightF(),
		}
		if gg.SourceIsSensor {
			c.SourceID = remap(int(gg.SourceID), numSensors)
		} else {
			c.SourceID = remap(int(gg.SourceID), maxInternalNeurons)
		}
		if gg.SinkIsAction {
			c.SinkID = remap(int(gg.SinkID), numActions)
		} else {
			c.SinkID = remap(int(gg.SinkID), maxInternalNeurons)
		}
		conns[i] = c
	}

	driven := make([]bool, maxInternalNeurons)
	for {
		changed := false
		for _, c := range conns {
			if c.SinkIsAction {
				continue
			}
			if !c.SourceIsSensor && !driven[c.SourceID] {
				continue
			}
			if !driven[c.SinkID] {
				driven[c.SinkID] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	out := make([]Connection, 0, len(conns))
	for _, c := range conns {
		if !c.SourceIsSensor && !driven[c.SourceID] {
			continue
		}
		out = append(out, c)
	}

	neurons := make([]Neuron, maxInternalNeurons)
	for i := range neurons {
		neurons[i] = Neuron{Output: 0.5, Driven: driven[i]}
	}

	return &Network{
		Connections: out,
		Neurons:     neurons,
		NumSensors:  numSensors,
		NumActions:  numActions,
	}
}
