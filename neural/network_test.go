package neural

import (
	"testing"

	"github.com/agloe-labs/evocore/gene"
)

func mkGene(sourceSensor bool, sourceID uint8, sinkAction bool, sinkID uint8, weight int16) gene.Gene {
	return gene.Gene{SourceIsSensor: sourceSensor, SourceID: sourceID, SinkIsAction: sinkAction, SinkID: sinkID, Weight: weight}
}

func TestBuildPrunesUndrivenCycle(t *testing.T) {
	// N0 -> N1 -> N2 -> N0, no sensor driving any of them.
	g := gene.Genome{
		mkGene(false, 0, false, 1, 100),
		mkGene(false, 1, false, 2, 100),
		mkGene(false, 2, false, 0, 100),
	}
	net := Build(g, 21, 17, 3)
	if len(net.Connections) != 0 {
		t.Fatalf("expected all connections pruned, got %d", len(net.Connections))
	}
	for i, n := range net.Neurons {
		if n.Driven {
			t.Errorf("neuron %d should not be driven", i)
		}
	}
}

func TestBuildKeepsSensorFedChain(t *testing.T) {
	g := gene.Genome{
		mkGene(true, 0, false, 0, 100),  // sensor0 -> N0
		mkGene(false, 0, false, 1, 100), // N0 -> N1
	}
	net := Build(g, 21, 17, 3)
	if len(net.Connections) != 2 {
		t.Fatalf("expected both connections kept, got %d", len(net.Connections))
	}
	if !net.Neurons[0].Driven || !net.Neurons[1].Driven {
		t.Fatal("both neurons should be driven")
	}
	if net.Neurons[2].Driven {
		t.Fatal("unconnected neuron 2 should not be driven")
	}
}

func TestBuildPrunesActionFromUndrivenSource(t *testing.T) {
	g := gene.Genome{
		mkGene(false, 0, true, 5, 100), // N0 (never driven) -> action5
	}
	net := Build(g, 21, 17, 3)
	if len(net.Connections) != 0 {
		t.Fatal("connection sourced from undriven neuron to an action must be pruned")
	}
}

func TestBuildInvariantNoUndrivenSource(t *testing.T) {
	g := gene.Genome{
		mkGene(true, 3, false, 0, 50),
		mkGene(false, 0, false, 1, -50),
		mkGene(false, 9, false, 2, 20), // N9 (remapped) never driven
		mkGene(false, 2, true, 4, 10),  // sourced from undriven N2
	}
	net := Build(g, 21, 17, 4)
	for _, c := range net.Connections {
		if !c.SourceIsSensor && !net.Neurons[c.SourceID].Driven {
			t.Fatalf("invariant violated: connection %+v sources an undriven neuron", c)
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	g := gene.Genome{
		mkGene(true, 1, false, 0, 100),
		mkGene(false, 0, false, 1, 100),
		mkGene(false, 1, true, 2, 100),
	}
	n1 := Build(g, 21, 17, 3)
	n2 := Build(g, 21, 17, 3)
	if len(n1.Connections) != len(n2.Connections) {
		t.Fatal("Build must be deterministic given the same genome")
	}
	for i := range n1.Connections {
		if n1.Connections[i] != n2.Connections[i] {
			t.Fatalf("connection %d differs between builds", i)
		}
	}
	for i := range n1.Neurons {
		if n1.Neurons[i] != n2.Neurons[i] {
			t.Fatalf("neuron %d differs between builds", i)
		}
	}
}

func TestFeedForwardProducesBoundedActionLevels(t *testing.T) {
	g := gene.Genome{
		mkGene(true, 0, true, 0, 32000),
		mkGene(true, 1, true, 1, -32000),
	}
	net := Build(g, 21, 17, 8)
	sensors := make([]float64, 21)
	sensors[0] = 1.0
	sensors[1] = 1.0
	levels := net.FeedForward(sensors)
	if len(levels) != 17 {
		t.Fatalf("expected 17 action levels, got %d", len(levels))
	}
	for a, v := range levels {
		if v < -1 || v > 1 {
			t.Fatalf("action %d level %v out of [-1,1]", a, v)
		}
	}
}

func TestDrivenNeuronOutputReplacedAfterStep(t *testing.T) {
	g := gene.Genome{
		mkGene(true, 0, false, 0, 8192), // weight 1.0
	}
	net := Build(g, 21, 17, 1)
	sensors := make([]float64, 21)
	sensors[0] = 0
	net.FeedForward(sensors)
	firstOutput := net.Neurons[0].Output

	// With zero input the driven neuron's output should settle to tanh(0)=0,
	// not retain the initial 0.5 placeholder.
	if firstOutput != 0 {
		t.Fatalf("expected neuron output 0 after zero-input step, got %v", firstOutput)
	}
}
