package agent

import (
	"testing"

	"github.com/agloe-labs/evocore/gene"
	"github.com/agloe-labs/evocore/geom"
)

func testGenome() gene.Genome {
	return gene.Genome{
		{SourceIsSensor: true, SourceID: 1, SinkIsAction: true, SinkID: 1, Weight: 500},
		{SourceIsSensor: true, SourceID: 2, SinkIsAction: false, SinkID: 0, Weight: -200},
	}
}

func TestNewSetsBirthDefaults(t *testing.T) {
	loc := geom.Coord{X: 3, Y: 4}
	a := New(1, loc, testGenome(), 21, 17, 4, 16)

	if !a.Alive {
		t.Fatal("a new agent must start alive")
	}
	if a.Loc != loc || a.BirthLoc != loc {
		t.Fatalf("Loc = %v, BirthLoc = %v, want both %v", a.Loc, a.BirthLoc, loc)
	}
	if a.LastMoveDir != geom.Center {
		t.Fatalf("LastMoveDir = %v, want Center", a.LastMoveDir)
	}
	if a.Age != 0 {
		t.Fatalf("Age = %d, want 0", a.Age)
	}
	if a.Responsiveness != 0.5 {
		t.Fatalf("Responsiveness = %v, want 0.5", a.Responsiveness)
	}
	if a.OscPeriod != 34 {
		t.Fatalf("OscPeriod = %d, want 34", a.OscPeriod)
	}
	if a.LongProbeDist != 16 {
		t.Fatalf("LongProbeDist = %d, want 16", a.LongProbeDist)
	}
}

func TestNewBuildsANetworkMatchingTheGenome(t *testing.T) {
	a := New(1, geom.Coord{}, testGenome(), 21, 17, 4, 16)
	if a.Network == nil {
		t.Fatal("New must build a non-nil network")
	}
	if a.Network.NumSensors != 21 || a.Network.NumActions != 17 {
		t.Fatalf("network sensors/actions = %d/%d, want 21/17", a.Network.NumSensors, a.Network.NumActions)
	}
}

func TestNewIndexIsStable(t *testing.T) {
	a := New(7, geom.Coord{}, testGenome(), 21, 17, 4, 16)
	if a.Index != 7 {
		t.Fatalf("Index = %d, want 7", a.Index)
	}
}

func TestNewWithEmptyGenomeStillBuildsUsableNetwork(t *testing.T) {
	a := New(1, geom.Coord{}, gene.Genome{}, 21, 17, 4, 16)
	levels := a.Network.FeedForward(make([]float64, 21))
	if len(levels) != 17 {
		t.Fatalf("len(levels) = %d, want 17", len(levels))
	}
	for i, v := range levels {
		if v != 0 {
			t.Fatalf("levels[%d] = %v, want 0 for an empty genome", i, v)
		}
	}
}
