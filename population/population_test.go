package population

import (
	"testing"

	"github.com/agloe-labs/evocore/agent"
	"github.com/agloe-labs/evocore/gene"
	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/gridworld"
)

func testAgent(idx int, loc geom.Coord) *agent.Agent {
	g := gene.Genome{{SourceIsSensor: true, SourceID: 1, SinkIsAction: true, SinkID: 1, Weight: 100}}
	return agent.New(idx, loc, g, 21, 17, 4, 4)
}

func TestPlaceWritesGridTag(t *testing.T) {
	grid := gridworld.New(10, 10)
	m := New(grid, 10)
	a := testAgent(1, geom.Coord{X: 3, Y: 3})
	m.Place(a)
	if grid.At(a.Loc) != 1 {
		t.Fatalf("grid tag at agent location = %d, want 1", grid.At(a.Loc))
	}
}

func TestAgentAtResolvesLivingOccupant(t *testing.T) {
	grid := gridworld.New(10, 10)
	m := New(grid, 10)
	a := testAgent(1, geom.Coord{X: 3, Y: 3})
	m.Place(a)

	got, ok := m.AgentAt(a.Loc)
	if !ok || got != a {
		t.Fatalf("AgentAt(%v) = %v, %v; want %v, true", a.Loc, got, ok, a)
	}
	if _, ok := m.AgentAt(geom.Coord{X: 0, Y: 0}); ok {
		t.Fatal("AgentAt on empty cell should report not found")
	}
}

func TestDeathClearsGridAndAliveFlag(t *testing.T) {
	grid := gridworld.New(10, 10)
	m := New(grid, 10)
	a := testAgent(1, geom.Coord{X: 3, Y: 3})
	m.Place(a)

	m.EnqueueDeath(a.Index, true)
	m.Drain()

	if a.Alive {
		t.Fatal("expected agent to be dead after drain")
	}
	if !grid.IsEmpty(a.Loc) {
		t.Fatal("expected grid cell to be empty after death")
	}
	if m.KillDeaths != 1 {
		t.Fatalf("KillDeaths = %d, want 1", m.KillDeaths)
	}
}

func TestMoveAppliesWhenDestinationEmpty(t *testing.T) {
	grid := gridworld.New(10, 10)
	m := New(grid, 10)
	a := testAgent(1, geom.Coord{X: 3, Y: 3})
	m.Place(a)

	dest := geom.Coord{X: 4, Y: 3}
	m.EnqueueMove(a.Index, dest)
	m.Drain()

	if a.Loc != dest {
		t.Fatalf("agent loc = %v, want %v", a.Loc, dest)
	}
	if !grid.IsEmpty((geom.Coord{X: 3, Y: 3})) {
		t.Fatal("expected source cell to be cleared")
	}
	if grid.At(dest) != uint16(a.Index) {
		t.Fatal("expected destination cell to carry the agent's index")
	}
}

func TestMoveDroppedWhenDestinationFilledByEarlierDrain(t *testing.T) {
	grid := gridworld.New(10, 10)
	m := New(grid, 10)
	a := testAgent(1, geom.Coord{X: 3, Y: 3})
	b := testAgent(2, geom.Coord{X: 5, Y: 3})
	m.Place(a)
	m.Place(b)

	dest := geom.Coord{X: 4, Y: 3}
	m.EnqueueMove(a.Index, dest)
	m.EnqueueMove(b.Index, dest)
	m.Drain()

	if a.Loc != dest {
		t.Fatalf("first-queued move should win: a.Loc = %v, want %v", a.Loc, dest)
	}
	if b.Loc != (geom.Coord{X: 5, Y: 3}) {
		t.Fatal("second move into an already-filled destination should be dropped")
	}
}

func TestMoveDroppedForAgentThatDiedThisStep(t *testing.T) {
	grid := gridworld.New(10, 10)
	m := New(grid, 10)
	a := testAgent(1, geom.Coord{X: 3, Y: 3})
	m.Place(a)

	m.EnqueueDeath(a.Index, false)
	m.EnqueueMove(a.Index, geom.Coord{X: 4, Y: 3})
	m.Drain()

	if a.Alive {
		t.Fatal("expected agent to stay dead")
	}
	if !grid.IsEmpty(geom.Coord{X: 4, Y: 3}) {
		t.Fatal("move for a dead agent must not write the grid")
	}
}

func TestAliveReturnsOnlyLivingAgentsInIndexOrder(t *testing.T) {
	grid := gridworld.New(10, 10)
	m := New(grid, 10)
	a := testAgent(1, geom.Coord{X: 1, Y: 1})
	b := testAgent(2, geom.Coord{X: 2, Y: 2})
	c := testAgent(3, geom.Coord{X: 3, Y: 3})
	m.Place(a)
	m.Place(b)
	m.Place(c)

	m.EnqueueDeath(b.Index, false)
	m.Drain()

	got := m.Alive()
	if len(got) != 2 || got[0].Index != 1 || got[1].Index != 3 {
		t.Fatalf("Alive() = %+v, want agents [1,3]", got)
	}
}

func TestKillDeathsCounterOnlyCountsKilledFlag(t *testing.T) {
	grid := gridworld.New(10, 10)
	m := New(grid, 10)
	a := testAgent(1, geom.Coord{X: 1, Y: 1})
	b := testAgent(2, geom.Coord{X: 2, Y: 2})
	m.Place(a)
	m.Place(b)

	m.EnqueueDeath(a.Index, false)
	m.EnqueueDeath(b.Index, true)
	m.Drain()

	if m.KillDeaths != 1 {
		t.Fatalf("KillDeaths = %d, want 1", m.KillDeaths)
	}
}
