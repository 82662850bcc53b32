package barrier

import (
	"testing"

	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/gridworld"
	"github.com/agloe-labs/evocore/rng"
)

func countBarriers(grid *gridworld.Grid, sizeX, sizeY int) int {
	n := 0
	for y := 0; y < sizeY; y++ {
		for x := 0; x < sizeX; x++ {
			if grid.IsBarrier(geom.Coord{X: x, Y: y}) {
				n++
			}
		}
	}
	return n
}

func TestNoneLeavesGridEmpty(t *testing.T) {
	grid := gridworld.New(40, 40)
	Apply(grid, 40, 40, None, rng.New(1))
	if countBarriers(grid, 40, 40) != 0 {
		t.Fatal("NONE pattern should not place any barrier cells")
	}
}

func TestVerticalBarConstantPlacesExpectedColumn(t *testing.T) {
	grid := gridworld.New(40, 40)
	Apply(grid, 40, 40, VerticalBarConstant, rng.New(1))
	x := 40 / 2
	for y := 40 / 4; y < 40*3/4; y++ {
		if !grid.IsBarrier(geom.Coord{X: x, Y: y}) {
			t.Fatalf("expected barrier at (%d,%d)", x, y)
		}
	}
	if grid.IsBarrier(geom.Coord{X: x + 1, Y: 40 / 4}) {
		t.Fatal("bar should not spill into adjacent column")
	}
}

func TestVerticalBarRandomIsDeterministicPerSeed(t *testing.T) {
	g1 := gridworld.New(40, 40)
	g2 := gridworld.New(40, 40)
	Apply(g1, 40, 40, VerticalBarRandom, rng.New(7))
	Apply(g2, 40, 40, VerticalBarRandom, rng.New(7))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := geom.Coord{X: x, Y: y}
			if g1.IsBarrier(c) != g2.IsBarrier(c) {
				t.Fatalf("same-seed VERTICAL_BAR_RANDOM diverged at %v", c)
			}
		}
	}
}

func TestHorizontalBarConstantPlacesExpectedRow(t *testing.T) {
	grid := gridworld.New(40, 40)
	Apply(grid, 40, 40, HorizontalBarConstant, rng.New(1))
	y := 40 / 2
	for x := 40 / 4; x < 40*3/4; x++ {
		if !grid.IsBarrier(geom.Coord{X: x, Y: y}) {
			t.Fatalf("expected barrier at (%d,%d)", x, y)
		}
	}
}

func TestFiveBlocksPlacesFiveDistinctClusters(t *testing.T) {
	grid := gridworld.New(100, 60)
	Apply(grid, 100, 60, FiveBlocks, rng.New(1))
	centers := []geom.Coord{
		{X: 25, Y: 15}, {X: 75, Y: 15}, {X: 25, Y: 45}, {X: 75, Y: 45}, {X: 50, Y: 30},
	}
	for _, c := range centers {
		if !grid.IsBarrier(c) {
			t.Fatalf("expected a barrier block centered near %v", c)
		}
	}
}

func TestFloatingIslandsPlacesBarrierCells(t *testing.T) {
	grid := gridworld.New(100, 100)
	Apply(grid, 100, 100, FloatingIslands, rng.New(3))
	if countBarriers(grid, 100, 100) == 0 {
		t.Fatal("expected floating islands to place some barrier cells")
	}
}

func TestSpotsIsDeterministicAndConfigOnly(t *testing.T) {
	g1 := gridworld.New(40, 40)
	g2 := gridworld.New(40, 40)
	Apply(g1, 40, 40, Spots, rng.New(1))
	Apply(g2, 40, 40, Spots, rng.New(99))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := geom.Coord{X: x, Y: y}
			if g1.IsBarrier(c) != g2.IsBarrier(c) {
				t.Fatalf("SPOTS should not depend on rng seed, diverged at %v", c)
			}
		}
	}
	if countBarriers(g1, 40, 40) == 0 {
		t.Fatal("expected SPOTS to place some barrier cells")
	}
}
