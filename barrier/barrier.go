// Package barrier generates the fixed obstacle layouts a generation's grid
// is initialized with, before any agent is placed. Patterns that involve
// randomness draw from the simulation's single shared PRNG, so barrier
// layout is part of the same reproducible stream as genome generation and
// agent placement.
package barrier

import (
	"math"

	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/gridworld"
	"github.com/agloe-labs/evocore/rng"
)

// Pattern selects one of the seven recognized barrier layouts.
type Pattern int

const (
	None Pattern = iota
	VerticalBarConstant
	VerticalBarRandom
	HorizontalBarConstant
	FiveBlocks
	FloatingIslands
	Spots
)

// Apply writes Barrier cells into grid for the given pattern. sizeX/sizeY
// must match grid's dimensions; they are passed separately because several
// formulas read more naturally in terms of plain ints than grid accessors.
func Apply(grid *gridworld.Grid, sizeX, sizeY int, pattern Pattern, r *rng.Source) {
	switch pattern {
	case None:
	case VerticalBarConstant:
		verticalBar(grid, sizeX, sizeY, sizeX/2)
	case VerticalBarRandom:
		x := sizeX/4 + r.NextInt(sizeX/2)
		verticalBar(grid, sizeX, sizeY, x)
	case HorizontalBarConstant:
		horizontalBar(grid, sizeX, sizeY, sizeY/2)
	case FiveBlocks:
		fiveBlocks(grid, sizeX, sizeY)
	case FloatingIslands:
		floatingIslands(grid, sizeX, sizeY, r)
	case Spots:
		spots(grid, sizeX, sizeY)
	}
}

func verticalBar(grid *gridworld.Grid, sizeX, sizeY, x int) {
	for y := sizeY / 4; y < sizeY*3/4; y++ {
		grid.Set(geom.Coord{X: x, Y: y}, gridworld.Barrier)
	}
}

func horizontalBar(grid *gridworld.Grid, sizeX, sizeY, y int) {
	for x := sizeX / 4; x < sizeX*3/4; x++ {
		grid.Set(geom.Coord{X: x, Y: y}, gridworld.Barrier)
	}
}

func fillRect(grid *gridworld.Grid, cx, cy, halfX, halfY int) {
	for y := cy - halfY; y <= cy+halfY; y++ {
		for x := cx - halfX; x <= cx+halfX; x++ {
			grid.Set(geom.Coord{X: x, Y: y}, gridworld.Barrier)
		}
	}
}

func fiveBlocks(grid *gridworld.Grid, sizeX, sizeY int) {
	halfX := sizeX / 50
	if halfX < 1 {
		halfX = 1
	}
	halfY := sizeY / 6
	if halfY < 4 {
		halfY = 4
	}
	centers := [5][2]int{
		{sizeX / 4, sizeY / 4},
		{sizeX * 3 / 4, sizeY / 4},
		{sizeX / 4, sizeY * 3 / 4},
		{sizeX * 3 / 4, sizeY * 3 / 4},
		{sizeX / 2, sizeY / 2},
	}
	for _, c := range centers {
		fillRect(grid, c[0], c[1], halfX, halfY)
	}
}

func fillDisk(grid *gridworld.Grid, sizeX, sizeY int, center geom.Coord, radius float64) {
	gridworld.VisitCircle(sizeX, sizeY, center, radius, func(c geom.Coord, _ float64) {
		grid.Set(c, gridworld.Barrier)
	})
}

func floatingIslands(grid *gridworld.Grid, sizeX, sizeY int, r *rng.Source) {
	radius := math.Max(2, float64(min(sizeX, sizeY))/12)
	loX, hiX := int(float64(sizeX)*0.15), int(float64(sizeX)*0.85)
	loY, hiY := int(float64(sizeY)*0.15), int(float64(sizeY)*0.85)
	for i := 0; i < 5; i++ {
		cx := loX + r.NextInt(hiX-loX)
		cy := loY + r.NextInt(hiY-loY)
		fillDisk(grid, sizeX, sizeY, geom.Coord{X: cx, Y: cy}, radius)
	}
}

func spots(grid *gridworld.Grid, sizeX, sizeY int) {
	spacing := min(sizeX, sizeY) / 4
	if spacing < 1 {
		spacing = 1
	}
	radius := math.Max(1, float64(min(sizeX, sizeY))/20)
	for cy := spacing / 2; cy < sizeY; cy += spacing {
		for cx := spacing / 2; cx < sizeX; cx += spacing {
			fillDisk(grid, sizeX, sizeY, geom.Coord{X: cx, Y: cy}, radius)
		}
	}
}
