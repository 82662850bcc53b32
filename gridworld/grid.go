// Package gridworld implements the discrete 2D field agents live on: a
// row-major grid of cell tags (empty / barrier / 1-based agent index) and
// the circular-neighborhood geometry shared by sensors, signals, and
// barrier placement.
package gridworld

import (
	"math"

	"github.com/agloe-labs/evocore/geom"
)

// Empty and Barrier are the two reserved cell tag values. Any other value
// is a 1-based index into the population's agent slice.
const (
	Empty   uint16 = 0
	Barrier uint16 = 0xFFFF
)

// Grid is a row-major field of 16-bit cell tags.
type Grid struct {
	Width, Height int
	cells         []uint16
}

// New returns a Grid of the given dimensions, fully empty.
func New(width, height int) *Grid {
	return &Grid{Width: width, Height: height, cells: make([]uint16, width*height)}
}

func (g *Grid) index(c geom.Coord) int {
	return c.Y*g.Width + c.X
}

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c geom.Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// At returns the cell tag at c. Out-of-bounds coordinates read as Empty,
// matching the spec's rule that out-of-bounds access never panics and
// resolves to a neutral value.
func (g *Grid) At(c geom.Coord) uint16 {
	if !g.InBounds(c) {
		return Empty
	}
	return g.cells[g.index(c)]
}

// Set writes a cell tag at c. Out-of-bounds writes are silently ignored.
func (g *Grid) Set(c geom.Coord, v uint16) {
	if !g.InBounds(c) {
		return
	}
	g.cells[g.index(c)] = v
}

// IsEmpty reports whether c is in bounds and holds Empty.
func (g *Grid) IsEmpty(c geom.Coord) bool {
	return g.InBounds(c) && g.cells[g.index(c)] == Empty
}

// IsBarrier reports whether c is in bounds and holds Barrier.
func (g *Grid) IsBarrier(c geom.Coord) bool {
	return g.InBounds(c) && g.cells[g.index(c)] == Barrier
}

// IsOccupied reports whether c is in bounds and holds neither Empty nor
// Barrier, i.e. an agent index.
func (g *Grid) IsOccupied(c geom.Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	v := g.cells[g.index(c)]
	return v != Empty && v != Barrier
}

// Clear resets every cell to Empty.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Bytes returns the grid's cell tags as little-endian 16-bit words,
// row-major, matching the wire snapshot layout (idx = y*width + x).
func (g *Grid) Bytes() []byte {
	out := make([]byte, len(g.cells)*2)
	for i, v := range g.cells {
		out[2*i] = byte(v)
		out[2*i+1] = byte(v >> 8)
	}
	return out
}

// VisitCircle calls visit for every in-bounds cell within the circular
// neighborhood of center with the given radius (dx^2+dy^2 <= radius^2,
// center included), in row-major scan order of the bounding box. visit
// receives the cell coordinate and its Euclidean distance from center.
func VisitCircle(width, height int, center geom.Coord, radius float64, visit func(c geom.Coord, dist float64)) {
	r := int(radius)
	if r < 0 {
		r = 0
	}
	// The bounding box must cover every cell whose squared distance can be
	// <= radius^2; an integer radius rounded down still covers e.g. 1.5
	// correctly since cells are at integer offsets and 1*1 <= 1.5*1.5.
	for dy := -r - 1; dy <= r+1; dy++ {
		y := center.Y + dy
		if y < 0 || y >= height {
			continue
		}
		for dx := -r - 1; dx <= r+1; dx++ {
			x := center.X + dx
			if x < 0 || x >= width {
				continue
			}
			distSq := float64(dx*dx + dy*dy)
			if distSq > radius*radius {
				continue
			}
			visit(geom.Coord{X: x, Y: y}, math.Sqrt(distSq))
		}
	}
}

// VisitNeighborhood calls visit for every in-bounds cell within the
// circular neighborhood of center (dx^2+dy^2 <= radius^2, center
// included).
func (g *Grid) VisitNeighborhood(center geom.Coord, radius float64, visit func(c geom.Coord)) {
	VisitCircle(g.Width, g.Height, center, radius, func(c geom.Coord, _ float64) {
		visit(c)
	})
}

// FindEmptyLocation searches outward from center in Chebyshev rings (ring
// r holds every cell with max(|dx|,|dy|) == r), scanning each ring in
// row-major order, and returns the first in-bounds Empty cell found within
// maxRadius rings.
func (g *Grid) FindEmptyLocation(center geom.Coord, maxRadius int) (geom.Coord, bool) {
	if g.IsEmpty(center) {
		return center, true
	}
	for r := 1; r <= maxRadius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				c := geom.Coord{X: center.X + dx, Y: center.Y + dy}
				if g.IsEmpty(c) {
					return c, true
				}
			}
		}
	}
	return geom.Coord{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
