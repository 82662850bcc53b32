// Package signal implements the pheromone layers agents can emit into,
// sense, and which decay over time. Each layer is a byte field shaped
// exactly like the simulation grid.
package signal

import (
	"math"

	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/gridworld"
)

// Field holds one or more independently addressed pheromone layers.
type Field struct {
	Width, Height int
	layers        [][]byte
}

// New returns a Field with numLayers layers, all cells zero.
func New(width, height, numLayers int) *Field {
	f := &Field{Width: width, Height: height, layers: make([][]byte, numLayers)}
	for i := range f.layers {
		f.layers[i] = make([]byte, width*height)
	}
	return f
}

// NumLayers returns the number of layers in the field.
func (f *Field) NumLayers() int {
	return len(f.layers)
}

func (f *Field) index(c geom.Coord) int {
	return c.Y*f.Width + c.X
}

func (f *Field) inBounds(c geom.Coord) bool {
	return c.X >= 0 && c.X < f.Width && c.Y >= 0 && c.Y < f.Height
}

// At returns the value of layer at c, or 0 if c is out of bounds.
func (f *Field) At(layer int, c geom.Coord) byte {
	if !f.inBounds(c) {
		return 0
	}
	return f.layers[layer][f.index(c)]
}

// Emit deposits pheromone into layer centered on c: every cell in the
// circular neighborhood of the given radius (including c) is incremented
// by max(1, round(255*(1-dist/(radius+1)))), saturating at 255.
func (f *Field) Emit(layer int, c geom.Coord, radius float64) {
	gridworld.VisitCircle(f.Width, f.Height, c, radius, func(cell geom.Coord, dist float64) {
		delta := int(math.Round(255 * (1 - dist/(radius+1))))
		if delta < 1 {
			delta = 1
		}
		idx := f.index(cell)
		v := int(f.layers[layer][idx]) + delta
		if v > 255 {
			v = 255
		}
		f.layers[layer][idx] = byte(v)
	})
}

// Fade decrements every non-zero cell of layer by one.
func (f *Field) Fade(layer int) {
	l := f.layers[layer]
	for i, v := range l {
		if v > 0 {
			l[i] = v - 1
		}
	}
}

// FadeAll fades every layer by one step.
func (f *Field) FadeAll() {
	for i := range f.layers {
		f.Fade(i)
	}
}

// Density returns the mean cell value over the circular neighborhood of c
// with the given radius, divided by 255, in [0,1].
func (f *Field) Density(layer int, c geom.Coord, radius float64) float64 {
	var sum float64
	var count int
	gridworld.VisitCircle(f.Width, f.Height, c, radius, func(cell geom.Coord, _ float64) {
		sum += float64(f.At(layer, cell))
		count++
	})
	if count == 0 {
		return 0
	}
	return sum / float64(count) / 255.0
}

// Bytes returns layer's values as a row-major byte slice, matching the
// wire snapshot layout.
func (f *Field) Bytes(layer int) []byte {
	out := make([]byte, len(f.layers[layer]))
	copy(out, f.layers[layer])
	return out
}
