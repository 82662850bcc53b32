// Package survival implements the per-generation survival criteria, each a
// predicate over an agent's final position (and, for the contact-based
// criteria, its immediate neighborhood).
package survival

import (
	"math"

	"github.com/agloe-labs/evocore/agent"
	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/gridworld"
)

// Criterion identifies one of the nine recognized survival predicates.
type Criterion int

const (
	Circle Criterion = iota
	RightEighth
	LeftEighth
	CenterWeighted
	CornerWeighted
	Pairs
	Contact
	AgainstAnyWall
	TouchAnyWall
)

// World is the grid context a criterion needs to evaluate contact-based
// predicates.
type World interface {
	Grid() *gridworld.Grid
	SizeX() int
	SizeY() int
}

// Evaluate reports whether a satisfies c given w.
func Evaluate(c Criterion, a *agent.Agent, w World) bool {
	switch c {
	case Circle:
		return circle(a, w)
	case RightEighth:
		return float64(a.Loc.X) > float64(w.SizeX())*7/8
	case LeftEighth:
		return float64(a.Loc.X) < float64(w.SizeX())/8
	case CenterWeighted:
		return centerWeighted(a, w)
	case CornerWeighted:
		return cornerWeighted(a, w)
	case Pairs:
		return pairs(a, w)
	case Contact:
		return contact(a, w)
	case AgainstAnyWall:
		return againstAnyWall(a, w)
	case TouchAnyWall:
		return touchAnyWall(a, w)
	default:
		return false
	}
}

// Survivors returns the subset of agents for which at least one active
// criterion holds. An empty activeCriteria means every agent survives.
func Survivors(agents []*agent.Agent, activeCriteria []Criterion, w World) []*agent.Agent {
	if len(activeCriteria) == 0 {
		out := make([]*agent.Agent, len(agents))
		copy(out, agents)
		return out
	}
	out := make([]*agent.Agent, 0, len(agents))
	for _, a := range agents {
		for _, c := range activeCriteria {
			if Evaluate(c, a, w) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func gridCenter(w World) (float64, float64) {
	return float64(w.SizeX()) / 2, float64(w.SizeY()) / 2
}

func dist(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return math.Sqrt(dx*dx + dy*dy)
}

func circle(a *agent.Agent, w World) bool {
	cx, cy := gridCenter(w)
	d := dist(float64(a.Loc.X), float64(a.Loc.Y), cx, cy)
	return d <= math.Min(float64(w.SizeX()), float64(w.SizeY()))/4
}

func centerWeighted(a *agent.Agent, w World) bool {
	cx, cy := gridCenter(w)
	d := dist(float64(a.Loc.X), float64(a.Loc.Y), cx, cy)
	maxDiag := math.Sqrt(cx*cx + cy*cy)
	if maxDiag == 0 {
		return true
	}
	return 1-d/maxDiag > 0.5
}

func cornerWeighted(a *agent.Agent, w World) bool {
	corners := [4][2]float64{
		{0, 0},
		{float64(w.SizeX()), 0},
		{0, float64(w.SizeY())},
		{float64(w.SizeX()), float64(w.SizeY())},
	}
	best := math.Inf(1)
	for _, c := range corners {
		d := dist(float64(a.Loc.X), float64(a.Loc.Y), c[0], c[1])
		if d < best {
			best = d
		}
	}
	threshold := 0.25 * math.Sqrt(float64(w.SizeX()*w.SizeX()+w.SizeY()*w.SizeY())) / 2
	return best < threshold
}

func pairs(a *agent.Agent, w World) bool {
	grid := w.Grid()
	found := false
	gridworld.VisitCircle(w.SizeX(), w.SizeY(), a.Loc, 1.5, func(c geom.Coord, _ float64) {
		if c == a.Loc {
			return
		}
		if grid.IsOccupied(c) {
			found = true
		}
	})
	return found
}

func contact(a *agent.Agent, w World) bool {
	grid := w.Grid()
	offsets := [4]geom.Coord{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	for _, o := range offsets {
		if grid.IsOccupied(a.Loc.Add(o)) {
			return true
		}
	}
	return false
}

func againstAnyWall(a *agent.Agent, w World) bool {
	return a.Loc.X == 0 || a.Loc.Y == 0 || a.Loc.X == w.SizeX()-1 || a.Loc.Y == w.SizeY()-1
}

func touchAnyWall(a *agent.Agent, w World) bool {
	return a.Loc.X <= 1 || a.Loc.Y <= 1 || a.Loc.X >= w.SizeX()-2 || a.Loc.Y >= w.SizeY()-2
}
