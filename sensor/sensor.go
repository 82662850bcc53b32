// Package sensor implements the 21 scalar sensors agents read from the
// world each step. Every sensor is a pure function of (agent, world,
// context) returning a value in [0,1]; out-of-bounds or degenerate inputs
// resolve to a documented neutral value instead of panicking.
package sensor

import (
	"math"

	"github.com/agloe-labs/evocore/agent"
	"github.com/agloe-labs/evocore/gene"
	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/gridworld"
	"github.com/agloe-labs/evocore/rng"
	"github.com/agloe-labs/evocore/signal"
)

// ID identifies one of the 21 sensors. Values are the index used to remap
// gene source/sink IDs into sensor space, so the ordering here is part of
// the wire contract between a genome and the network it builds.
type ID int

const (
	LocX ID = iota
	LocY
	BoundaryDistX
	BoundaryDistY
	BoundaryDist
	LastMoveDirX
	LastMoveDirY
	GeneticSimFwd
	LongProbePopFwd
	LongProbeBarrierFwd
	Population
	PopulationFwd
	PopulationLR
	Osc1
	Age
	BarrierFwd
	BarrierLR
	Random
	Signal0
	Signal0Fwd
	Signal0LR

	NumSensors
)

// World is the read-only view of simulation state sensors need. The
// simulator's Population/Grid/Signals satisfy it; sensors never mutate
// anything through it.
type World interface {
	Grid() *gridworld.Grid
	Signals() *signal.Field
	AgentAt(c geom.Coord) (*agent.Agent, bool)
	SizeX() int
	SizeY() int
	PopulationSensorRadius() float64
	SignalSensorRadius() float64
	ShortProbeBarrierDistance() int
	StepsPerGeneration() int
	SimStep() int
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// step advances dist cells along dir from loc. A zero dir (the agent has
// never moved, lastMoveDir == Center) has no valid direction to step
// along, so it never produces a cell — this is what gives every
// fwd-dependent probe its documented degenerate-input default.
func step(loc geom.Coord, dir geom.Coord, dist int) (geom.Coord, bool) {
	if dir == (geom.Coord{}) {
		return geom.Coord{}, false
	}
	return geom.Coord{X: loc.X + dir.X*dist, Y: loc.Y + dir.Y*dist}, true
}

// ComputeAll returns the 21 sensor values in ID order, ready to feed a
// Network.FeedForward call. r is consumed only by the Random sensor, and
// only once, so that PRNG consumption order across agents stays exactly
// "one draw per agent per step" regardless of gene wiring.
func ComputeAll(a *agent.Agent, w World, r *rng.Source) []float64 {
	out := make([]float64, NumSensors)
	for id := ID(0); id < NumSensors; id++ {
		out[id] = Compute(id, a, w, r)
	}
	return out
}

// Compute evaluates a single sensor. Most callers want ComputeAll; Compute
// is exported for tests and for hosts that want to inspect one sensor in
// isolation.
func Compute(id ID, a *agent.Agent, w World, r *rng.Source) float64 {
	switch id {
	case LocX:
		return locAxis(a.Loc.X, w.SizeX())
	case LocY:
		return locAxis(a.Loc.Y, w.SizeY())
	case BoundaryDistX:
		return boundaryDistAxis(a.Loc.X, w.SizeX())
	case BoundaryDistY:
		return boundaryDistAxis(a.Loc.Y, w.SizeY())
	case BoundaryDist:
		return boundaryDist(a, w)
	case LastMoveDirX:
		return lastMoveAxis(a.LastMoveDir.AsUnitCoord().X)
	case LastMoveDirY:
		return lastMoveAxis(a.LastMoveDir.AsUnitCoord().Y)
	case GeneticSimFwd:
		return geneticSimFwd(a, w)
	case LongProbePopFwd:
		return longProbePopFwd(a, w)
	case LongProbeBarrierFwd:
		return longProbeBarrierFwd(a, w)
	case Population:
		return population(a, w)
	case PopulationFwd:
		return populationFwd(a, w)
	case PopulationLR:
		return populationLR(a, w)
	case Osc1:
		return osc1(a, w)
	case Age:
		return age(a, w)
	case BarrierFwd:
		return barrierFwd(a, w)
	case BarrierLR:
		return barrierLR(a, w)
	case Random:
		return r.Next01()
	case Signal0:
		return w.Signals().Density(0, a.Loc, w.SignalSensorRadius())
	case Signal0Fwd:
		return signal0Fwd(a, w)
	case Signal0LR:
		return signal0LR(a, w)
	default:
		return 0
	}
}

func locAxis(coord, size int) float64 {
	if size <= 1 {
		return 0
	}
	return float64(coord) / float64(size-1)
}

func boundaryDistAxis(coord, size int) float64 {
	d := coord
	if other := size - 1 - coord; other < d {
		d = other
	}
	half := float64(size) / 2
	if half == 0 {
		return 0
	}
	return clamp01(float64(d) / half)
}

func boundaryDist(a *agent.Agent, w World) float64 {
	dx := a.Loc.X
	if other := w.SizeX() - 1 - a.Loc.X; other < dx {
		dx = other
	}
	dy := a.Loc.Y
	if other := w.SizeY() - 1 - a.Loc.Y; other < dy {
		dy = other
	}
	d := dx
	if dy < d {
		d = dy
	}
	size := w.SizeX()
	if w.SizeY() < size {
		size = w.SizeY()
	}
	half := float64(size) / 2
	if half == 0 {
		return 0
	}
	return clamp01(float64(d) / half)
}

func lastMoveAxis(c int) float64 {
	return (float64(c) + 1) / 2
}

func geneticSimFwd(a *agent.Agent, w World) float64 {
	fwd := a.LastMoveDir.AsUnitCoord()
	target, ok := step(a.Loc, fwd, 1)
	if !ok {
		return 0
	}
	other, found := w.AgentAt(target)
	if !found || !other.Alive {
		return 0
	}
	return gene.Similarity(a.Genome, other.Genome)
}

func longProbePopFwd(a *agent.Agent, w World) float64 {
	fwd := a.LastMoveDir.AsUnitCoord()
	grid := w.Grid()
	count := 0
	for d := 1; d <= a.LongProbeDist; d++ {
		c, ok := step(a.Loc, fwd, d)
		if !ok {
			break
		}
		if !grid.InBounds(c) || grid.IsBarrier(c) {
			break
		}
		if grid.IsOccupied(c) {
			count++
		}
	}
	if a.LongProbeDist <= 0 {
		return 0
	}
	return clamp01(float64(count) / float64(a.LongProbeDist))
}

func longProbeBarrierFwd(a *agent.Agent, w World) float64 {
	fwd := a.LastMoveDir.AsUnitCoord()
	grid := w.Grid()
	for d := 1; d <= a.LongProbeDist; d++ {
		c, ok := step(a.Loc, fwd, d)
		if !ok {
			break
		}
		if !grid.InBounds(c) || grid.IsBarrier(c) {
			return float64(d) / float64(a.LongProbeDist)
		}
	}
	return 1.0
}

func population(a *agent.Agent, w World) float64 {
	grid := w.Grid()
	occupied, total := 0, 0
	gridworld.VisitCircle(w.SizeX(), w.SizeY(), a.Loc, w.PopulationSensorRadius(), func(c geom.Coord, _ float64) {
		total++
		if grid.IsOccupied(c) {
			occupied++
		}
	})
	if total == 0 {
		return 0
	}
	return clamp01(float64(occupied) / float64(total))
}

func populationFwd(a *agent.Agent, w World) float64 {
	fwd := a.LastMoveDir.AsUnitCoord()
	grid := w.Grid()
	maxDist := w.ShortProbeBarrierDistance()
	count := 0
	for d := 1; d <= maxDist; d++ {
		c, ok := step(a.Loc, fwd, d)
		if !ok {
			break
		}
		if !grid.InBounds(c) || grid.IsBarrier(c) {
			break
		}
		if grid.IsOccupied(c) {
			count++
		}
	}
	if maxDist <= 0 {
		return 0
	}
	return clamp01(float64(count) / float64(maxDist))
}

func directionalOccupiedCount(a *agent.Agent, w World, dir geom.Direction) int {
	grid := w.Grid()
	maxDist := w.ShortProbeBarrierDistance()
	count := 0
	uc := dir.AsUnitCoord()
	for d := 1; d <= maxDist; d++ {
		c, ok := step(a.Loc, uc, d)
		if !ok {
			break
		}
		if !grid.InBounds(c) || grid.IsBarrier(c) {
			break
		}
		if grid.IsOccupied(c) {
			count++
		}
	}
	return count
}

func populationLR(a *agent.Agent, w World) float64 {
	right := directionalOccupiedCount(a, w, a.LastMoveDir.RotateCW())
	left := directionalOccupiedCount(a, w, a.LastMoveDir.RotateCCW())
	if right+left == 0 {
		return 0.5
	}
	return float64(right) / float64(right+left)
}

func osc1(a *agent.Agent, w World) float64 {
	period := a.OscPeriod
	if period < 2 {
		period = 2
	}
	phase := float64(w.SimStep()%period) / float64(period)
	return (math.Sin(2*math.Pi*phase) + 1) / 2
}

func age(a *agent.Agent, w World) float64 {
	spg := w.StepsPerGeneration()
	if spg <= 0 {
		return 0
	}
	return clamp01(float64(a.Age) / float64(spg))
}

func barrierFwd(a *agent.Agent, w World) float64 {
	fwd := a.LastMoveDir.AsUnitCoord()
	if fwd == (geom.Coord{}) {
		return 1
	}
	grid := w.Grid()
	maxDist := w.ShortProbeBarrierDistance()
	for d := 1; d <= maxDist; d++ {
		c := geom.Coord{X: a.Loc.X + fwd.X*d, Y: a.Loc.Y + fwd.Y*d}
		if !grid.InBounds(c) || grid.IsBarrier(c) {
			return 1 - float64(d)/float64(maxDist+1)
		}
	}
	return 0
}

func directionalBarrierHit(a *agent.Agent, w World, dir geom.Direction) bool {
	grid := w.Grid()
	maxDist := w.ShortProbeBarrierDistance()
	uc := dir.AsUnitCoord()
	for d := 1; d <= maxDist; d++ {
		c, ok := step(a.Loc, uc, d)
		if !ok {
			return false
		}
		if !grid.InBounds(c) || grid.IsBarrier(c) {
			return true
		}
	}
	return false
}

func barrierLR(a *agent.Agent, w World) float64 {
	rightHit := directionalBarrierHit(a, w, a.LastMoveDir.RotateCW())
	leftHit := directionalBarrierHit(a, w, a.LastMoveDir.RotateCCW())
	switch {
	case rightHit && !leftHit:
		return 0
	case leftHit && !rightHit:
		return 1
	default:
		return 0.5
	}
}

func signal0Fwd(a *agent.Agent, w World) float64 {
	fwd := a.LastMoveDir.AsUnitCoord()
	target, ok := step(a.Loc, fwd, 1)
	if !ok {
		target = a.Loc
	}
	return w.Signals().Density(0, target, w.SignalSensorRadius())
}

func signal0LR(a *agent.Agent, w World) float64 {
	rightC := a.LastMoveDir.RotateCW().AsUnitCoord()
	leftC := a.LastMoveDir.RotateCCW().AsUnitCoord()
	rightLoc, rok := step(a.Loc, rightC, 1)
	leftLoc, lok := step(a.Loc, leftC, 1)
	var right, left float64
	if rok {
		right = w.Signals().Density(0, rightLoc, w.SignalSensorRadius())
	}
	if lok {
		left = w.Signals().Density(0, leftLoc, w.SignalSensorRadius())
	}
	if right+left == 0 {
		return 0.5
	}
	return right / (right + left)
}
