// Package action implements the 17 motor outputs a network's action layer
// drives. Applying an action mutates the owning agent's immediate state
// (heading, oscillator period, responsiveness) directly, and reports
// movement/kill effects for the caller to queue — a step never writes
// another agent's grid cell or its own location synchronously.
package action

import (
	"math"

	"github.com/agloe-labs/evocore/agent"
	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/gridworld"
	"github.com/agloe-labs/evocore/rng"
	"github.com/agloe-labs/evocore/signal"
)

// ID identifies one of the 17 actions. Ordering is part of the wire
// contract between a genome and the network it builds, matching sensor.ID.
type ID int

const (
	MoveX ID = iota
	MoveY
	MoveForward
	MoveRL
	MoveRandom
	MoveLeft
	MoveRight
	MoveReverse
	MoveEast
	MoveWest
	MoveNorth
	MoveSouth
	SetOscillatorPeriod
	SetLongprobeDist
	SetResponsiveness
	EmitSignal0
	KillForward

	NumActions
)

// World is the state action application reads and, for EmitSignal0, writes
// through (signal emission is immediate, unlike movement and killing).
type World interface {
	Grid() *gridworld.Grid
	Signals() *signal.Field
	AgentAt(c geom.Coord) (*agent.Agent, bool)
}

// Config holds the action-layer tunables sourced from the simulation
// configuration.
type Config struct {
	ResponsivenessCurveKFactor float64
	LongProbeDistance          int
	KillEnable                 bool
}

// Effects carries the deferred, queueable consequences of one agent's
// action application: at most one move and at most one kill of another
// agent.
type Effects struct {
	HasMove bool
	NewLoc  geom.Coord

	HasKill    bool
	KillTarget int
}

// responsivenessEffective maps raw responsiveness in [0,1] through the
// configured logistic curve to get the effective firing threshold.
func responsivenessEffective(raw, k float64) float64 {
	return 1 / (1 + math.Exp(-k*(raw-0.5)*8))
}

func fires(level, threshold float64) bool {
	return math.Abs(level) > threshold*0.5
}

// Apply evaluates levels (as produced by Network.FeedForward, in ID order)
// against a, mutating a's immediate state and returning queueable effects.
func Apply(a *agent.Agent, levels []float64, w World, cfg Config, r *rng.Source) Effects {
	threshold := responsivenessEffective(a.Responsiveness, cfg.ResponsivenessCurveKFactor)
	fwd := a.LastMoveDir.AsUnitCoord()

	var moveX, moveY float64
	moveX += levels[MoveX]
	moveY += levels[MoveY]

	if lvl := levels[MoveForward]; fires(lvl, threshold) {
		moveX += float64(fwd.X) * lvl
		moveY += float64(fwd.Y) * lvl
	}

	if lvl := levels[MoveRL]; fires(lvl, threshold) {
		dir := a.LastMoveDir.RotateCCW()
		if lvl > 0 {
			dir = a.LastMoveDir.RotateCW()
		}
		uc := dir.AsUnitCoord()
		moveX += float64(uc.X)
		moveY += float64(uc.Y)
	}

	if lvl := levels[MoveRandom]; fires(lvl, threshold) {
		dir := geom.Direction(r.NextInt(8))
		uc := dir.AsUnitCoord()
		moveX += float64(uc.X)
		moveY += float64(uc.Y)
	}

	if lvl := levels[MoveLeft]; fires(lvl, threshold) {
		uc := a.LastMoveDir.RotateCCW().AsUnitCoord()
		moveX += float64(uc.X)
		moveY += float64(uc.Y)
	}
	if lvl := levels[MoveRight]; fires(lvl, threshold) {
		uc := a.LastMoveDir.RotateCW().AsUnitCoord()
		moveX += float64(uc.X)
		moveY += float64(uc.Y)
	}
	if lvl := levels[MoveReverse]; fires(lvl, threshold) {
		uc := a.LastMoveDir.Rotate180().AsUnitCoord()
		moveX += float64(uc.X)
		moveY += float64(uc.Y)
	}

	if lvl := levels[MoveEast]; fires(lvl, threshold) {
		moveX += 1
	}
	if lvl := levels[MoveWest]; fires(lvl, threshold) {
		moveX -= 1
	}
	if lvl := levels[MoveNorth]; fires(lvl, threshold) {
		moveY -= 1
	}
	if lvl := levels[MoveSouth]; fires(lvl, threshold) {
		moveY += 1
	}

	// The SET_* family fires unconditionally every step, unlike every other
	// non-movement action; there is no threshold gate here.
	a.OscPeriod = int(math.Max(2, 1+math.Floor(math.Abs(levels[SetOscillatorPeriod])*100)))
	a.LongProbeDist = int(math.Max(1, 1+math.Floor(math.Abs(levels[SetLongprobeDist])*float64(cfg.LongProbeDistance))))
	a.Responsiveness = (levels[SetResponsiveness] + 1) / 2

	if lvl := levels[EmitSignal0]; fires(lvl, threshold) {
		w.Signals().Emit(0, a.Loc, 1.5)
	}

	var eff Effects
	if lvl := levels[KillForward]; cfg.KillEnable && fires(lvl, threshold) {
		target, ok := step(a.Loc, fwd)
		if ok {
			if victim, found := w.AgentAt(target); found && victim.Alive {
				eff.HasKill = true
				eff.KillTarget = victim.Index
			}
		}
	}

	dx := quantize(moveX)
	dy := quantize(moveY)
	if dx != 0 || dy != 0 {
		newLoc := geom.Coord{X: a.Loc.X + dx, Y: a.Loc.Y + dy}
		a.LastMoveDir = geom.FromUnitCoord(geom.Coord{X: dx, Y: dy})
		if w.Grid().InBounds(newLoc) && w.Grid().IsEmpty(newLoc) {
			eff.HasMove = true
			eff.NewLoc = newLoc
		}
	}

	return eff
}

func quantize(v float64) int {
	if math.Abs(v) <= 0.5 {
		return 0
	}
	if v > 0 {
		return 1
	}
	return -1
}

func step(loc geom.Coord, dir geom.Coord) (geom.Coord, bool) {
	if dir == (geom.Coord{}) {
		return geom.Coord{}, false
	}
	return geom.Coord{X: loc.X + dir.X, Y: loc.Y + dir.Y}, true
}
