// Package population owns the live agent set for one generation and the
// deferred move/death queues that let a step evaluate every agent against
// a single consistent world snapshot before any agent's position changes.
package population

import (
	"github.com/agloe-labs/evocore/agent"
	"github.com/agloe-labs/evocore/geom"
	"github.com/agloe-labs/evocore/gridworld"
)

type moveEntry struct {
	AgentIndex int
	NewLoc     geom.Coord
}

// Manager holds the per-generation agent slice (1-based; index 0 is the
// grid's empty sentinel and always nil) and the grid those agents occupy.
type Manager struct {
	Agents []*agent.Agent
	Grid   *gridworld.Grid

	moveQueue  []moveEntry
	deathQueue []int

	KillDeaths int
}

// New returns an empty Manager sized for up to n agents sharing grid.
func New(grid *gridworld.Grid, n int) *Manager {
	return &Manager{
		Agents: make([]*agent.Agent, n+1),
		Grid:   grid,
	}
}

// Place installs a into the population at its own Index and writes its
// location into the grid. Callers are responsible for choosing an empty
// location before calling Place.
func (m *Manager) Place(a *agent.Agent) {
	m.Agents[a.Index] = a
	m.Grid.Set(a.Loc, uint16(a.Index))
}

// AgentAt resolves the grid's cell tag at c to a living agent, satisfying
// the sensor.World / action.World AgentAt contract.
func (m *Manager) AgentAt(c geom.Coord) (*agent.Agent, bool) {
	tag := m.Grid.At(c)
	if tag == gridworld.Empty || tag == gridworld.Barrier {
		return nil, false
	}
	a := m.Agents[tag]
	if a == nil || !a.Alive {
		return nil, false
	}
	return a, true
}

// Alive returns every living agent, in ascending index order.
func (m *Manager) Alive() []*agent.Agent {
	out := make([]*agent.Agent, 0, len(m.Agents))
	for _, a := range m.Agents[1:] {
		if a != nil && a.Alive {
			out = append(out, a)
		}
	}
	return out
}

// EnqueueMove records a pending move for agentIndex, to be applied at the
// next Drain. Drain applies moves in the order they were enqueued, each
// from the agent's location at that point; a step's action application
// never enqueues more than one move per agent.
func (m *Manager) EnqueueMove(agentIndex int, newLoc geom.Coord) {
	m.moveQueue = append(m.moveQueue, moveEntry{agentIndex, newLoc})
}

// EnqueueDeath records a pending death for agentIndex. killed distinguishes
// a KillForward death from any other cause, for the KillDeaths counter.
func (m *Manager) EnqueueDeath(agentIndex int, killed bool) {
	m.deathQueue = append(m.deathQueue, agentIndex)
	if killed {
		m.KillDeaths++
	}
}

// Drain applies queued deaths, then queued moves, clearing both queues.
// A move is dropped if its agent died earlier in this same drain or if its
// destination is no longer empty by the time the move is processed.
func (m *Manager) Drain() {
	for _, idx := range m.deathQueue {
		a := m.Agents[idx]
		if a == nil || !a.Alive {
			continue
		}
		a.Alive = false
		m.Grid.Set(a.Loc, gridworld.Empty)
	}
	m.deathQueue = m.deathQueue[:0]

	for _, mv := range m.moveQueue {
		a := m.Agents[mv.AgentIndex]
		if a == nil || !a.Alive {
			continue
		}
		if !m.Grid.IsEmpty(mv.NewLoc) {
			continue
		}
		m.Grid.Set(a.Loc, gridworld.Empty)
		m.Grid.Set(mv.NewLoc, uint16(a.Index))
		a.Loc = mv.NewLoc
	}
	m.moveQueue = m.moveQueue[:0]
}
