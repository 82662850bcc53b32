package sim

import (
	"context"

	"github.com/agloe-labs/evocore/colorize"
	"github.com/agloe-labs/evocore/config"
	"github.com/agloe-labs/evocore/gridworld"
	"github.com/agloe-labs/evocore/neural"
	"github.com/agloe-labs/evocore/telemetry"
)

// CommandKind identifies which variant of Command is populated.
type CommandKind int

const (
	CommandInit CommandKind = iota
	CommandReset
	CommandStart
	CommandPause
	CommandResume
	CommandStep
	CommandStepGeneration
	CommandUpdateParams
	CommandInspect
	CommandSetSpeed
)

// Command is the tagged union the host sends the simulator. Only the
// fields relevant to Kind are meaningful; ApplyCommand ignores the rest.
type Command struct {
	Kind CommandKind

	// CommandInit / CommandReset / CommandUpdateParams
	Config    *config.Config
	SetFields []string

	// CommandInspect
	X, Y int

	// CommandSetSpeed
	StepsPerFrame int
}

// EventKind identifies which variant of Event is populated.
type EventKind int

const (
	EventState EventKind = iota
	EventGenerationComplete
	EventInspectResult
	EventError
)

// Snapshot is the full renderable state sec. 6 calls "state".
type Snapshot struct {
	Generation  int
	SimStep     int
	Running     bool
	Paused      bool
	SizeX       int
	SizeY       int
	GridBytes   []byte
	SignalBytes []byte
	ColorBytes  []byte
	Stats       telemetry.GenerationStats
	History     []telemetry.GenerationStats
}

// InspectInfo is the per-agent detail sec. 6's inspectResult carries for a
// hit; it is nil on a miss.
type InspectInfo struct {
	Index          int
	Age            int
	Responsiveness float64
	OscPeriod      int
	LongProbeDist  int
	GenomeLength   int
}

// Event is the tagged union the simulator emits back to the host.
type Event struct {
	Kind EventKind

	State          Snapshot
	GenerationStat telemetry.GenerationStats
	InspectInfo    *InspectInfo
	InspectNetwork *neural.Network
	Message        string
}

// Snapshot builds the current full renderable state: copies of the grid,
// signal layer 0, and per-cell color buffers, plus the retained history.
// Every buffer is a fresh copy; mutating the simulator afterward never
// retroactively changes a Snapshot already handed to a caller.
func (s *Simulator) Snapshot() Snapshot {
	return Snapshot{
		Generation:  s.generation,
		SimStep:     s.simStep,
		Running:     s.running,
		Paused:      s.paused,
		SizeX:       s.SizeX(),
		SizeY:       s.SizeY(),
		GridBytes:   s.grid.Bytes(),
		SignalBytes: s.signalBytes(),
		ColorBytes:  s.colorBytes(),
		History:     s.History(),
	}
}

func (s *Simulator) signalBytes() []byte {
	if s.signals.NumLayers() == 0 {
		return nil
	}
	return s.signals.Bytes(0)
}

// colorBytes renders sizeX*sizeY*3 RGB bytes: a cell holding Empty or
// Barrier is black, every other cell is the color assigned to its
// occupant's genome at generation start.
func (s *Simulator) colorBytes() []byte {
	out := make([]byte, s.SizeX()*s.SizeY()*3)
	i := 0
	for y := 0; y < s.SizeY(); y++ {
		for x := 0; x < s.SizeX(); x++ {
			tag := s.grid.At(geomCoord(x, y))
			var rgb colorize.RGB
			if tag != gridworld.Empty && tag != gridworld.Barrier && int(tag) < len(s.colors) {
				rgb = s.colors[tag]
			}
			out[i] = rgb.R
			out[i+1] = rgb.G
			out[i+2] = rgb.B
			i += 3
		}
	}
	return out
}

// ApplyCommand dispatches one Command and returns the Event(s) it
// produces. CommandStepGeneration produces two events (a
// generationComplete, then a state), so the return is a slice; every other
// command returns exactly one Event.
// Any validation failure is translated into a single EventError and
// leaves the simulator's prior state untouched, matching sec. 7.
func (s *Simulator) ApplyCommand(cmd Command) []Event {
	switch cmd.Kind {
	case CommandInit, CommandReset:
		prev := s.cfg
		if cmd.Config != nil {
			s.cfg = cmd.Config
		}
		if err := s.Init(); err != nil {
			s.cfg = prev
			return []Event{errorEvent(err)}
		}
		return []Event{{Kind: EventState, State: s.Snapshot()}}

	case CommandStart:
		s.running = true
		s.paused = false
		return []Event{{Kind: EventState, State: s.Snapshot()}}

	case CommandPause:
		s.paused = true
		return []Event{{Kind: EventState, State: s.Snapshot()}}

	case CommandResume:
		s.paused = false
		return []Event{{Kind: EventState, State: s.Snapshot()}}

	case CommandStep:
		s.StepOnce()
		return []Event{{Kind: EventState, State: s.Snapshot()}}

	case CommandStepGeneration:
		stats := s.RunGeneration()
		return []Event{
			{Kind: EventGenerationComplete, GenerationStat: stats},
			{Kind: EventState, State: s.Snapshot()},
		}

	case CommandUpdateParams:
		if cmd.Config == nil {
			return []Event{errorEvent(errNilUpdateParamsConfig)}
		}
		if err := s.cfg.UpdateParams(cmd.Config, cmd.SetFields); err != nil {
			return []Event{errorEvent(err)}
		}
		return []Event{{Kind: EventState, State: s.Snapshot()}}

	case CommandInspect:
		return []Event{s.inspect(cmd.X, cmd.Y)}

	case CommandSetSpeed:
		// A host scheduling hint; the simulator itself has no frame loop to
		// adjust, so this is a no-op besides acknowledging state.
		return []Event{{Kind: EventState, State: s.Snapshot()}}

	default:
		return []Event{errorEvent(errUnknownCommand)}
	}
}

func (s *Simulator) inspect(x, y int) Event {
	if s.pop == nil {
		return Event{Kind: EventInspectResult}
	}
	a, ok := s.pop.AgentAt(geomCoord(x, y))
	if !ok {
		return Event{Kind: EventInspectResult}
	}
	return Event{
		Kind: EventInspectResult,
		InspectInfo: &InspectInfo{
			Index:          a.Index,
			Age:            a.Age,
			Responsiveness: a.Responsiveness,
			OscPeriod:      a.OscPeriod,
			LongProbeDist:  a.LongProbeDist,
			GenomeLength:   len(a.Genome),
		},
		InspectNetwork: a.Network,
	}
}

func errorEvent(err error) Event {
	return Event{Kind: EventError, Message: err.Error()}
}

// Run drives cmds into ApplyCommand and writes every resulting Event to
// events, until ctx is cancelled or cmds is closed. It is a convenience
// for hosts that want the message-passing shape of sec. 5 literally,
// running in whatever goroutine the caller starts it from; the Simulator
// it wraps must not be touched from any other goroutine concurrently.
func Run(ctx context.Context, s *Simulator, cmds <-chan Command, events chan<- Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-cmds:
			if !ok {
				return
			}
			for _, ev := range s.ApplyCommand(cmd) {
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
