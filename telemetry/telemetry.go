// Package telemetry collects per-generation statistics and reports
// lifecycle events through a structured logger. It never touches grid or
// signal bytes — those belong in the snapshot the simulator hands to its
// host, not in a log line.
package telemetry

import (
	"log/slog"
)

// GenerationStats summarizes one completed generation.
type GenerationStats struct {
	Generation       int
	Population       int
	Survivors        int
	SurvivalRate     float64
	GeneticDiversity float64
	AvgGenomeLength  float64
	MinGenomeLength  int
	MaxGenomeLength  int
	KillDeaths       int
}

// LogValue implements slog.LogValuer so a GenerationStats can be passed
// directly as a single structured logging attribute.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Int("survivors", s.Survivors),
		slog.Float64("survival_rate", s.SurvivalRate),
		slog.Float64("genetic_diversity", s.GeneticDiversity),
		slog.Float64("avg_genome_length", s.AvgGenomeLength),
		slog.Int("min_genome_length", s.MinGenomeLength),
		slog.Int("max_genome_length", s.MaxGenomeLength),
		slog.Int("kill_deaths", s.KillDeaths),
	)
}

// History is a fixed-capacity ring buffer of GenerationStats. Appends are
// O(1); once full, the oldest entry is evicted.
type History struct {
	entries  []GenerationStats
	capacity int
	start    int
}

// NewHistory returns an empty History that retains at most capacity
// entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{capacity: capacity}
}

// Append records stats, evicting the oldest entry if the buffer is full.
func (h *History) Append(stats GenerationStats) {
	if len(h.entries) < h.capacity {
		h.entries = append(h.entries, stats)
		return
	}
	h.entries[h.start] = stats
	h.start = (h.start + 1) % h.capacity
}

// Snapshot returns a copy of the retained entries, oldest first. The
// returned slice is safe to hold onto; mutating it never affects History.
func (h *History) Snapshot() []GenerationStats {
	out := make([]GenerationStats, len(h.entries))
	if len(h.entries) < h.capacity {
		copy(out, h.entries)
		return out
	}
	n := copy(out, h.entries[h.start:])
	copy(out[n:], h.entries[:h.start])
	return out
}

// Len returns the number of entries currently retained.
func (h *History) Len() int {
	return len(h.entries)
}

var logger = slog.Default()

// SetLogger installs the structured logger used by the Log* functions. A
// nil logger restores slog's default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// LogInit reports simulator initialization.
func LogInit(seed uint32, sizeX, sizeY, population int) {
	logger.Info("init", "seed", seed, "size_x", sizeX, "size_y", sizeY, "population", population)
}

// LogReset reports an explicit simulator reset.
func LogReset(seed uint32) {
	logger.Info("reset", "seed", seed)
}

// LogGenerationComplete reports the end of a generation.
func LogGenerationComplete(stats GenerationStats) {
	logger.Info("generation_complete", "stats", stats)
}

// LogError reports an internal failure surfaced as an EventError.
func LogError(err error) {
	logger.Error("error", "error", err)
}
