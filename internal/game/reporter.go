package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-play reports (~10s at 60TPS).
const reportWindowTicks = 600

// RoundSample captures the field at one tick.
type RoundSample struct {
	Tick      int
	Enemies   int
	InFlight  [sideCount]int // bullets still on screen per side
	Scores    [sideCount]int
	Escaped   int
	Remaining int // whole seconds on the clock
}

// RoundReporter collects periodic samples from a running round and can
// produce summaries over a sliding window.
type RoundReporter struct {
	history     []RoundSample
	windowTicks int
}

// NewRoundReporter creates a reporter with the given window size.
func NewRoundReporter(windowTicks int) *RoundReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &RoundReporter{windowTicks: windowTicks}
}

// Collect records s. Snapshots without a round are ignored.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *RoundReporter) Collect(s Snapshot) {
	if s.RoundID == "" {
		return
	}
	sample := RoundSample{
		Tick:      s.Tick,
		Enemies:   len(s.Enemies),
		Scores:    s.Scores,
		Escaped:   s.Stats.Escaped,
		Remaining: s.RemainingSeconds(),
	}
	for side, bullets := range s.Bullets {
		sample.InFlight[side] = len(bullets)
	}
	r.history = append(r.history, sample)
}

// Latest returns the most recent sample, or nil.
func (r *RoundReporter) Latest() *RoundSample {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected samples.
func (r *RoundReporter) History() []RoundSample {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgEnemies  float64
	AvgInFlight [sideCount]float64

	// Deltas across the window.
	Points  [sideCount]int
	Escaped int
}

// WindowSummary aggregates the samples within the window ending at the latest one.
func (r *RoundReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []RoundSample
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	newest, oldest := window[0], window[len(window)-1]
	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    oldest.Tick,
		ToTick:      newest.Tick,
		SampleCount: len(window),
		Escaped:     newest.Escaped - oldest.Escaped,
	}
	for _, s := range window {
		wr.AvgEnemies += float64(s.Enemies)
		for side := range s.InFlight {
			wr.AvgInFlight[side] += float64(s.InFlight[side])
		}
	}
	wr.AvgEnemies /= n
	for side := range wr.AvgInFlight {
		wr.AvgInFlight[side] /= n
		wr.Points[side] = newest.Scores[side] - oldest.Scores[side]
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Window Report (T=%d..%d, %d samples) ===\n", wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  enemies on field  %5.1f\n", wr.AvgEnemies)
	fmt.Fprintf(&sb, "  bullets in flight P1 %4.1f  P2 %4.1f\n", wr.AvgInFlight[SideLeft], wr.AvgInFlight[SideRight])
	fmt.Fprintf(&sb, "  points scored     P1 %4d  P2 %4d\n", wr.Points[SideLeft], wr.Points[SideRight])
	fmt.Fprintf(&sb, "  escaped           %5d\n", wr.Escaped)
	return sb.String()
}

// PlayerGrade rates one side's round.
type PlayerGrade struct {
	Side     Side
	Score    int
	Accuracy float64 // 0-1
	Rating   float64 // 0-100
	Letter   string
}

// GradePlayers rates both sides from the final snapshot. The rating blends
// accuracy with the share of spawned enemies the side destroyed.
func GradePlayers(s Snapshot) [sideCount]PlayerGrade {
	var out [sideCount]PlayerGrade
	for _, side := range []Side{SideLeft, SideRight} {
		acc := s.Stats.Accuracy(side)
		share := perfFrac(s.Scores[side], s.Stats.Spawned)
		rating := perfClamp(acc*60 + share*2*40)
		out[side] = PlayerGrade{
			Side:     side,
			Score:    s.Scores[side],
			Accuracy: acc,
			Rating:   rating,
			Letter:   PerfLetterGrade(rating),
		}
	}
	return out
}

// FormatGrades renders one line per side.
func FormatGrades(grades [sideCount]PlayerGrade) string {
	var sb strings.Builder
	for _, g := range grades {
		fmt.Fprintf(&sb, "  %s  %-2s (%.1f)  score=%d acc=%.0f%%\n",
			g.Side.Label(), g.Letter, g.Rating, g.Score, g.Accuracy*100)
	}
	return sb.String()
}

func perfFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
