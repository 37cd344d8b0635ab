package game

import "fmt"

// Stats are the per-round counters kept alongside the score.
type Stats struct {
	Shots   [sideCount]int
	Hits    [sideCount]int
	Spawned int
	Escaped int
}

// Accuracy returns hits/shots for a side, 0 when it never fired.
func (s Stats) Accuracy(side Side) float64 {
	if s.Shots[side] == 0 {
		return 0
	}
	return float64(s.Hits[side]) / float64(s.Shots[side])
}

// String formats the counters on one line.
//
//	shots=12/9 hits=4/3 acc=33%/33% spawned=14 escaped=5
func (s Stats) String() string {
	return fmt.Sprintf("shots=%d/%d hits=%d/%d acc=%.0f%%/%.0f%% spawned=%d escaped=%d",
		s.Shots[SideLeft], s.Shots[SideRight],
		s.Hits[SideLeft], s.Hits[SideRight],
		s.Accuracy(SideLeft)*100, s.Accuracy(SideRight)*100,
		s.Spawned, s.Escaped)
}
