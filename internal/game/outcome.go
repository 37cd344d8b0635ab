package game

import "fmt"

type RoundOutcome int

const (
	OutcomeInconclusive RoundOutcome = iota
	OutcomePlayer1
	OutcomePlayer2
	OutcomeDraw
)

func (o RoundOutcome) String() string {
	switch o {
	case OutcomePlayer1:
		return "player1_victory"
	case OutcomePlayer2:
		return "player2_victory"
	case OutcomeDraw:
		return "draw"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// Headline is the text shown on the game-over screen.
func (o RoundOutcome) Headline() string {
	switch o {
	case OutcomePlayer1:
		return "PLAYER 1 WINS"
	case OutcomePlayer2:
		return "PLAYER 2 WINS"
	case OutcomeDraw:
		return "DRAW"
	default:
		return ""
	}
}

// DetermineOutcome compares scores once the round has a termination reason.
// A round still in progress is inconclusive whatever the score.
func DetermineOutcome(s Snapshot) RoundOutcome {
	if s.Reason == "" {
		return OutcomeInconclusive
	}
	switch {
	case s.Scores[SideLeft] > s.Scores[SideRight]:
		return OutcomePlayer1
	case s.Scores[SideRight] > s.Scores[SideLeft]:
		return OutcomePlayer2
	default:
		return OutcomeDraw
	}
}

// Summary is the one-line result exported to the clipboard and reports.
func Summary(s Snapshot) string {
	return fmt.Sprintf("round %s: P1 %d - P2 %d (%s, %s) %s",
		shortID(s.RoundID), s.Scores[SideLeft], s.Scores[SideRight],
		DetermineOutcome(s), reasonOrPlaying(s.Reason), s.Stats)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "--"
	}
	return id
}

func reasonOrPlaying(reason string) string {
	if reason == "" {
		return "in progress"
	}
	return reason
}
