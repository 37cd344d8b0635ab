package game

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func oneSecondRound(c *Config) { c.TimeLimit = time.Second }

func TestMachine_StartsInMenu(t *testing.T) {
	ts := NewTestSim()
	s := ts.Snapshot()
	if s.State != StateMenu {
		t.Fatalf("initial state = %s, want menu", s.State)
	}
	if s.RoundID != "" || len(s.Enemies) != 0 {
		t.Fatalf("menu snapshot carries round data: %+v", s)
	}
	if ts.Camera.Starts != 0 {
		t.Fatal("camera opened before any round started")
	}
}

func TestMachine_StartOpensCameraAndResetsRound(t *testing.T) {
	ts := NewTestSim(WithSpawning(false))
	rep := ts.Step(Start())
	if rep.Before != StateMenu || rep.After != StatePlaying || !rep.Transitioned() {
		t.Fatalf("start report = %s → %s", rep.Before, rep.After)
	}
	if !ts.Camera.Open || ts.Camera.Starts != 1 {
		t.Fatalf("camera open=%v starts=%d, want open after one start", ts.Camera.Open, ts.Camera.Starts)
	}
	s := ts.Snapshot()
	if s.Scores != [2]int{0, 0} {
		t.Fatalf("scores = %v, want [0 0]", s.Scores)
	}
	cfg := DefaultConfig()
	if s.Players[SideLeft].X != cfg.PlayerStartX(SideLeft) || s.Players[SideRight].X != cfg.PlayerStartX(SideRight) {
		t.Fatalf("players not at start positions: %+v", s.Players)
	}
	if s.Elapsed != time.Second/60 {
		t.Fatalf("elapsed after first tick = %v, want one tick", s.Elapsed)
	}
}

func TestMachine_OutOfStateCommandsAreNoOps(t *testing.T) {
	ts := NewTestSim()
	rep := ts.Step(Fire(SideLeft), MoveLeft(SideRight), Restart(), ToMenu())
	if rep.After != StateMenu {
		t.Fatalf("menu accepted a foreign command, now %s", rep.After)
	}
	if rep.Shots != [2]int{0, 0} {
		t.Fatalf("fire in menu produced shots: %v", rep.Shots)
	}
	if ts.Camera.Starts != 0 || ts.Camera.Stops != 0 {
		t.Fatalf("camera touched in menu: %+v", ts.Camera)
	}

	ts.Step(Start())
	id := ts.Snapshot().RoundID
	ts.Step(Start(), Restart(), ToMenu())
	if ts.Machine.State() != StatePlaying || ts.Snapshot().RoundID != id {
		t.Fatal("playing state reacted to start/restart/menu")
	}
}

func TestMachine_TimeExpiryEndsRound(t *testing.T) {
	ts := NewTestSim(WithSpawning(false), WithConfig(oneSecondRound))
	ts.Step(Start())
	ts.RunTicks(58, nil)
	if ts.Machine.State() != StatePlaying {
		t.Fatalf("round ended early after 59 ticks: %s", ts.Machine.State())
	}
	rep := ts.Step()
	if rep.Before != StatePlaying || rep.After != StateGameOver {
		t.Fatalf("60th tick: %s → %s, want playing → game_over", rep.Before, rep.After)
	}
	s := ts.Snapshot()
	if s.Reason != ReasonTimeExpired {
		t.Fatalf("reason = %q, want %q", s.Reason, ReasonTimeExpired)
	}
	if ts.Camera.Open || ts.Camera.Stops != 1 {
		t.Fatalf("camera open=%v stops=%d after game over", ts.Camera.Open, ts.Camera.Stops)
	}
	if s.RemainingSeconds() != 0 || s.Remaining() != 0 {
		t.Fatalf("remaining = %v (%ds), want 0", s.Remaining(), s.RemainingSeconds())
	}
}

func TestMachine_DefaultLimitExpiresAtThirtySeconds(t *testing.T) {
	ts := NewTestSim(WithStarted())
	n, ok := ts.RunUntil(5000, func(s Snapshot) bool { return s.State != StatePlaying })
	if !ok {
		t.Fatal("round never ended")
	}
	if n != ts.TicksFor(30) {
		t.Fatalf("round lasted %d ticks, want %d", n, ts.TicksFor(30))
	}
	if ts.Snapshot().State != StateGameOver || ts.Snapshot().Reason != ReasonTimeExpired || ts.Camera.Open {
		t.Fatalf("unexpected end state: %+v camera=%+v", ts.Snapshot().State, ts.Camera)
	}
}

func TestMachine_GameOverIgnoresPlayInput(t *testing.T) {
	ts := NewTestSim(WithSpawning(false), WithConfig(oneSecondRound), WithStarted())
	ts.RunUntil(100, func(s Snapshot) bool { return s.State == StateGameOver })
	before := ts.Snapshot()
	rep := ts.Step(Fire(SideLeft), MoveRight(SideRight), Start())
	after := ts.Snapshot()
	if rep.After != StateGameOver || rep.Shots != [2]int{} {
		t.Fatalf("game over accepted play input: %+v", rep)
	}
	if after.Players != before.Players || after.Elapsed != before.Elapsed {
		t.Fatal("round mutated while in game over")
	}
}

func TestMachine_RestartResetsScores(t *testing.T) {
	ts := NewTestSim(
		WithSpawning(false),
		WithConfig(oneSecondRound),
		WithEnemy(495, 850, 1),
		WithBullet(SideLeft, 500, 900),
	)
	ts.RunUntil(100, func(s Snapshot) bool { return s.State == StateGameOver })
	if got := ts.Snapshot().Scores; got != [2]int{1, 0} {
		t.Fatalf("scores before restart = %v, want [1 0]", got)
	}
	rep := ts.Step(Restart())
	if rep.After != StatePlaying {
		t.Fatalf("restart left state %s", rep.After)
	}
	s := ts.Snapshot()
	if s.Scores != [2]int{0, 0} || s.Stats.Hits != [2]int{0, 0} {
		t.Fatalf("restart kept score: %v %v", s.Scores, s.Stats.Hits)
	}
	if s.RoundID != "round-2" {
		t.Fatalf("round id = %q, want round-2", s.RoundID)
	}
	if s.Reason != "" {
		t.Fatalf("reason carried into new round: %q", s.Reason)
	}
	if !ts.Camera.Open || ts.Camera.Starts != 2 {
		t.Fatalf("camera not reopened: %+v", ts.Camera)
	}
}

func TestMachine_ToMenuClearsRound(t *testing.T) {
	ts := NewTestSim(WithSpawning(false), WithConfig(oneSecondRound), WithStarted())
	ts.RunUntil(100, func(s Snapshot) bool { return s.State == StateGameOver })
	ts.Step(ToMenu())
	s := ts.Snapshot()
	if s.State != StateMenu {
		t.Fatalf("state = %s, want menu", s.State)
	}
	if s.RoundID != "" || s.Scores != [2]int{} || s.TimeLimit != 0 {
		t.Fatalf("round data survived: %+v", s)
	}
	// Already closed at game over; the second stop must be a no-op.
	if ts.Camera.Stops != 1 {
		t.Fatalf("camera stops = %d, want 1", ts.Camera.Stops)
	}
	ts.Step(Start())
	if ts.Machine.State() != StatePlaying {
		t.Fatal("menu did not accept start after returning from game over")
	}
}

func TestMachine_QuitFromEveryState(t *testing.T) {
	setups := map[string]func() *TestSim{
		"menu": func() *TestSim { return NewTestSim() },
		"playing": func() *TestSim {
			return NewTestSim(WithStarted())
		},
		"game_over": func() *TestSim {
			ts := NewTestSim(WithSpawning(false), WithConfig(oneSecondRound), WithStarted())
			ts.RunUntil(100, func(s Snapshot) bool { return s.State == StateGameOver })
			return ts
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			ts := setup()
			rep := ts.Step(Quit())
			if rep.After != StateTerminated || !ts.Machine.Terminated() {
				t.Fatalf("quit from %s left %s", name, rep.After)
			}
			if ts.Camera.Open {
				t.Fatal("camera still open after quit")
			}
			tick := ts.Snapshot().Tick
			again := ts.Step(Start())
			if again.After != StateTerminated || ts.Snapshot().Tick != tick {
				t.Fatal("terminated machine kept ticking")
			}
		})
	}
}

func TestMachine_QuitDropsLaterCommands(t *testing.T) {
	ts := NewTestSim()
	rep := ts.Step(Quit(), Start())
	if rep.After != StateTerminated {
		t.Fatalf("state = %s, want terminated", rep.After)
	}
	if ts.Camera.Starts != 0 {
		t.Fatal("start after quit opened the camera")
	}
}

func TestMachine_ClassicModeAlwaysPlaying(t *testing.T) {
	ts := NewTestSim(WithMode(ModeClassic), WithSpawning(false), WithConfig(oneSecondRound))
	if ts.Machine.State() != StatePlaying || !ts.Camera.Open {
		t.Fatalf("classic mode should start playing with camera open, got %s", ts.Machine.State())
	}
	reports := ts.RunTicks(200, func(i int, _ Snapshot) []Command {
		return []Command{Restart(), ToMenu(), Start()}
	})
	if len(reports) != 60 {
		t.Fatalf("classic round ran %d ticks, want 60", len(reports))
	}
	for _, r := range reports[:59] {
		if r.After != StatePlaying {
			t.Fatalf("tick %d left playing: %s", r.Tick, r.After)
		}
	}
	s := ts.Snapshot()
	if s.State != StateTerminated || s.Reason != ReasonTimeExpired {
		t.Fatalf("classic end = %s (%q), want terminated (time expired)", s.State, s.Reason)
	}
	if ts.Camera.Open {
		t.Fatal("camera left open at classic end")
	}
}

func TestMachine_CameraFailureIsTolerated(t *testing.T) {
	ts := NewTestSim(WithCameraFailure(errors.New("no capture device")))
	rep := ts.Step(Start())
	if rep.After != StatePlaying {
		t.Fatalf("camera failure blocked the round: %s", rep.After)
	}
	e, ok := ts.Log.LastOf("camera", "open_failed")
	if !ok || !strings.Contains(e.Value, "no capture device") {
		t.Fatalf("camera failure not logged:\n%s", ts.Log.Format())
	}
}

func TestMachine_ScoreNeverDecreases(t *testing.T) {
	ts := NewTestSim(WithSeed(42), WithStarted(), WithConfig(func(c *Config) { c.SpawnChance = 0.2 }))
	prev := [2]int{}
	hits := 0
	ts.RunTicks(ts.TicksFor(30), func(i int, s Snapshot) []Command {
		if s.Scores[0] < prev[0] || s.Scores[1] < prev[1] {
			t.Fatalf("tick %d: score went from %v to %v", i, prev, s.Scores)
		}
		prev = s.Scores
		return sweepScript(i, s)
	})
	for _, e := range ts.Log.Filter("hit", "") {
		if e.NumVal < 1 {
			t.Fatalf("hit logged with score %v", e.NumVal)
		}
		hits++
	}
	s := ts.Snapshot()
	if hits != s.Scores[0]+s.Scores[1] {
		t.Fatalf("%d hits logged but score is %v", hits, s.Scores)
	}
}

// sweepScript walks both players back and forth and fires every few ticks.
func sweepScript(i int, _ Snapshot) []Command {
	var cmds []Command
	if (i/20)%2 == 0 {
		cmds = append(cmds, MoveLeft(SideLeft), MoveRight(SideRight))
	} else {
		cmds = append(cmds, MoveRight(SideLeft), MoveLeft(SideRight))
	}
	if i%6 == 0 {
		cmds = append(cmds, Fire(SideLeft), Fire(SideRight))
	}
	return cmds
}

func TestMachine_SameSeedSameRound(t *testing.T) {
	run := func() Snapshot {
		ts := NewTestSim(WithSeed(7), WithStarted())
		ts.RunTicks(600, sweepScript)
		return ts.Snapshot()
	}
	a, b := run(), run()
	if a.Scores != b.Scores || a.Stats != b.Stats || len(a.Enemies) != len(b.Enemies) {
		t.Fatalf("seeded runs diverged: %v/%v vs %v/%v", a.Scores, a.Stats, b.Scores, b.Stats)
	}
	for i := range a.Enemies {
		if a.Enemies[i] != b.Enemies[i] {
			t.Fatalf("enemy %d diverged: %+v vs %+v", i, a.Enemies[i], b.Enemies[i])
		}
	}
}

func TestMachine_SnapshotIsDetached(t *testing.T) {
	ts := NewTestSim(WithSpawning(false), WithEnemy(500, 100, 1), WithBullet(SideLeft, 100, 700))
	s := ts.Snapshot()
	s.Enemies[0].X = -999
	s.Bullets[SideLeft][0].Y = -999
	again := ts.Snapshot()
	if again.Enemies[0].X == -999 || again.Bullets[SideLeft][0].Y == -999 {
		t.Fatal("mutating a snapshot reached the live round")
	}
}

func TestNewMachine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 0
	if _, err := NewMachine(cfg, ModeArcade); err == nil {
		t.Fatal("expected error for zero tick rate")
	}
}
