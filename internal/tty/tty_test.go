package tty

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Invaders-Duel/internal/game"
)

type fakeCanvas struct {
	mu    sync.Mutex
	cols  int
	rows  int
	cells map[[2]int]rune
	shows int
	evq   chan tcell.Event
}

func newFakeCanvas(cols, rows int) *fakeCanvas {
	return &fakeCanvas{cols: cols, rows: rows, cells: map[[2]int]rune{}, evq: make(chan tcell.Event, 8)}
}

func (f *fakeCanvas) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cells[[2]int{x, y}] = r
}

func (f *fakeCanvas) Size() (int, int) { return f.cols, f.rows }

func (f *fakeCanvas) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cells = map[[2]int]rune{}
}

func (f *fakeCanvas) Show() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows++
}

func (f *fakeCanvas) PollEvent() tcell.Event {
	ev, ok := <-f.evq
	if !ok {
		return nil
	}
	return ev
}

func (f *fakeCanvas) row(y int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sb strings.Builder
	for x := 0; x < f.cols; x++ {
		if r, ok := f.cells[[2]int{x, y}]; ok {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func (f *fakeCanvas) screenText() string {
	var rows []string
	for y := 0; y < f.rows; y++ {
		rows = append(rows, f.row(y))
	}
	return strings.Join(rows, "\n")
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestRender_Menu(t *testing.T) {
	c := newFakeCanvas(80, 24)
	Render(c, game.Snapshot{State: game.StateMenu}, game.DefaultConfig(), nil)
	if !strings.Contains(c.screenText(), "SPACE INVADERS DUEL") {
		t.Fatalf("menu title missing:\n%s", c.screenText())
	}
}

func TestRender_PlayingPlacesEntities(t *testing.T) {
	ts := game.NewTestSim(game.WithSpawning(false), game.WithEnemy(910, 500, 1))
	c := newFakeCanvas(80, 24)
	Render(c, ts.Snapshot(), game.DefaultConfig(), nil)

	if got := c.row(11)[39:42]; got != "<W>" {
		t.Fatalf("enemy row = %q, want <W> at col 39:\n%s", got, c.screenText())
	}
	if hud := c.row(0); !strings.Contains(hud, "Player 1: 0   Player 2: 0") || !strings.Contains(hud, "Time: 30s") {
		t.Fatalf("hud = %q", hud)
	}
	players := c.row(22)
	if strings.Count(players, "/^\\") != 2 {
		t.Fatalf("expected two ships on row 22, got %q", players)
	}
}

func TestRender_TinyTerminalIsSkipped(t *testing.T) {
	c := newFakeCanvas(5, 2)
	Render(c, game.Snapshot{State: game.StatePlaying}, game.DefaultConfig(), nil)
	if len(c.cells) != 0 {
		t.Fatal("rendered into a terminal too small to hold the HUD")
	}
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want game.Command
	}{
		{key('a'), game.MoveLeft(game.SideLeft)},
		{key('D'), game.MoveRight(game.SideLeft)},
		{key(' '), game.Fire(game.SideLeft)},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.MoveLeft(game.SideRight)},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), game.MoveRight(game.SideRight)},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.Fire(game.SideRight)},
		{key('s'), game.Start()},
		{key('r'), game.Restart()},
		{key('m'), game.ToMenu()},
		{key('q'), game.Quit()},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.Quit()},
	}
	for _, c := range cases {
		got := Translate(c.ev)
		if len(got) != 1 || got[0] != c.want {
			t.Errorf("key %v/%q: %+v, want %+v", c.ev.Key(), c.ev.Rune(), got, c.want)
		}
	}
	if got := Translate(key('x')); got != nil {
		t.Errorf("unbound key produced %+v", got)
	}
}

func TestRun_StartThenQuit(t *testing.T) {
	m, err := game.NewMachine(game.DefaultConfig(), game.ModeArcade)
	if err != nil {
		t.Fatal(err)
	}
	c := newFakeCanvas(80, 24)
	c.evq <- key('s')

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), c, m, game.NewEffects(nil)) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		c.mu.Lock()
		shows := c.shows
		c.mu.Unlock()
		if shows >= 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("loop never rendered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	c.evq <- key('q')
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	if !m.Terminated() {
		t.Fatal("machine not terminated")
	}
	if !m.Log().HasEntry("state", "change", "playing") {
		t.Fatalf("start key never began a round:\n%s", m.Log().Format())
	}
	close(c.evq)
}

func TestRun_ContextCancel(t *testing.T) {
	m, err := game.NewMachine(game.DefaultConfig(), game.ModeArcade)
	if err != nil {
		t.Fatal(err)
	}
	c := newFakeCanvas(80, 24)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, c, m, game.NewEffects(nil)); err != context.Canceled {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	close(c.evq)
}

func TestRender_OffscreenEntitiesStayOffHUD(t *testing.T) {
	ts := game.NewTestSim(game.WithSpawning(false),
		game.WithEnemy(910, -60, 1), game.WithEnemy(300, -5, 1),
		game.WithBullet(game.SideLeft, 900, -10))
	c := newFakeCanvas(80, 24)
	Render(c, ts.Snapshot(), game.DefaultConfig(), nil)
	if hud := c.row(0); strings.Contains(hud, "<W>") || strings.Contains(hud, "|") {
		t.Fatalf("entity above the field drawn on the HUD row: %q", hud)
	}
	if row := c.row(1); strings.Contains(row, "<W>") {
		t.Fatalf("enemy above the field drawn on the first row: %q", row)
	}
}
