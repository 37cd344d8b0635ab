package tty

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Invaders-Duel/internal/game"
)

// Screen is the subset of tcell.Screen the loop drives.
type Screen interface {
	Canvas
	PollEvent() tcell.Event
	Clear()
	Show()
}

// Run drives m at its tick rate until quit or ctx is cancelled. Input is
// polled on a separate goroutine and drained at the start of every tick, so
// the simulation itself stays single-threaded.
func Run(ctx context.Context, scr Screen, m *game.Machine, fx *game.Effects) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := scr.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	cfg := m.Config()
	ticker := time.NewTicker(cfg.TickDuration())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		cmds := drain(events)
		rep := m.Step(cmds)
		fx.Apply(rep)
		if m.Terminated() {
			return nil
		}
		scr.Clear()
		Render(scr, m.Snapshot(), cfg, fx.Feed.Recent())
		scr.Show()
	}
}

// drain collects the commands of every pending event without blocking.
func drain(events <-chan tcell.Event) []game.Command {
	var cmds []game.Command
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				// Screen finalised underneath us.
				return append(cmds, game.Quit())
			}
			if k, isKey := ev.(*tcell.EventKey); isKey {
				cmds = append(cmds, Translate(k)...)
			}
		default:
			return cmds
		}
	}
}
