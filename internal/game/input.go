package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// binding maps a key to a command. Held bindings fire every tick the key is
// down; the rest fire once per press.
type binding struct {
	key  ebiten.Key
	held bool
	cmd  Command
}

var defaultBindings = []binding{
	{ebiten.KeyA, true, MoveLeft(SideLeft)},
	{ebiten.KeyD, true, MoveRight(SideLeft)},
	{ebiten.KeySpace, false, Fire(SideLeft)},
	{ebiten.KeyArrowLeft, true, MoveLeft(SideRight)},
	{ebiten.KeyArrowRight, true, MoveRight(SideRight)},
	{ebiten.KeyEnter, false, Fire(SideRight)},
	{ebiten.KeyS, false, Start()},
	{ebiten.KeyR, false, Restart()},
	{ebiten.KeyM, false, ToMenu()},
	{ebiten.KeyEscape, false, Quit()},
	{ebiten.KeyQ, false, Quit()},
}

// copyKey exports the round summary from the game-over screen.
const copyKey = ebiten.KeyC

// commandsFor reads every bound key once and returns this tick's commands
// plus the key state to compare against next tick.
func commandsFor(bindings []binding, down func(ebiten.Key) bool, prev map[ebiten.Key]bool) ([]Command, map[ebiten.Key]bool) {
	current := make(map[ebiten.Key]bool, len(bindings))
	var cmds []Command
	for _, b := range bindings {
		d, seen := current[b.key]
		if !seen {
			d = down(b.key)
			current[b.key] = d
		}
		if !d {
			continue
		}
		if b.held || !prev[b.key] {
			cmds = append(cmds, b.cmd)
		}
	}
	return cmds, current
}

// handleInput translates keyboard state into commands (edge-triggered except movement).
func (g *Game) handleInput() []Command {
	cmds, current := commandsFor(defaultBindings, ebiten.IsKeyPressed, g.prevKeys)

	current[copyKey] = ebiten.IsKeyPressed(copyKey)
	if current[copyKey] && !g.prevKeys[copyKey] && g.machine.State() == StateGameOver {
		g.copySummary()
	}

	g.prevKeys = current
	return cmds
}

func (g *Game) copySummary() {
	line := Summary(g.machine.Snapshot())
	if err := g.clip(line); err != nil {
		log.Printf("clipboard: %v", err)
		g.status = "clipboard unavailable"
		return
	}
	g.status = "result copied"
}
