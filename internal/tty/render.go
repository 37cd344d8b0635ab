// Package tty is a terminal front end for the duel. It scales the playfield
// onto the character grid and maps key presses onto game commands.
package tty

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Invaders-Duel/internal/game"
)

// Canvas is the part of tcell.Screen the renderer writes to.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleP1     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleP2     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBullet = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleLine   = tcell.StyleDefault.Foreground(tcell.ColorPurple)
)

// grid maps playfield pixels onto terminal cells below a one-row HUD.
type grid struct {
	cols, rows int
	w, h       float64
}

// cell floors so anything above the playfield lands on row 0 or less, which
// belongs to the HUD.
func (g grid) cell(x, y float64) (int, int) {
	cx := int(math.Floor(x / g.w * float64(g.cols)))
	cy := 1 + int(math.Floor(y/g.h*float64(g.rows-1)))
	return cx, cy
}

func (g grid) span(w float64) int {
	n := int(w / g.w * float64(g.cols))
	if n < 1 {
		n = 1
	}
	return n
}

// Render draws s onto c. The canvas is expected to be cleared beforehand.
func Render(c Canvas, s game.Snapshot, cfg game.Config, feed []game.FeedEntry) {
	cols, rows := c.Size()
	if cols < 10 || rows < 4 {
		return
	}
	g := grid{cols: cols, rows: rows, w: cfg.Width, h: cfg.Height}

	switch s.State {
	case game.StateMenu:
		centreRow(c, rows/2-2, "SPACE INVADERS DUEL", styleHUD)
		centreRow(c, rows/2, "P1: a/d move, space fire   P2: arrows move, enter fire", tcell.StyleDefault)
		centreRow(c, rows/2+2, "s = start   q = quit", tcell.StyleDefault)
		return
	case game.StateTerminated:
		return
	}

	mid, _ := g.cell(cfg.Width/2, 0)
	for y := 1; y < rows; y++ {
		c.SetContent(mid, y, '┊', nil, styleLine)
	}
	for _, e := range s.Enemies {
		drawSprite(c, g, e.X, e.Y, e.Width, "<W>", styleEnemy)
	}
	for _, bullets := range s.Bullets {
		for _, b := range bullets {
			x, y := g.cell(b.X+b.Width/2, b.Y)
			if y < 1 {
				continue
			}
			put(c, x, y, '|', styleBullet)
		}
	}
	for _, p := range s.Players {
		st := styleP1
		if p.Side == game.SideRight {
			st = styleP2
		}
		drawSprite(c, g, p.X, p.Y, p.Width, "/^\\", st)
	}

	hud := fmt.Sprintf(" Player 1: %d   Player 2: %d ", s.Scores[game.SideLeft], s.Scores[game.SideRight])
	centreRow(c, 0, hud, styleHUD)
	timer := fmt.Sprintf("Time: %ds ", s.RemainingSeconds())
	text(c, cols-len(timer), 0, timer, styleHUD)

	for i, e := range feed {
		st := styleP1
		if e.Side == game.SideRight {
			st = styleP2
		}
		text(c, 1, rows-len(feed)+i, e.Message, st)
	}

	if s.State == game.StateGameOver {
		centreRow(c, rows/2-1, "GAME OVER - "+s.Reason, styleHUD)
		centreRow(c, rows/2, game.DetermineOutcome(s).Headline(), styleHUD)
		centreRow(c, rows/2+1, "r = restart   m = menu   q = quit", tcell.StyleDefault)
	}
}

// drawSprite centres label over the entity's box.
func drawSprite(c Canvas, g grid, x, y, w float64, label string, st tcell.Style) {
	cx, cy := g.cell(x+w/2, y)
	if cy < 1 {
		return
	}
	text(c, cx-len([]rune(label))/2, cy, label, st)
}

func put(c Canvas, x, y int, r rune, st tcell.Style) {
	cols, rows := c.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	c.SetContent(x, y, r, nil, st)
}

func text(c Canvas, x, y int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		put(c, x+i, y, r, st)
	}
}

func centreRow(c Canvas, y int, s string, st tcell.Style) {
	cols, _ := c.Size()
	text(c, cols/2-len([]rune(s))/2, y, s, st)
}
