package tty

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Invaders-Duel/internal/game"
)

// Translate maps one key event to commands. Terminals report presses only, so
// movement advances one step per event (key repeat keeps a ship moving).
func Translate(ev *tcell.EventKey) []game.Command {
	switch ev.Key() {
	case tcell.KeyLeft:
		return []game.Command{game.MoveLeft(game.SideRight)}
	case tcell.KeyRight:
		return []game.Command{game.MoveRight(game.SideRight)}
	case tcell.KeyEnter:
		return []game.Command{game.Fire(game.SideRight)}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return []game.Command{game.Quit()}
	case tcell.KeyRune:
	default:
		return nil
	}
	switch ev.Rune() {
	case 'a', 'A':
		return []game.Command{game.MoveLeft(game.SideLeft)}
	case 'd', 'D':
		return []game.Command{game.MoveRight(game.SideLeft)}
	case ' ':
		return []game.Command{game.Fire(game.SideLeft)}
	case 's', 'S':
		return []game.Command{game.Start()}
	case 'r', 'R':
		return []game.Command{game.Restart()}
	case 'm', 'M':
		return []game.Command{game.ToMenu()}
	case 'q', 'Q':
		return []game.Command{game.Quit()}
	}
	return nil
}
