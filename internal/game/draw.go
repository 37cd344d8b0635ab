package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	lineH = 12 // debug font line height at 1x
	charW = 6  // debug font char width at 1x

	cameraInsetW = 320
	cameraInsetH = 180
)

func (g *Game) drawWorld(screen *ebiten.Image, s Snapshot) {
	for _, p := range s.Players {
		blit(screen, g.sprites.player[p.Side], p.X, p.Y)
	}
	for _, bullets := range s.Bullets {
		for _, b := range bullets {
			blit(screen, g.sprites.bullet, b.X, b.Y)
		}
	}
	for _, e := range s.Enemies {
		blit(screen, g.sprites.enemy, e.X, e.Y)
	}

	// Centre line and each side's margin.
	mid := float32(g.cfg.Width / 2)
	h := float32(g.cfg.Height)
	vector.StrokeLine(screen, mid, 0, mid, h, 2, color.RGBA{R: 60, G: 70, B: 110, A: 160}, false)
	m := float32(g.cfg.Margin)
	vector.StrokeLine(screen, mid-m, h-6, mid+m, h-6, 3, color.RGBA{R: 120, G: 60, B: 60, A: 160}, false)
}

func blit(dst, img *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	dst.DrawImage(img, op)
}

// drawCamera shows the latest capture frame in the bottom-right corner, or a
// NO SIGNAL placeholder when the session has nothing to offer.
func (g *Game) drawCamera(screen *ebiten.Image) {
	x := float32(g.width - cameraInsetW - 20)
	y := float32(g.height - cameraInsetH - 100)
	frame, ok := g.frames.Frame()
	if !ok {
		vector.FillRect(screen, x, y, cameraInsetW, cameraInsetH, color.RGBA{R: 16, G: 16, B: 16, A: 220}, false)
		vector.StrokeRect(screen, x, y, cameraInsetW, cameraInsetH, 2, color.RGBA{R: 90, G: 90, B: 90, A: 255}, false)
		ebitenutil.DebugPrintAt(screen, "NO SIGNAL", int(x)+cameraInsetW/2-27, int(y)+cameraInsetH/2-8)
		return
	}
	w, h := frame.Rect.Dx(), frame.Rect.Dy()
	if frame.Rect.Min.X == 0 && frame.Rect.Min.Y == 0 && frame.Stride == 4*w {
		if g.camImg == nil || g.camImg.Bounds().Dx() != w || g.camImg.Bounds().Dy() != h {
			g.camImg = ebiten.NewImage(w, h)
		}
		g.camImg.WritePixels(frame.Pix)
	} else {
		g.camImg = ebiten.NewImageFromImage(frame)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(cameraInsetW)/float64(w), float64(cameraInsetH)/float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(g.camImg, op)
	vector.StrokeRect(screen, x, y, cameraInsetW, cameraInsetH, 2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, false)
}

// drawHUD prints the scores centred at the top, the timer top-right and the
// kill feed bottom-left. Text is rendered into hudBuf at 1x, then scaled up.
func (g *Game) drawHUD(screen *ebiten.Image, s Snapshot) {
	bufW := g.width / hudScale
	g.hudBuf.Clear()

	score := fmt.Sprintf("Player 1: %d   Player 2: %d", s.Scores[SideLeft], s.Scores[SideRight])
	ebitenutil.DebugPrintAt(g.hudBuf, score, bufW/2-len(score)*charW/2, 3)
	timer := fmt.Sprintf("Time: %ds", s.RemainingSeconds())
	ebitenutil.DebugPrintAt(g.hudBuf, timer, bufW-len(timer)*charW-6, 3)

	feed := g.effects.Feed.Recent()
	y := g.height/hudScale - 6 - len(feed)*lineH
	for _, e := range feed {
		dot := color.RGBA{R: 210, G: 70, B: 70, A: 255}
		if e.Side == SideRight {
			dot = color.RGBA{R: 70, G: 110, B: 210, A: 255}
		}
		vector.FillRect(g.hudBuf, 4, float32(y+4), 3, 5, dot, false)
		ebitenutil.DebugPrintAt(g.hudBuf, e.Message, 10, y)
		y += lineH
	}
	g.blitHUD(screen)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	g.drawPanel(screen, []string{
		"SPACE INVADERS DUEL",
		"",
		"P1: A/D move, SPACE fire",
		"P2: LEFT/RIGHT move, ENTER fire",
		"",
		"S = start    Q/ESC = quit",
	})
}

func (g *Game) drawGameOver(screen *ebiten.Image, s Snapshot) {
	lines := []string{
		"GAME OVER - " + s.Reason,
		DetermineOutcome(s).Headline(),
		fmt.Sprintf("P1 %d  :  %d P2", s.Scores[SideLeft], s.Scores[SideRight]),
		fmt.Sprintf("accuracy %.0f%% / %.0f%%", s.Stats.Accuracy(SideLeft)*100, s.Stats.Accuracy(SideRight)*100),
		"",
		"R = restart  M = menu  C = copy  Q = quit",
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}
	g.drawPanel(screen, lines)
}

// drawPanel renders a centred text box through the scaled HUD buffer.
func (g *Game) drawPanel(screen *ebiten.Image, lines []string) {
	const padX = 8
	const padY = 6

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(g.width/hudScale)/2 - boxW/2
	by := float32(g.height/hudScale)/2 - boxH/2

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 8, B: 20, A: 220}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 80, G: 90, B: 160, A: 200}, false)
	for i, line := range lines {
		tx := int(bx) + padX + (maxLen-len(line))*charW/2
		ty := int(by) + padY + i*lineH
		ebitenutil.DebugPrintAt(g.hudBuf, line, tx, ty)
	}
	g.blitHUD(screen)
}

func (g *Game) blitHUD(screen *ebiten.Image) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}
