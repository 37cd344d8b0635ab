package game

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// hudScale is the integer upscale factor applied to all HUD text (3 = 3× larger).
const hudScale = 3

// FrameSource supplies the latest camera frame, if there is one.
type FrameSource interface {
	Frame() (*image.RGBA, bool)
}

type noFrames struct{}

func (noFrames) Frame() (*image.RGBA, bool) { return nil, false }

// SpriteLoader returns an image of the requested size. It never fails; a
// missing asset comes back as a solid placeholder of the fallback colour.
type SpriteLoader interface {
	Load(name string, size image.Point, fallback color.Color) (*image.RGBA, bool)
}

// Options wires a windowed Game.
type Options struct {
	Machine   *Machine
	Sprites   SpriteLoader
	Frames    FrameSource
	Sounds    Sounds
	Clipboard func(string) error
}

type sprites struct {
	background *ebiten.Image
	player     [sideCount]*ebiten.Image
	enemy      *ebiten.Image
	bullet     *ebiten.Image
}

// Game adapts a Machine to ebiten's Update/Draw/Layout loop.
type Game struct {
	machine *Machine
	cfg     Config
	width   int
	height  int

	sprites sprites
	frames  FrameSource
	camImg  *ebiten.Image
	effects *Effects
	clip    func(string) error
	status  string // transient line on the game-over screen

	prevKeys map[ebiten.Key]bool

	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image
}

// New builds the windowed front end. Sprites are loaded once up front.
func New(opts Options) *Game {
	cfg := opts.Machine.Config()
	g := &Game{
		machine:  opts.Machine,
		cfg:      cfg,
		width:    int(cfg.Width),
		height:   int(cfg.Height),
		frames:   opts.Frames,
		effects:  NewEffects(opts.Sounds),
		clip:     opts.Clipboard,
		prevKeys: make(map[ebiten.Key]bool),
	}
	if g.frames == nil {
		g.frames = noFrames{}
	}
	if g.clip == nil {
		g.clip = setClipboardText
	}
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.loadSprites(opts.Sprites)
	return g
}

func (g *Game) loadSprites(l SpriteLoader) {
	if l == nil {
		l = placeholderLoader{}
	}
	load := func(name string, w, h float64, fallback color.RGBA) (*ebiten.Image, bool) {
		img, ok := l.Load(name, image.Pt(int(w), int(h)), fallback)
		if !ok {
			log.Printf("asset %s missing, using placeholder", name)
		}
		return ebiten.NewImageFromImage(img), ok
	}
	c := g.cfg
	g.sprites.background, _ = load("background.png", c.Width, c.Height, color.RGBA{R: 8, G: 10, B: 24, A: 255})
	p1, p1ok := load("player.png", c.PlayerWidth, c.PlayerHeight, color.RGBA{R: 210, G: 70, B: 70, A: 255})
	p2, p2ok := load("player2.png", c.PlayerWidth, c.PlayerHeight, color.RGBA{R: 70, G: 110, B: 210, A: 255})
	// Both ships share player.png unless a second sprite is supplied.
	if p1ok && !p2ok {
		p2 = p1
	}
	g.sprites.player = [sideCount]*ebiten.Image{p1, p2}
	g.sprites.enemy, _ = load("enemy.png", c.EnemyWidth, c.EnemyHeight, color.RGBA{R: 90, G: 200, B: 90, A: 255})
	g.sprites.bullet, _ = load("bullet.png", c.BulletWidth, c.BulletHeight, color.RGBA{R: 255, G: 230, B: 80, A: 255})
}

// placeholderLoader fills every request with its fallback colour.
type placeholderLoader struct{}

func (placeholderLoader) Load(_ string, size image.Point, fallback color.Color) (*image.RGBA, bool) {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(fallback), image.Point{}, draw.Src)
	return img, false
}

func (g *Game) Update() error {
	cmds := g.handleInput()
	rep := g.machine.Step(cmds)
	g.effects.Apply(rep)
	if rep.Transitioned() {
		g.status = ""
	}
	if g.machine.Terminated() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.machine.Snapshot()
	screen.DrawImage(g.sprites.background, nil)
	switch s.State {
	case StateMenu:
		g.drawMenu(screen)
	case StatePlaying:
		g.drawWorld(screen, s)
		g.drawCamera(screen)
		g.drawHUD(screen, s)
	case StateGameOver:
		g.drawWorld(screen, s)
		g.drawHUD(screen, s)
		g.drawGameOver(screen, s)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
