package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Invaders-Duel/internal/assets"
	"github.com/Garsondee/Invaders-Duel/internal/camera"
	"github.com/Garsondee/Invaders-Duel/internal/game"
	"github.com/Garsondee/Invaders-Duel/internal/sfx"
)

func main() {
	var modeName, assetDir, camName string
	var seed int64
	var mute, fullscreen bool

	flag.StringVar(&modeName, "mode", "arcade", "round flow: arcade (menu and game over) or classic")
	flag.Int64Var(&seed, "seed", 0, "spawner seed (0 = time based)")
	flag.StringVar(&assetDir, "assets", "assets", "directory holding the sprite images")
	flag.StringVar(&camName, "camera", "synthetic", "camera device: synthetic or none")
	flag.BoolVar(&mute, "mute", false, "disable sound effects")
	flag.BoolVar(&fullscreen, "fullscreen", false, "start fullscreen")
	flag.Parse()

	mode, err := game.ParseMode(modeName)
	if err != nil {
		log.Fatal(err)
	}
	cfg := game.DefaultConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Fatalf("config: %v", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	dev, err := camera.FromName(camName, 640, 360)
	if err != nil {
		log.Fatal(err)
	}
	cam := camera.NewSession(dev, camera.WithFrameSize(320, 180), camera.WithLogger(log.Printf))

	machine, err := game.NewMachine(cfg, mode,
		game.WithCamera(cam),
		game.WithRand(rand.New(rand.NewSource(seed))), // #nosec G404 -- game only
	)
	if err != nil {
		log.Fatal(err)
	}
	defer machine.Close()

	var sounds game.Sounds = sfx.Muted{}
	if !mute {
		mgr := sfx.NewManager(-1)
		if err := mgr.Initialize(); err != nil {
			log.Printf("audio unavailable, continuing muted: %v", err)
		} else {
			defer mgr.Cleanup()
			sounds = mgr
		}
	}

	loader := assets.NewLoader(os.DirFS(assetDir))
	g := game.New(game.Options{
		Machine: machine,
		Sprites: loader,
		Frames:  cam,
		Sounds:  sounds,
	})
	if missing := loader.Missing(); len(missing) > 0 {
		log.Printf("assets: %d placeholder(s) in use: %v", len(missing), missing)
	}

	ebiten.SetWindowTitle("Space Invaders Duel")
	ebiten.SetWindowSize(int(cfg.Width)/2, int(cfg.Height)/2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(fullscreen)
	ebiten.SetTPS(cfg.TickRate)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
