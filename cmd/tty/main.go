package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Invaders-Duel/internal/game"
	"github.com/Garsondee/Invaders-Duel/internal/sfx"
	"github.com/Garsondee/Invaders-Duel/internal/tty"
)

func main() {
	var modeName string
	var seed int64
	var mute bool

	flag.StringVar(&modeName, "mode", "arcade", "round flow: arcade (menu and game over) or classic")
	flag.Int64Var(&seed, "seed", 0, "spawner seed (0 = time based)")
	flag.BoolVar(&mute, "mute", false, "disable sound effects")
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
	machine, err := game.NewMachine(cfg, mode,
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

	scr, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := scr.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}
	scr.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	runErr := tty.Run(ctx, scr, machine, game.NewEffects(sounds))
	stop()
	scr.Fini()

	if runErr != nil && runErr != context.Canceled {
		log.Fatal(runErr)
	}
	if s := machine.Snapshot(); s.RoundID != "" {
		log.Print(game.Summary(s))
	}
}
