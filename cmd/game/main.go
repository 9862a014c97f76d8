package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/platformkit/internal/application/game"
	"github.com/younwookim/platformkit/internal/application/scene/playing"
	"github.com/younwookim/platformkit/internal/application/session"
	"github.com/younwookim/platformkit/internal/infrastructure/collision"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

func main() {
	configDir := flag.String("config", "cmd/game/configs", "Directory holding physics.json and stages/")
	stageName := flag.String("stage", "demo", "Stage name under stages/ (.tmx for Tiled maps)")
	backend := flag.String("backend", "", "Collision backend: cp or resolv (replays default to the recorded one)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Run a recorded replay headless and print the final state")
	flag.Parse()

	loader := config.NewLoader(*configDir)
	cfg, err := loader.LoadAll(*stageName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		snap, err := runReplay(cfg, *replayFlag, *backend)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		fmt.Fprintln(os.Stdout, snap)
		return
	}

	if *backend == "" {
		*backend = collision.BackendCP
	}
	s, err := session.New(cfg, *backend)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	reloads := make(chan *config.PhysicsConfig, 1)
	watcher, err := config.NewWatcher(*configDir, filepath.Join(*configDir, "stages"))
	if err != nil {
		log.Printf("Hot reload disabled: %v", err)
	} else {
		defer func() { _ = watcher.Close() }()
		go forwardReloads(watcher.Events, loader, reloads)
		go logWatchErrors(watcher.Errors)
	}

	scene := playing.New(s, playing.Options{
		RecordPath: *recordFlag,
		Reloads:    reloads,
	})
	display := cfg.Physics.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, cfg.Physics.Physics.FixedTimestep)

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("platformkit - " + cfg.Stage.Name)
	ebiten.SetTPS(display.Framerate)

	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}
