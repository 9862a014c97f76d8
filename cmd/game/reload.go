package main

import (
	"log"

	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// physicsLoader is the part of config.Loader the reload loop needs
type physicsLoader interface {
	LoadPhysics() (*config.PhysicsConfig, error)
}

// forwardReloads loads physics tuning whenever a physics file changes and
// hands it to the game loop. Stage edits are only logged; they take effect
// on the next run. Returns when events is closed, closing out.
func forwardReloads(events <-chan string, loader physicsLoader, out chan<- *config.PhysicsConfig) {
	defer close(out)
	for path := range events {
		if !config.IsPhysicsFile(path) {
			log.Printf("Config changed: %s (restart to apply)", path)
			continue
		}
		cfg, err := loader.LoadPhysics()
		if err != nil {
			log.Printf("Physics reload failed: %v", err)
			continue
		}
		out <- cfg
	}
}

func logWatchErrors(errs <-chan error) {
	for err := range errs {
		log.Printf("Config watcher: %v", err)
	}
}
