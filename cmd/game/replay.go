package main

import (
	"fmt"
	"log"

	"github.com/younwookim/platformkit/internal/application/replay"
	"github.com/younwookim/platformkit/internal/application/session"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// runReplay feeds a recorded run through a fresh session and returns the
// state after the last frame. An empty backend uses the recorded one.
// The recorded timestep wins over the config so results stay reproducible.
func runReplay(cfg *config.GameConfig, path, backend string) (session.Snapshot, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return session.Snapshot{}, err
	}
	return simulateReplay(cfg, *data, backend)
}

// simulateReplay runs data to the end on a new session
func simulateReplay(cfg *config.GameConfig, data replay.ReplayData, backend string) (session.Snapshot, error) {
	if backend == "" {
		backend = data.Backend
	}
	if data.Stage != "" && cfg.Stage != nil && data.Stage != cfg.Stage.ID {
		log.Printf("Replay was recorded on stage %q, running on %q", data.Stage, cfg.Stage.ID)
	}

	run := *cfg
	if data.Timestep > 0 && cfg.Physics != nil && data.Timestep != cfg.Physics.Physics.FixedTimestep {
		physics := *cfg.Physics
		physics.Physics.FixedTimestep = data.Timestep
		run.Physics = &physics
	}

	s, err := session.New(&run, backend)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("replay: %w", err)
	}

	replayer := replay.NewReplayer(data)
	for {
		in, ok := replayer.GetInput()
		if !ok {
			break
		}
		s.Step(in)
	}
	log.Printf("Replayed %d frames on %s", replayer.TotalFrames(), s.Backend())
	return s.Snapshot(), nil
}
