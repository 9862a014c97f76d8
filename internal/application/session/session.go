// Package session wires a stage, the kinematic integrator, a collision
// backend and a character controller into one fixed-step simulation.
package session

import (
	"fmt"
	"log"

	"github.com/younwookim/platformkit/internal/application/state"
	"github.com/younwookim/platformkit/internal/application/system"
	"github.com/younwookim/platformkit/internal/domain/entity"
	"github.com/younwookim/platformkit/internal/ecs"
	"github.com/younwookim/platformkit/internal/infrastructure/collision"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// Session is one running simulation of a controlled body on a stage
type Session struct {
	config   *config.PhysicsConfig
	stageCfg *config.StageConfig
	backend  string
	layers   *entity.LayerRegistry

	stage      *entity.Stage
	world      *ecs.World
	physics    ecs.PhysicsConfig
	surface    collision.Surface
	controller *system.Controller
	machine    *state.Machine
	input      *system.InputSystem

	frame int
	last  system.StepResult
}

// Snapshot is the observable state after a step
type Snapshot struct {
	Frame          int
	Position       entity.Vec2
	Velocity       entity.Vec2
	State          state.MovementState
	Collisions     entity.CollisionInfo
	Grounded       bool
	Dashing        bool
	RemainingJumps int
}

// String formats the snapshot for logs and the replay report
func (s Snapshot) String() string {
	return fmt.Sprintf("frame=%d pos=(%.3f, %.3f) vel=(%.3f, %.3f) state=%s grounded=%t dashing=%t jumps=%d",
		s.Frame, s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y,
		s.State, s.Grounded, s.Dashing, s.RemainingJumps)
}

// New builds a session from loaded configs. backend selects the
// collision surface (collision.BackendCP or collision.BackendResolv).
func New(cfg *config.GameConfig, backend string) (*Session, error) {
	if cfg == nil || cfg.Physics == nil || cfg.Stage == nil {
		return nil, fmt.Errorf("session: physics and stage config are required")
	}
	if err := cfg.Physics.Validate(); err != nil {
		return nil, err
	}
	if backend == "" {
		backend = collision.BackendCP
	}

	s := &Session{
		config:   cfg.Physics,
		stageCfg: cfg.Stage,
		backend:  backend,
		layers:   entity.NewLayerRegistry(),
		physics:  ecs.NewPhysicsConfig(cfg.Physics.Physics),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset rebuilds the stage and respawns the body with fresh state
func (s *Session) Reset() error {
	stage, err := system.LoadStage(s.stageCfg)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	world := ecs.NewWorld()
	world.SetStage(stage)
	cc := s.config.Collision
	id := world.CreatePlayer(stage.Spawn, cc.ColliderWidth, cc.ColliderHeight, s.physics.Gap())
	body := world.Body(id)

	surface, err := collision.NewSurface(s.backend, stage, s.layers)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	owner := entity.OwnerID(id)
	self := surface.AddBody(body, owner, entity.LayerPlayer)

	s.stage = stage
	s.world = world
	s.surface = surface
	s.controller = system.NewController(s.config, body, surface,
		system.WithSelf(self, owner),
		system.WithLayers(s.layers),
	)
	s.machine = state.NewMachine(s.config.Jump.LandingReset == config.LandingResetManual)
	s.input = system.NewInputSystem()
	s.frame = 0
	s.last = system.StepResult{}

	log.Printf("session: stage %q (%dx%d) on %s, spawn (%.2f, %.2f)",
		s.stageCfg.ID, stage.Width, stage.Height, s.backend, stage.Spawn.X, stage.Spawn.Y)
	return nil
}

// Step advances one fixed step: intents, controller, state machine,
// then the integrator. The resolvers read the velocity this step's intents
// wrote, since the integrator leaves zero behind after a wall or floor hit.
func (s *Session) Step(in system.InputState) system.StepResult {
	dt := s.config.Physics.FixedTimestep

	s.surface.Sync()
	system.ApplyIntents(s.controller, s.input.Intents(in))
	res := s.controller.Step(dt)
	s.machine.Update(s.controller)
	ecs.Update(s.world, s.physics, dt)

	s.frame++
	s.last = res
	return res
}

// ApplyPhysics swaps in new tuning while keeping the run going.
// Invalid configs are rejected and the current one stays.
func (s *Session) ApplyPhysics(cfg *config.PhysicsConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.config = cfg
	s.physics = ecs.NewPhysicsConfig(cfg.Physics)
	s.controller.SetConfig(cfg)
	s.machine.SetManualLanding(cfg.Jump.LandingReset == config.LandingResetManual)

	id := s.world.PlayerID
	col := s.world.Collider[id]
	if col.Width != cfg.Collision.ColliderWidth || col.Height != cfg.Collision.ColliderHeight {
		s.world.Collider[id] = ecs.Collider{Width: cfg.Collision.ColliderWidth, Height: cfg.Collision.ColliderHeight}
	}
	return nil
}

// Snapshot returns the state after the last step
func (s *Session) Snapshot() Snapshot {
	body := s.world.Player()
	return Snapshot{
		Frame:          s.frame,
		Position:       body.Position(),
		Velocity:       body.Velocity(),
		State:          s.machine.Current(),
		Collisions:     s.controller.Collisions(),
		Grounded:       s.controller.IsGrounded(),
		Dashing:        s.controller.IsDashing(),
		RemainingJumps: s.controller.RemainingJumps(),
	}
}

// Config returns the active physics config
func (s *Session) Config() *config.PhysicsConfig { return s.config }

// StageConfig returns the stage config the session was built from
func (s *Session) StageConfig() *config.StageConfig { return s.stageCfg }

// Backend returns the collision backend name
func (s *Session) Backend() string { return s.backend }

// Stage returns the live stage
func (s *Session) Stage() *entity.Stage { return s.stage }

// World returns the integrator world
func (s *Session) World() *ecs.World { return s.world }

// Controller returns the character controller
func (s *Session) Controller() *system.Controller { return s.controller }

// Machine returns the movement state machine
func (s *Session) Machine() *state.Machine { return s.machine }

// Frame returns the number of steps taken since the last reset
func (s *Session) Frame() int { return s.frame }

// LastResult returns the controller result of the last step
func (s *Session) LastResult() system.StepResult { return s.last }
