package system

import (
	"log"

	"github.com/younwookim/platformkit/internal/domain/entity"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// StepResult summarizes one fixed step of a controller
type StepResult struct {
	Skipped      bool // no bounds, nothing happened
	Vertical     VerticalResult
	Horizontal   HorizontalResult
	Collisions   entity.CollisionInfo
	Grounded     bool
	Landed       bool
	JumpExecuted bool
	DashEnded    bool
	Velocity     entity.Vec2
}

// Controller turns movement intents into a body velocity while tracking
// contacts, coyote time, jump charges, dash and platform pass-through.
//
// Per step: collisions are resolved from the velocity of the previous
// step, then grounded state is updated, then dash and jump logic may
// overwrite the velocity that the integrator applies afterwards.
type Controller struct {
	config    *config.PhysicsConfig
	body      entity.Kinematic
	player    *entity.Player
	collision *CollisionSystem

	landingReset   string
	warnedNoBounds bool
}

// ControllerOption configures a Controller
type ControllerOption func(*controllerOptions)

type controllerOptions struct {
	self   Self
	layers *entity.LayerRegistry
}

// WithSelf names the body's own collider so it is never reported as a hit
func WithSelf(surface entity.SurfaceID, owner entity.OwnerID) ControllerOption {
	return func(o *controllerOptions) {
		o.self = Self{Surface: surface, Owner: owner}
	}
}

// WithLayers resolves ground layer names against reg instead of the built-in layers
func WithLayers(reg *entity.LayerRegistry) ControllerOption {
	return func(o *controllerOptions) {
		o.layers = reg
	}
}

// NewController creates a controller driving body
func NewController(cfg *config.PhysicsConfig, body entity.Kinematic, surface entity.QuerySurface, opts ...ControllerOption) *Controller {
	o := controllerOptions{layers: entity.NewLayerRegistry()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller{
		config:       cfg,
		body:         body,
		player:       entity.NewPlayer(cfg.Jump.ExtraJumps, cfg.Dash.AirDashEnabled),
		collision:    NewCollisionSystem(cfg, surface, groundMask(o.layers, cfg.Collision.GroundLayers), o.self),
		landingReset: cfg.Jump.LandingReset,
	}
}

// groundMask resolves layer names. No names means every layer; unknown
// names are logged and contribute nothing.
func groundMask(reg *entity.LayerRegistry, names []string) entity.LayerMask {
	if len(names) == 0 {
		return entity.AllLayers
	}
	mask, unknown := reg.Mask(names...)
	for _, n := range unknown {
		log.Printf("controller: unknown ground layer %q, ground detection ignores it", n)
	}
	return mask
}

// SetConfig applies new tuning. Current timers and charges are kept.
func (c *Controller) SetConfig(cfg *config.PhysicsConfig) {
	c.config = cfg
	c.collision.config = cfg
	c.landingReset = cfg.Jump.LandingReset
	c.SetExtraJumps(cfg.Jump.ExtraJumps)
	c.SetAirDashEnabled(cfg.Dash.AirDashEnabled)
}

// SetSurface swaps the collision query surface
func (c *Controller) SetSurface(surface entity.QuerySurface) {
	c.collision.SetSurface(surface)
}

// Player exposes the movement state for debug views
func (c *Controller) Player() *entity.Player {
	return c.player
}

// Body returns the velocity sink this controller drives
func (c *Controller) Body() entity.Kinematic {
	return c.body
}

func (c *Controller) bounds() (entity.Rect, bool) {
	r, ok := c.body.Bounds()
	if !ok && !c.warnedNoBounds {
		log.Printf("controller: body has no collider bounds, movement is paused")
		c.warnedNoBounds = true
	}
	return r, ok
}

// Move sets horizontal velocity from an axis value in [-1, 1].
// It does nothing while dashing.
func (c *Controller) Move(axis float64) {
	if c.player.Dashing {
		return
	}
	if axis > 1 {
		axis = 1
	} else if axis < -1 {
		axis = -1
	}
	v := c.body.Velocity()
	v.X = axis * c.config.Movement.MoveSpeed
	c.body.SetVelocity(v)
}

// Step advances the controller by dt seconds
func (c *Controller) Step(dt float64) StepResult {
	bounds, ok := c.bounds()
	if !ok {
		return StepResult{Skipped: true, Collisions: c.player.Collisions, Grounded: c.player.Grounded}
	}

	p := c.player
	cc := c.config.Collision
	p.Origins = ComputeRaycastOrigins(bounds, cc.SkinWidth, clampRayCount(cc.HorizontalRayCount), clampRayCount(cc.VerticalRayCount))

	vel := c.body.Velocity()
	var res StepResult
	res.Vertical = c.collision.ResolveVertical(p, vel, dt)
	res.Horizontal = c.collision.ResolveHorizontal(p, vel, dt)

	res.Landed = c.updateGrounded(dt)
	res.DashEnded = c.updateDash(dt)
	res.JumpExecuted = c.ExecuteJumpIfPossible()
	c.updateTimers(dt)

	res.Collisions = p.Collisions
	res.Grounded = p.Grounded
	res.Velocity = c.body.Velocity()
	return res
}

// updateTimers decays the counters that expire on their own
func (c *Controller) updateTimers(dt float64) {
	p := c.player
	p.JumpBufferCounter = entity.Countdown(p.JumpBufferCounter, dt)
	p.DashCooldownCounter = entity.Countdown(p.DashCooldownCounter, dt)
	c.updatePlatformIgnore(dt)
}

// IsGrounded returns true while on the ground or within coyote time
func (c *Controller) IsGrounded() bool { return c.player.Grounded }

// IsJumping returns true from a jump until the next ground contact
func (c *Controller) IsJumping() bool { return c.player.Jumping }

// IsDashing returns true during a dash
func (c *Controller) IsDashing() bool { return c.player.Dashing }

// RemainingJumps returns the jump charges left
func (c *Controller) RemainingJumps() int { return c.player.JumpCounter }

// ExtraJumps returns the configured airborne charges
func (c *Controller) ExtraJumps() int { return c.player.ExtraJumps }

// CanDash returns true if a dash could start now, ignoring the air rule
func (c *Controller) CanDash() bool { return c.player.CanDash() }

// DashCooldownRemaining returns the seconds until the next dash is allowed
func (c *Controller) DashCooldownRemaining() float64 { return c.player.DashCooldownCounter }

// IsAirDashEnabled reports whether dashing in the air is allowed
func (c *Controller) IsAirDashEnabled() bool { return c.player.AirDashEnabled }

// IsOnOneWayPlatform returns true when the ground contact is a one-way surface
func (c *Controller) IsOnOneWayPlatform() bool { return c.player.Collisions.OnOneWay }

// IsIgnoringPlatforms returns true for a while after a down jump
func (c *Controller) IsIgnoringPlatforms() bool { return c.player.IgnoringPlatforms }

// Collisions returns the contact flags of the last step
func (c *Controller) Collisions() entity.CollisionInfo { return c.player.Collisions }

func (c *Controller) IsLeftCollision() bool  { return c.player.Collisions.Left }
func (c *Controller) IsRightCollision() bool { return c.player.Collisions.Right }
func (c *Controller) IsCeiling() bool        { return c.player.Collisions.Above }
func (c *Controller) IsCollideX() bool       { return c.player.Collisions.CollideX() }
func (c *Controller) IsCollideY() bool       { return c.player.Collisions.CollideY() }

// FaceDir returns +1 or -1 for the last horizontal travel direction
func (c *Controller) FaceDir() int { return c.player.Collisions.FaceDir }
