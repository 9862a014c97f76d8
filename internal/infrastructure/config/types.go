package config

import (
	"errors"
	"fmt"
)

// Landing reset modes
const (
	// LandingResetAuto refills jump charges whenever the body lands
	LandingResetAuto = "auto"
	// LandingResetManual leaves the refill to a state machine
	LandingResetManual = "manual"
)

// Dash vertical policies
const (
	// DashVerticalPin zeroes vertical velocity for the whole dash
	DashVerticalPin = "pin"
	// DashVerticalPreserve leaves vertical velocity untouched
	DashVerticalPreserve = "preserve"
)

// PhysicsConfig is the root config for physics.json / physics.yaml
type PhysicsConfig struct {
	Display   DisplayConfig   `json:"display" yaml:"display"`
	Physics   PhysicsSettings `json:"physics" yaml:"physics"`
	Movement  MovementConfig  `json:"movement" yaml:"movement"`
	Collision CollisionConfig `json:"collision" yaml:"collision"`
	Jump      JumpConfig      `json:"jump" yaml:"jump"`
	Dash      DashConfig      `json:"dash" yaml:"dash"`
	DownJump  DownJumpConfig  `json:"downJump" yaml:"downJump"`
	Debug     DebugConfig     `json:"debug" yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth   int     `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight  int     `json:"screenHeight" yaml:"screenHeight"`
	Scale         int     `json:"scale" yaml:"scale"`
	Framerate     int     `json:"framerate" yaml:"framerate"`
	PixelsPerUnit float64 `json:"pixelsPerUnit" yaml:"pixelsPerUnit"`
}

type PhysicsSettings struct {
	Gravity       float64 `json:"gravity" yaml:"gravity"`           // units/s², negative pulls down
	MaxFallSpeed  float64 `json:"maxFallSpeed" yaml:"maxFallSpeed"` // magnitude
	FixedTimestep float64 `json:"fixedTimestep" yaml:"fixedTimestep"`
	ContactOffset float64 `json:"contactOffset" yaml:"contactOffset"`
}

type MovementConfig struct {
	MoveSpeed float64 `json:"moveSpeed" yaml:"moveSpeed"`
}

type CollisionConfig struct {
	ColliderWidth       float64  `json:"colliderWidth" yaml:"colliderWidth"`
	ColliderHeight      float64  `json:"colliderHeight" yaml:"colliderHeight"`
	SkinWidth           float64  `json:"skinWidth" yaml:"skinWidth"`
	HorizontalRayCount  int      `json:"horizontalRayCount" yaml:"horizontalRayCount"`
	VerticalRayCount    int      `json:"verticalRayCount" yaml:"verticalRayCount"`
	GroundCheckDistance float64  `json:"groundCheckDistance" yaml:"groundCheckDistance"`
	GroundLayers        []string `json:"groundLayers" yaml:"groundLayers"`
}

type JumpConfig struct {
	Force         float64 `json:"force" yaml:"force"`
	BufferTime    float64 `json:"bufferTime" yaml:"bufferTime"`
	CutMultiplier float64 `json:"cutMultiplier" yaml:"cutMultiplier"`
	CoyoteTime    float64 `json:"coyoteTime" yaml:"coyoteTime"`
	ExtraJumps    int     `json:"extraJumps" yaml:"extraJumps"`
	LandingReset  string  `json:"landingReset" yaml:"landingReset"`
}

type DashConfig struct {
	Distance       float64 `json:"distance" yaml:"distance"`
	Duration       float64 `json:"duration" yaml:"duration"`
	Cooldown       float64 `json:"cooldown" yaml:"cooldown"`
	AirDashEnabled bool    `json:"airDashEnabled" yaml:"airDashEnabled"`
	VerticalPolicy string  `json:"verticalPolicy" yaml:"verticalPolicy"`
}

type DownJumpConfig struct {
	Force              float64 `json:"force" yaml:"force"` // negative
	PlatformIgnoreTime float64 `json:"platformIgnoreTime" yaml:"platformIgnoreTime"`
	ScanDistance       float64 `json:"scanDistance" yaml:"scanDistance"`
	ScanOffset         float64 `json:"scanOffset" yaml:"scanOffset"`
}

type DebugConfig struct {
	DrawRays bool `json:"drawRays" yaml:"drawRays"`
}

// DefaultPhysicsConfig returns the stock tuning
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:   320,
			ScreenHeight:  240,
			Scale:         3,
			Framerate:     60,
			PixelsPerUnit: 16,
		},
		Physics: PhysicsSettings{
			Gravity:       -9.81 * 3,
			MaxFallSpeed:  30,
			FixedTimestep: 1.0 / 60.0,
			ContactOffset: 0.01,
		},
		Movement: MovementConfig{
			MoveSpeed: 5,
		},
		Collision: CollisionConfig{
			ColliderWidth:       0.5,
			ColliderHeight:      1,
			SkinWidth:           0.03,
			HorizontalRayCount:  4,
			VerticalRayCount:    4,
			GroundCheckDistance: 0.1,
			GroundLayers:        []string{"ground", "platform"},
		},
		Jump: JumpConfig{
			Force:         15,
			BufferTime:    0.2,
			CutMultiplier: 0.5,
			CoyoteTime:    0.2,
			ExtraJumps:    0,
			LandingReset:  LandingResetAuto,
		},
		Dash: DashConfig{
			Distance:       2,
			Duration:       0.2,
			Cooldown:       0.5,
			AirDashEnabled: false,
			VerticalPolicy: DashVerticalPin,
		},
		DownJump: DownJumpConfig{
			Force:              -20,
			PlatformIgnoreTime: 0.3,
			ScanDistance:       2,
			ScanOffset:         0.05,
		},
	}
}

// Validate reports every impossible value at once
func (c *PhysicsConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.FixedTimestep > 0, "physics.fixedTimestep must be positive, got %v", c.Physics.FixedTimestep)
	check(c.Physics.ContactOffset >= 0, "physics.contactOffset must not be negative, got %v", c.Physics.ContactOffset)
	check(c.Physics.MaxFallSpeed >= 0, "physics.maxFallSpeed must not be negative, got %v", c.Physics.MaxFallSpeed)
	check(c.Movement.MoveSpeed >= 0, "movement.moveSpeed must not be negative, got %v", c.Movement.MoveSpeed)

	check(c.Collision.ColliderWidth > 0, "collision.colliderWidth must be positive, got %v", c.Collision.ColliderWidth)
	check(c.Collision.ColliderHeight > 0, "collision.colliderHeight must be positive, got %v", c.Collision.ColliderHeight)
	check(c.Collision.SkinWidth >= 0, "collision.skinWidth must not be negative, got %v", c.Collision.SkinWidth)
	check(2*c.Collision.SkinWidth < c.Collision.ColliderWidth && 2*c.Collision.SkinWidth < c.Collision.ColliderHeight,
		"collision.skinWidth %v leaves no inner box", c.Collision.SkinWidth)
	check(c.Collision.HorizontalRayCount >= 1, "collision.horizontalRayCount must be at least 1, got %d", c.Collision.HorizontalRayCount)
	check(c.Collision.VerticalRayCount >= 1, "collision.verticalRayCount must be at least 1, got %d", c.Collision.VerticalRayCount)
	check(c.Collision.GroundCheckDistance >= 0, "collision.groundCheckDistance must not be negative, got %v", c.Collision.GroundCheckDistance)

	check(c.Jump.BufferTime >= 0, "jump.bufferTime must not be negative, got %v", c.Jump.BufferTime)
	check(c.Jump.CoyoteTime >= 0, "jump.coyoteTime must not be negative, got %v", c.Jump.CoyoteTime)
	check(c.Jump.CutMultiplier >= 0 && c.Jump.CutMultiplier <= 1, "jump.cutMultiplier must be within [0, 1], got %v", c.Jump.CutMultiplier)
	check(c.Jump.ExtraJumps >= 0, "jump.extraJumps must not be negative, got %d", c.Jump.ExtraJumps)
	check(c.Jump.LandingReset == LandingResetAuto || c.Jump.LandingReset == LandingResetManual,
		"jump.landingReset must be %q or %q, got %q", LandingResetAuto, LandingResetManual, c.Jump.LandingReset)

	check(c.Dash.Duration > 0, "dash.duration must be positive, got %v", c.Dash.Duration)
	check(c.Dash.Distance >= 0, "dash.distance must not be negative, got %v", c.Dash.Distance)
	check(c.Dash.Cooldown >= 0, "dash.cooldown must not be negative, got %v", c.Dash.Cooldown)
	check(c.Dash.VerticalPolicy == DashVerticalPin || c.Dash.VerticalPolicy == DashVerticalPreserve,
		"dash.verticalPolicy must be %q or %q, got %q", DashVerticalPin, DashVerticalPreserve, c.Dash.VerticalPolicy)

	check(c.DownJump.Force <= 0, "downJump.force must not be positive, got %v", c.DownJump.Force)
	check(c.DownJump.PlatformIgnoreTime >= 0, "downJump.platformIgnoreTime must not be negative, got %v", c.DownJump.PlatformIgnoreTime)
	check(c.DownJump.ScanDistance > 0, "downJump.scanDistance must be positive, got %v", c.DownJump.ScanDistance)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid physics config: %w", errors.Join(errs...))
}
