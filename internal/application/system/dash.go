package system

import (
	"github.com/younwookim/platformkit/internal/domain/entity"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// minDashInput is the direction magnitude below which a dash goes right
const minDashInput = 0.01

// RequestDash starts a dash towards dir. It is ignored while dashing,
// during the cooldown, or in the air when air dash is off.
func (c *Controller) RequestDash(dir entity.Vec2) bool {
	p := c.player
	if !p.CanDash() {
		return false
	}
	if !p.Grounded && !p.AirDashEnabled {
		return false
	}

	if dir.Len() < minDashInput {
		dir = entity.Right
	} else {
		dir = dir.Normalize()
	}

	dc := c.config.Dash
	p.Dashing = true
	p.DashDirection = dir
	p.DashDurationCounter = dc.Duration
	p.DashCooldownCounter = dc.Cooldown
	p.WasGroundedBeforeDash = p.Grounded

	c.applyDashVelocity()
	return true
}

// SetAirDashEnabled allows or forbids starting a dash in the air
func (c *Controller) SetAirDashEnabled(enabled bool) {
	c.player.AirDashEnabled = enabled
}

// applyDashVelocity writes the dash speed on X. Y is zeroed or kept
// depending on the configured vertical policy.
func (c *Controller) applyDashVelocity() {
	dc := c.config.Dash
	speed := 0.0
	if dc.Duration > 0 {
		speed = dc.Distance / dc.Duration
	}

	v := c.body.Velocity()
	v.X = c.player.DashDirection.X * speed
	if dc.VerticalPolicy != config.DashVerticalPreserve {
		v.Y = 0
	}
	c.body.SetVelocity(v)
}

// updateDash holds the dash velocity for its whole duration.
// It returns true on the step the dash ends.
func (c *Controller) updateDash(dt float64) bool {
	p := c.player
	if !p.Dashing {
		return false
	}

	c.applyDashVelocity()
	p.DashDurationCounter = entity.Countdown(p.DashDurationCounter, dt)
	if p.DashDurationCounter > 0 {
		return false
	}

	p.Dashing = false
	p.DashDirection = entity.Vec2{}
	return true
}
