package system

import (
	"github.com/younwookim/platformkit/internal/domain/entity"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// updateGrounded refreshes grounded state and coyote time from the
// contacts of this step. It returns true on the step the body lands.
func (c *Controller) updateGrounded(dt float64) bool {
	p := c.player
	below := p.Collisions.Below

	if below {
		p.Grounded = true
		p.CoyoteTimeCounter = c.config.Jump.CoyoteTime
		p.Jumping = false
	} else {
		p.CoyoteTimeCounter = entity.Countdown(p.CoyoteTimeCounter, dt)
		p.Grounded = p.CoyoteTimeCounter > 0
	}

	landed := below && !p.WasBelow
	p.WasBelow = below

	if landed && c.landingReset == config.LandingResetAuto {
		c.resetJumpsOnLanding()
	}
	return landed
}

// ResetJumpCounterOnLanding refills the jump charges. State machines call
// it when they enter a grounded state and landing reset is manual.
func (c *Controller) ResetJumpCounterOnLanding() {
	c.resetJumpsOnLanding()
}

// resetJumpsOnLanding refills charges unless the body is passing through
// a one-way platform it just dropped onto
func (c *Controller) resetJumpsOnLanding() {
	p := c.player
	if p.Collisions.OnOneWay && p.IgnoringPlatforms {
		return
	}
	p.ResetJumps()
}
