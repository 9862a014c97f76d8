package system

import (
	"math"

	"github.com/younwookim/platformkit/internal/domain/entity"
)

// RequestDownJump drops the body through the one-way platforms under it.
// Only allowed while grounded. Returns the number of platforms disabled,
// or -1 when the request was rejected.
func (c *Controller) RequestDownJump() int {
	p := c.player
	if !p.Grounded {
		return -1
	}
	bounds, ok := c.bounds()
	if !ok {
		return -1
	}

	dj := c.config.DownJump
	v := c.body.Velocity()
	v.Y = math.Min(v.Y, dj.Force)
	c.body.SetVelocity(v)

	p.IgnoringPlatforms = true
	p.PlatformIgnoreTimer = dj.PlatformIgnoreTime

	origin := entity.Vec2{X: bounds.Center().X, Y: bounds.Min.Y - dj.ScanOffset}
	disabled := 0
	for _, hit := range c.collision.castAll(origin, entity.Down, dj.ScanDistance) {
		if !hit.OneWay || hit.Platform == nil {
			continue
		}
		hit.Platform.DisableCollisionTemporarily(dj.PlatformIgnoreTime)
		disabled++
	}
	return disabled
}

// updatePlatformIgnore counts down the pass-through window
func (c *Controller) updatePlatformIgnore(dt float64) {
	p := c.player
	if !p.IgnoringPlatforms {
		return
	}
	p.PlatformIgnoreTimer = entity.Countdown(p.PlatformIgnoreTimer, dt)
	if p.PlatformIgnoreTimer <= 0 {
		p.IgnoringPlatforms = false
	}
}
