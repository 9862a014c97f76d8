package ecs

import (
	"math"

	"github.com/younwookim/platformkit/internal/domain/entity"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// sweepEpsilon tolerates rounding when deciding which side of a surface
// a body is on.
const sweepEpsilon = 1e-9

// PhysicsConfig holds the integrator settings in world units and seconds
type PhysicsConfig struct {
	Gravity       float64 // units/s², negative pulls down
	MaxFallSpeed  float64 // magnitude, 0 disables the clamp
	ContactOffset float64
}

// NewPhysicsConfig converts the loaded physics settings
func NewPhysicsConfig(s config.PhysicsSettings) PhysicsConfig {
	return PhysicsConfig{
		Gravity:       s.Gravity,
		MaxFallSpeed:  s.MaxFallSpeed,
		ContactOffset: s.ContactOffset,
	}
}

// Gap is how far bodies stop short of a surface. Two contact offsets
// keep raycasts that start one offset outside the collider clear of it.
func (c PhysicsConfig) Gap() float64 {
	return 2 * c.ContactOffset
}

// Update advances every body by dt: gravity, then an axis-separated
// sweep against the stage, then the platform countdowns.
func Update(w *World, cfg PhysicsConfig, dt float64) {
	if dt <= 0 {
		return
	}
	ApplyGravity(w, cfg, dt)
	MoveBodies(w, cfg, dt)
	if w.stage != nil {
		w.stage.Tick(dt)
	}
}

// ApplyGravity accelerates every body with a collider and clamps the fall speed
func ApplyGravity(w *World, cfg PhysicsConfig, dt float64) {
	for id, vel := range w.Velocity {
		if _, ok := w.Collider[id]; !ok {
			continue
		}

		vel.Y += cfg.Gravity * dt

		// Clamp fall speed
		if cfg.MaxFallSpeed > 0 && vel.Y < -cfg.MaxFallSpeed {
			vel.Y = -cfg.MaxFallSpeed
		}
		w.Velocity[id] = vel
	}
}

// MoveBodies moves each body by its velocity, X first then Y. A body
// that runs into a surface stops Gap() short of it and loses the
// velocity component along that axis.
func MoveBodies(w *World, cfg PhysicsConfig, dt float64) {
	gap := cfg.Gap()

	for id, col := range w.Collider {
		pos, ok := w.Position[id]
		if !ok {
			continue
		}
		vel := w.Velocity[id]
		var contacts Contacts

		// Move X
		box := col.Rect(pos)
		dx, hitX := w.sweepX(box, vel.X*dt, gap)
		if hitX {
			if vel.X > 0 {
				contacts.Right = true
			} else {
				contacts.Left = true
			}
			vel.X = 0
		}
		pos.X += dx

		// Move Y
		box = col.Rect(pos)
		dy, hitY, platform := w.sweepY(box, vel.Y*dt, gap)
		if hitY {
			if vel.Y > 0 {
				contacts.Above = true
			} else {
				contacts.Below = true
				contacts.Platform = platform
			}
			vel.Y = 0
		}
		pos.Y += dy

		w.Position[id] = pos
		w.Velocity[id] = vel
		w.Contacts[id] = contacts
	}
}

// sweepX clamps dx against solids that share the box's vertical span
func (w *World) sweepX(box entity.Rect, dx, gap float64) (float64, bool) {
	if dx == 0 {
		return 0, false
	}

	hit := false
	for _, r := range w.solids {
		if r.Min.Y >= box.Max.Y || r.Max.Y <= box.Min.Y {
			continue
		}
		switch {
		case dx > 0 && r.Min.X >= box.Max.X-sweepEpsilon:
			if limit := math.Max(r.Min.X-gap-box.Max.X, 0); limit <= dx {
				dx, hit = limit, true
			}
		case dx < 0 && r.Max.X <= box.Min.X+sweepEpsilon:
			if limit := math.Min(r.Max.X+gap-box.Min.X, 0); limit >= dx {
				dx, hit = limit, true
			}
		}
	}
	return dx, hit
}

// sweepY clamps dy against solids, and against enabled one-way platforms
// when falling onto them from above. platform is set when a platform
// is what stopped the body.
func (w *World) sweepY(box entity.Rect, dy, gap float64) (float64, bool, *entity.Platform) {
	if dy == 0 {
		return 0, false, nil
	}

	hit := false
	var platform *entity.Platform

	overlapsX := func(r entity.Rect) bool {
		return r.Min.X < box.Max.X && r.Max.X > box.Min.X
	}
	landOn := func(r entity.Rect) bool {
		if !overlapsX(r) || r.Max.Y > box.Min.Y+sweepEpsilon {
			return false
		}
		if limit := math.Min(r.Max.Y+gap-box.Min.Y, 0); limit >= dy {
			dy, hit = limit, true
			return true
		}
		return false
	}

	if dy > 0 {
		for _, r := range w.solids {
			if !overlapsX(r) || r.Min.Y < box.Max.Y-sweepEpsilon {
				continue
			}
			if limit := math.Max(r.Min.Y-gap-box.Max.Y, 0); limit <= dy {
				dy, hit = limit, true
			}
		}
		return dy, hit, nil
	}

	for _, r := range w.solids {
		if landOn(r) {
			platform = nil
		}
	}
	if w.stage != nil {
		for _, p := range w.stage.Platforms {
			if p.Enabled() && landOn(p.Rect) {
				platform = p
			}
		}
	}
	return dy, hit, platform
}
