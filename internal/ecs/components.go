package ecs

import "github.com/younwookim/platformkit/internal/domain/entity"

// Position is the center of an entity's collider in world units (y-up)
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector
func (p Position) Vec() entity.Vec2 { return entity.Vec2{X: p.X, Y: p.Y} }

// Velocity is in world units per second
type Velocity struct {
	X, Y float64
}

// Vec returns the velocity as a vector
func (v Velocity) Vec() entity.Vec2 { return entity.Vec2{X: v.X, Y: v.Y} }

// Collider is an axis-aligned box centered on Position
type Collider struct {
	Width, Height float64
}

// Rect returns the collider box around pos
func (c Collider) Rect(pos Position) entity.Rect {
	return entity.RectFromCenter(pos.Vec(), c.Width, c.Height)
}

// Contacts are the surfaces the integrator stopped a body against
// during the last update.
type Contacts struct {
	Below    bool
	Above    bool
	Left     bool
	Right    bool
	Platform *entity.Platform // one-way platform the body landed on
}

// Grounded reports a floor or platform contact
func (c Contacts) Grounded() bool { return c.Below }
