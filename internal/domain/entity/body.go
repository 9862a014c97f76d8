package entity

// Kinematic is the velocity sink a controller drives.
// The integrator owns position and velocity; the controller reads the
// current bounds and velocity and may overwrite the velocity each step.
type Kinematic interface {
	// Bounds returns the collider box in world space.
	// ok is false when no box is configured.
	Bounds() (r Rect, ok bool)
	Velocity() Vec2
	SetVelocity(v Vec2)
}

// Body represents the physical body of an entity.
// Position is the center of the collider box.
type Body struct {
	Position Vec2
	Vel      Vec2
	Width    float64
	Height   float64
}

// NewBody creates a body centered on (x, y)
func NewBody(x, y, width, height float64) *Body {
	return &Body{
		Position: Vec2{x, y},
		Width:    width,
		Height:   height,
	}
}

// Bounds returns the collider box. A body without a positive size has no box.
func (b *Body) Bounds() (Rect, bool) {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return Rect{}, false
	}
	return RectFromCenter(b.Position, b.Width, b.Height), true
}

// Velocity returns the current velocity
func (b *Body) Velocity() Vec2 {
	return b.Vel
}

// SetVelocity replaces the current velocity
func (b *Body) SetVelocity(v Vec2) {
	b.Vel = v
}

// Bottom returns the y coordinate of the feet
func (b *Body) Bottom() float64 {
	return b.Position.Y - b.Height/2
}

// SetBottom places the body so its feet rest at y
func (b *Body) SetBottom(y float64) {
	b.Position.Y = y + b.Height/2
}

// ApplyVelocity returns the displacement for one step of dt seconds
func (b *Body) ApplyVelocity(dt float64) Vec2 {
	return b.Vel.Scale(dt)
}
