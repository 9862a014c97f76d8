package entity

// Player holds the movement state a controller keeps between steps.
// Timers are in seconds and never go below zero.
type Player struct {
	Collisions CollisionInfo
	Origins    RaycastOrigins

	// Ground
	Grounded          bool
	WasBelow          bool
	CoyoteTimeCounter float64

	// Jump
	Jumping           bool
	JumpCounter       int
	ExtraJumps        int
	JumpBufferCounter float64

	// Dash
	Dashing               bool
	DashDirection         Vec2
	DashDurationCounter   float64
	DashCooldownCounter   float64
	WasGroundedBeforeDash bool
	AirDashEnabled        bool

	// Down jump
	IgnoringPlatforms   bool
	PlatformIgnoreTimer float64
}

// NewPlayer creates movement state with a full set of jump charges
func NewPlayer(extraJumps int, airDash bool) *Player {
	if extraJumps < 0 {
		extraJumps = 0
	}
	p := &Player{
		ExtraJumps:     extraJumps,
		JumpCounter:    1 + extraJumps,
		AirDashEnabled: airDash,
	}
	p.Collisions.Reset()
	return p
}

// CanDash returns true if no dash is running and the cooldown has elapsed
func (p *Player) CanDash() bool {
	return p.DashCooldownCounter <= 0 && !p.Dashing
}

// ResetJumps refills the jump charges
func (p *Player) ResetJumps() {
	p.JumpCounter = 1 + p.ExtraJumps
}

// Countdown decrements a timer by dt and clamps it at zero
func Countdown(timer, dt float64) float64 {
	timer -= dt
	if timer < 0 {
		return 0
	}
	return timer
}
