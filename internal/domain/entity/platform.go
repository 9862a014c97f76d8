package entity

// Platform is a one-way platform: it blocks from above only and can be
// switched off for a while so a body can drop through it.
type Platform struct {
	ID   EntityID
	Rect Rect

	disabledFor float64
}

// NewPlatform creates an enabled platform
func NewPlatform(id EntityID, rect Rect) *Platform {
	return &Platform{ID: id, Rect: rect}
}

// DisableCollisionTemporarily turns collision off for duration seconds.
// A later call replaces the remaining time.
func (p *Platform) DisableCollisionTemporarily(duration float64) {
	if duration < 0 {
		duration = 0
	}
	p.disabledFor = duration
}

// Enabled reports whether the platform currently collides
func (p *Platform) Enabled() bool {
	return p.disabledFor <= 0
}

// DisabledFor returns the remaining disable time
func (p *Platform) DisabledFor() float64 {
	return p.disabledFor
}

// Tick advances the disable countdown by dt
func (p *Platform) Tick(dt float64) {
	if p.disabledFor > 0 {
		p.disabledFor = Countdown(p.disabledFor, dt)
	}
}
