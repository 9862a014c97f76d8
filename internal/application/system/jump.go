package system

// RequestJump buffers a jump. It runs on the next step that allows it,
// as long as the buffer window has not expired.
func (c *Controller) RequestJump() {
	c.player.JumpBufferCounter = c.config.Jump.BufferTime
}

// ReleaseJump cuts a rising jump short for variable jump height
func (c *Controller) ReleaseJump() {
	v := c.body.Velocity()
	if v.Y > 0 {
		v.Y *= c.config.Jump.CutMultiplier
		c.body.SetVelocity(v)
	}
}

// ExecuteJumpIfPossible consumes a buffered jump when a charge is left.
// A ground jump (coyote time included) leaves the airborne allotment;
// an air jump spends one charge.
func (c *Controller) ExecuteJumpIfPossible() bool {
	p := c.player
	if p.JumpBufferCounter <= 0 || p.JumpCounter <= 0 {
		return false
	}

	switch {
	case p.Grounded:
		c.executeJump()
		p.JumpCounter = p.ExtraJumps
	case p.ExtraJumps > 0:
		c.executeJump()
		p.JumpCounter--
	default:
		return false
	}
	return true
}

func (c *Controller) executeJump() {
	v := c.body.Velocity()
	v.Y = c.config.Jump.Force
	c.body.SetVelocity(v)

	p := c.player
	p.CoyoteTimeCounter = 0
	p.JumpBufferCounter = 0
	p.Jumping = true
	p.Grounded = false
}

// SetExtraJumps changes the airborne allotment. Negative counts are
// treated as zero; charges refill right away only while grounded,
// airborne charges are kept as they are.
func (c *Controller) SetExtraJumps(n int) {
	if n < 0 {
		n = 0
	}
	p := c.player
	p.ExtraJumps = n
	if p.Grounded {
		p.ResetJumps()
	}
}
