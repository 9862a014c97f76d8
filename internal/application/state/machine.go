package state

import (
	"math"

	"github.com/younwookim/platformkit/internal/domain/entity"
)

// runThreshold is the horizontal speed below which a grounded body is idle
const runThreshold = 0.01

// Controller is the part of a character controller the machine drives
type Controller interface {
	IsDashing() bool
	Collisions() entity.CollisionInfo
	Body() entity.Kinematic
	ResetJumpCounterOnLanding()
	ExecuteJumpIfPossible() bool
}

// Machine tracks the movement state after each controller step.
// With manual landing reset it refills jump charges when the body's
// ground contact comes back, then retries a buffered jump.
type Machine struct {
	current  MovementState
	previous MovementState
	manual   bool
	wasBelow bool

	// OnChange is called on every transition
	OnChange func(from, to MovementState)
}

// NewMachine creates a machine in Idle, standing on the ground.
// manualLanding makes the machine responsible for jump refills on landing.
func NewMachine(manualLanding bool) *Machine {
	return &Machine{manual: manualLanding, wasBelow: true}
}

// SetManualLanding switches the landing reset mode
func (m *Machine) SetManualLanding(manual bool) {
	m.manual = manual
}

// Current returns the state after the last update
func (m *Machine) Current() MovementState { return m.current }

// Previous returns the state before the last transition
func (m *Machine) Previous() MovementState { return m.previous }

// Update classifies c and runs the transition hooks. It returns true when
// the state changed.
//
// Landing is read from contacts, not from the previous state, so a dash
// that touches down still refills the charges.
func (m *Machine) Update(c Controller) bool {
	below := c.Collisions().Below
	landed := below && !m.wasBelow
	m.wasBelow = below

	next := Classify(c)
	if m.manual && landed {
		c.ResetJumpCounterOnLanding()
		if next.Grounded() && c.ExecuteJumpIfPossible() {
			next = Jumping
		}
	}

	if next == m.current {
		return false
	}

	from := m.current
	m.previous, m.current = from, next
	if m.OnChange != nil {
		m.OnChange(from, next)
	}
	return true
}

// Classify derives the movement state from contacts and velocity
func Classify(c Controller) MovementState {
	if c.IsDashing() {
		return Dashing
	}

	v := c.Body().Velocity()
	if c.Collisions().Below && v.Y <= 0 {
		if math.Abs(v.X) > runThreshold {
			return Running
		}
		return Idle
	}
	if v.Y > 0 {
		return Jumping
	}
	return Falling
}
