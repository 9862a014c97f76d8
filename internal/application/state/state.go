// Package state classifies what the controlled body is doing each step
// and drives the landing hooks that depend on it.
package state

// GameState represents the current state of the demo scene
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateReplayDone
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}

// MovementState is the high-level movement of the body
type MovementState int

const (
	Idle MovementState = iota
	Running
	Jumping
	Falling
	Dashing
)

// String returns the string representation of the movement state
func (s MovementState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Jumping:
		return "Jumping"
	case Falling:
		return "Falling"
	case Dashing:
		return "Dashing"
	default:
		return "Unknown"
	}
}

// Grounded reports the states that stand on a surface
func (s MovementState) Grounded() bool {
	return s == Idle || s == Running
}

// Airborne reports the states in the air
func (s MovementState) Airborne() bool {
	return s == Jumping || s == Falling
}
