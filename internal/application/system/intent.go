package system

import "github.com/younwookim/platformkit/internal/domain/entity"

// Intent represents an action that an entity wants to perform
type Intent interface {
	isIntent()
}

// MoveIntent represents a horizontal movement intention
type MoveIntent struct {
	Axis float64 // -1 to 1
}

func (MoveIntent) isIntent() {}

// JumpIntent represents a jump press
type JumpIntent struct{}

func (JumpIntent) isIntent() {}

// ReleaseJumpIntent represents a jump release
type ReleaseJumpIntent struct{}

func (ReleaseJumpIntent) isIntent() {}

// DashIntent represents a dash intention
type DashIntent struct {
	Direction entity.Vec2
}

func (DashIntent) isIntent() {}

// DownJumpIntent represents dropping through a one-way platform
type DownJumpIntent struct{}

func (DownJumpIntent) isIntent() {}

// IntentTarget is anything that accepts movement requests
type IntentTarget interface {
	Move(axis float64)
	RequestJump()
	ReleaseJump()
	RequestDash(dir entity.Vec2) bool
	RequestDownJump() int
}

// ApplyIntents forwards intents to target in order
func ApplyIntents(target IntentTarget, intents []Intent) {
	for _, in := range intents {
		switch v := in.(type) {
		case MoveIntent:
			target.Move(v.Axis)
		case JumpIntent:
			target.RequestJump()
		case ReleaseJumpIntent:
			target.ReleaseJump()
		case DashIntent:
			target.RequestDash(v.Direction)
		case DownJumpIntent:
			target.RequestDownJump()
		}
	}
}
