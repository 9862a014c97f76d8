package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/platformkit/internal/domain/entity"
)

// InputSystem turns raw input into movement intents
type InputSystem struct {
	facing int
}

// NewInputSystem creates a new input system facing right
func NewInputSystem() *InputSystem {
	return &InputSystem{facing: 1}
}

// InputState holds the input of one frame. Axis values are in [-1, 1];
// the Pressed/Released edges are true for exactly one frame.
type InputState struct {
	AxisX        float64
	AxisY        float64
	JumpHeld     bool
	JumpPressed  bool
	JumpReleased bool
	DashPressed  bool
}

// DownHeld reports whether the vertical axis points down
func (in InputState) DownHeld() bool {
	return in.AxisY < -0.5
}

// GetInput reads the current keyboard state
func (s *InputSystem) GetInput() InputState {
	var in InputState
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.AxisX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.AxisX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.AxisY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.AxisY++
	}

	in.JumpHeld = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyZ)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyZ)
	in.JumpReleased = inpututil.IsKeyJustReleased(ebiten.KeyW) || inpututil.IsKeyJustReleased(ebiten.KeyZ)
	in.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyX)
	return in
}

// Intents converts one frame of input into intents.
// Down held with a jump press drops through platforms instead of jumping.
// A dash goes the way the stick points, or the last way it pointed.
func (s *InputSystem) Intents(in InputState) []Intent {
	axis := clampAxis(in.AxisX)
	if axis > 0 {
		s.facing = 1
	} else if axis < 0 {
		s.facing = -1
	}

	intents := []Intent{MoveIntent{Axis: axis}}

	if in.JumpPressed {
		if in.DownHeld() {
			intents = append(intents, DownJumpIntent{})
		} else {
			intents = append(intents, JumpIntent{})
		}
	}
	if in.JumpReleased {
		intents = append(intents, ReleaseJumpIntent{})
	}
	if in.DashPressed {
		intents = append(intents, DashIntent{Direction: entity.Vec2{X: float64(s.facing)}})
	}
	return intents
}

// Facing returns +1 or -1 for the last horizontal input direction
func (s *InputSystem) Facing() int {
	return s.facing
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
