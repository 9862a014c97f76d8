// Package replay records controller input per fixed step and plays it
// back, so a run can be reproduced without a window.
package replay

import "github.com/younwookim/platformkit/internal/application/system"

// FormatVersion is written into every recording
const FormatVersion = "2.0"

// FrameInput records input state for a single fixed step
type FrameInput struct {
	F   int     `json:"f"`             // Frame number
	X   float64 `json:"x,omitempty"`   // Horizontal axis
	Y   float64 `json:"y,omitempty"`   // Vertical axis
	J   bool    `json:"j,omitempty"`   // JumpHeld
	JP  bool    `json:"jp,omitempty"`  // JumpPressed
	JR  bool    `json:"jr,omitempty"`  // JumpReleased
	Dsh bool    `json:"dsh,omitempty"` // DashPressed
}

// FromInput captures in as frame f
func FromInput(f int, in system.InputState) FrameInput {
	return FrameInput{
		F:   f,
		X:   in.AxisX,
		Y:   in.AxisY,
		J:   in.JumpHeld,
		JP:  in.JumpPressed,
		JR:  in.JumpReleased,
		Dsh: in.DashPressed,
	}
}

// Input converts the frame back to controller input
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		AxisX:        fi.X,
		AxisY:        fi.Y,
		JumpHeld:     fi.J,
		JumpPressed:  fi.JP,
		JumpReleased: fi.JR,
		DashPressed:  fi.Dsh,
	}
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	Backend   string       `json:"backend,omitempty"`
	Timestep  float64      `json:"timestep"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
