// Package game runs scenes on ebiten's fixed update loop.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/platformkit/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
// Every Update advances the current scene by one fixed timestep.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	frames  int
}

// New creates a Game running initialScene at timestep seconds per update.
// A non-positive timestep falls back to 1/60 s.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int, timestep float64) *Game {
	if timestep <= 0 {
		timestep = 1.0 / 60.0
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      timestep,
	}
	g.current.OnEnter()
	return g
}

// Update advances the current scene and handles scene transitions.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	g.frames++

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Close runs OnExit on the current scene. Call it once the loop returns.
func (g *Game) Close() {
	g.current.OnExit()
}

// Scene returns the current scene
func (g *Game) Scene() scene.Scene { return g.current }

// DT returns the fixed timestep handed to scenes
func (g *Game) DT() float64 { return g.dt }

// Frames returns the number of completed updates
func (g *Game) Frames() int { return g.frames }

// SetDT sets the timestep used for updates. Non-positive values are ignored.
func (g *Game) SetDT(dt float64) {
	if dt > 0 {
		g.dt = dt
	}
}
