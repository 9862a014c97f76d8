// Package playing provides the debug scene: one controlled body on a stage
// with its collider, rays and contacts drawn over the tiles.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/platformkit/internal/application/replay"
	"github.com/younwookim/platformkit/internal/application/scene"
	"github.com/younwookim/platformkit/internal/application/session"
	"github.com/younwookim/platformkit/internal/application/state"
	"github.com/younwookim/platformkit/internal/application/system"
	"github.com/younwookim/platformkit/internal/domain/entity"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG          = color.RGBA{26, 26, 46, 255}
	colorSolid       = color.RGBA{80, 80, 100, 255}
	colorPlatform    = color.RGBA{120, 160, 200, 255}
	colorPlatformOff = color.RGBA{60, 70, 90, 120}
	colorBody        = color.RGBA{100, 200, 100, 255}
	colorDashing     = color.RGBA{230, 200, 80, 255}
	colorContact     = color.RGBA{255, 80, 80, 255}
	colorRay         = color.RGBA{255, 255, 255, 90}
	colorRayHit      = color.RGBA{255, 120, 60, 255}
	colorOverlay     = color.RGBA{0, 0, 0, 128}
)

// maxTransitions is how many state changes the HUD lists
const maxTransitions = 6

// Options configures the scene
type Options struct {
	// RecordPath enables input recording; the file is written on F5 and on exit.
	RecordPath string
	// Reloads delivers new physics tuning. It is drained between steps.
	Reloads <-chan *config.PhysicsConfig
}

// Playing is the debug scene
type Playing struct {
	session *session.Session
	input   *system.InputSystem
	state   state.GameState
	screenW int
	screenH int
	ppu     float64

	reloads     <-chan *config.PhysicsConfig
	transitions []string

	recorder   *replay.Recorder
	recordPath string
}

var _ scene.Scene = (*Playing)(nil)

// New creates the scene around a running session
func New(s *session.Session, opts Options) *Playing {
	display := s.Config().Display
	ppu := display.PixelsPerUnit
	if ppu <= 0 {
		ppu = 16
	}

	p := &Playing{
		session:    s,
		input:      system.NewInputSystem(),
		state:      state.StatePlaying,
		screenW:    display.ScreenWidth,
		screenH:    display.ScreenHeight,
		ppu:        ppu,
		reloads:    opts.Reloads,
		recordPath: opts.RecordPath,
	}

	if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(s.StageConfig().ID, s.Backend(), s.Config().Physics.FixedTimestep)
		log.Printf("Recording enabled: %s", opts.RecordPath)
	}

	p.watchTransitions()
	return p
}

// watchTransitions hooks the state machine of the current session.
// The machine is rebuilt on reset, so this runs again after every reset.
func (p *Playing) watchTransitions() {
	p.session.Machine().OnChange = func(from, to state.MovementState) {
		line := fmt.Sprintf("%5d %s -> %s", p.session.Frame(), from, to)
		p.transitions = append(p.transitions, line)
		if len(p.transitions) > maxTransitions {
			p.transitions = p.transitions[len(p.transitions)-maxTransitions:]
		}
	}
}

// Update proceeds the scene state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	p.applyReloads()

	switch p.state {
	case state.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePaused
			return nil, nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
			p.saveRecording()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if err := p.Reset(); err != nil {
				return nil, err
			}
			return nil, nil
		}
		p.Step(p.input.GetInput())
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	}

	return nil, nil // nil = stay on this scene
}

// Step records and runs one frame of input
func (p *Playing) Step(in system.InputState) system.StepResult {
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}
	return p.session.Step(in)
}

// Reset respawns the body. A running recording restarts with it.
func (p *Playing) Reset() error {
	if err := p.session.Reset(); err != nil {
		return err
	}
	p.transitions = p.transitions[:0]
	p.watchTransitions()

	if p.recorder != nil {
		p.recorder = replay.NewRecorder(p.session.StageConfig().ID, p.session.Backend(), p.session.Config().Physics.FixedTimestep)
		log.Printf("Recording restarted")
	}
	return nil
}

// applyReloads applies every pending physics config without blocking
func (p *Playing) applyReloads() {
	if p.reloads == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-p.reloads:
			if !ok {
				p.reloads = nil
				return
			}
			if err := p.session.ApplyPhysics(cfg); err != nil {
				log.Printf("Physics reload rejected: %v", err)
				continue
			}
			log.Printf("Physics reloaded at frame %d", p.session.Frame())
		default:
			return
		}
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// SetPaused freezes or resumes the simulation
func (p *Playing) SetPaused(paused bool) {
	if paused {
		p.state = state.StatePaused
	} else {
		p.state = state.StatePlaying
	}
}

// Paused reports whether the simulation is frozen
func (p *Playing) Paused() bool { return p.state == state.StatePaused }

// Session returns the simulation the scene drives
func (p *Playing) Session() *session.Session { return p.session }

// Transitions returns the most recent movement state changes, oldest first
func (p *Playing) Transitions() []string { return p.transitions }

// Draw renders the scene
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	cam := p.camera()
	p.drawTiles(screen, cam)
	p.drawPlatforms(screen, cam)
	p.drawBody(screen, cam)
	if p.session.Config().Debug.DrawRays {
		p.drawRays(screen, cam)
	}
	p.drawHUD(screen)

	if p.state == state.StatePaused {
		vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), colorOverlay, false)
		ebitenutil.DebugPrintAt(screen, "PAUSED\n\nPress ESC to resume", p.screenW/2-50, p.screenH/2-20)
	}
}

// camera maps world units (y-up) to screen pixels (y-down)
type camera struct {
	x, y float64 // world point at the screen's top-left corner
	ppu  float64
}

// camera centres on the body and stays inside the stage
func (p *Playing) camera() camera {
	stage := p.session.Stage()
	viewW := float64(p.screenW) / p.ppu
	viewH := float64(p.screenH) / p.ppu
	center := p.session.World().Player().Position()

	left := clamp(center.X-viewW/2, 0, stage.WorldWidth()-viewW)
	top := clamp(center.Y+viewH/2, viewH, stage.WorldHeight())
	return camera{x: left, y: top, ppu: p.ppu}
}

func (c camera) point(v entity.Vec2) (float32, float32) {
	return float32((v.X - c.x) * c.ppu), float32((c.y - v.Y) * c.ppu)
}

// rect returns the screen box of r as x, y, w, h
func (c camera) rect(r entity.Rect) (float32, float32, float32, float32) {
	x, y := c.point(entity.Vec2{X: r.Min.X, Y: r.Max.Y})
	return x, y, float32(r.Width() * c.ppu), float32(r.Height() * c.ppu)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam camera) {
	stage := p.session.Stage()
	for ty := 0; ty < stage.Height; ty++ {
		for tx := 0; tx < stage.Width; tx++ {
			if !stage.GetTile(tx, ty).Solid() {
				continue
			}
			x, y, w, h := cam.rect(stage.TileRect(tx, ty))
			if x+w < 0 || y+h < 0 || x > float32(p.screenW) || y > float32(p.screenH) {
				continue
			}
			vector.FillRect(screen, x, y, w, h, colorSolid, false)
		}
	}
}

func (p *Playing) drawPlatforms(screen *ebiten.Image, cam camera) {
	for _, pl := range p.session.Stage().Platforms {
		c := colorPlatform
		if !pl.Enabled() {
			c = colorPlatformOff
		}
		x, y, w, h := cam.rect(pl.Rect)
		// Only the top edge blocks, so draw it as a thick line
		vector.FillRect(screen, x, y, w, float32(math.Max(2, float64(h)/4)), c, false)
	}
}

func (p *Playing) drawBody(screen *ebiten.Image, cam camera) {
	r, ok := p.session.World().Player().Bounds()
	if !ok {
		return
	}
	c := colorBody
	if p.session.Controller().IsDashing() {
		c = colorDashing
	}
	x, y, w, h := cam.rect(r)
	vector.FillRect(screen, x, y, w, h, c, false)

	hits := p.session.Controller().Collisions()
	if hits.Below {
		vector.FillRect(screen, x, y+h-2, w, 2, colorContact, false)
	}
	if hits.Above {
		vector.FillRect(screen, x, y, w, 2, colorContact, false)
	}
	if hits.Left {
		vector.FillRect(screen, x, y, 2, h, colorContact, false)
	}
	if hits.Right {
		vector.FillRect(screen, x+w-2, y, 2, h, colorContact, false)
	}
}

// drawRays draws the rays of the last step from the origins it used
func (p *Playing) drawRays(screen *ebiten.Image, cam camera) {
	cfg := p.session.Config()
	origins := p.session.Controller().Player().Origins
	res := p.session.LastResult()
	if res.Skipped {
		return
	}
	offset := cfg.Physics.ContactOffset

	vcount := max(cfg.Collision.VerticalRayCount, 1)
	for i := 0; i < vcount; i++ {
		o := system.VerticalRayOrigin(origins, i, vcount, false, offset)
		p.drawRay(screen, cam, o, entity.Down, res.Vertical.DownLength, i == res.Vertical.GroundRay)
		if res.Vertical.UpLength > 0 {
			o = system.VerticalRayOrigin(origins, i, vcount, true, offset)
			p.drawRay(screen, cam, o, entity.Up, res.Vertical.UpLength, i == res.Vertical.CeilingRay)
		}
	}

	if res.Horizontal.Skipped {
		return
	}
	hcount := max(cfg.Collision.HorizontalRayCount, 1)
	left := res.Horizontal.FaceDir < 0
	dir := entity.Right
	if left {
		dir = entity.Left
	}
	for i := 0; i < hcount; i++ {
		o := system.HorizontalRayOrigin(origins, i, hcount, left, offset)
		p.drawRay(screen, cam, o, dir, res.Horizontal.Length, i == res.Horizontal.WallRay)
	}
}

func (p *Playing) drawRay(screen *ebiten.Image, cam camera, origin, dir entity.Vec2, length float64, hit bool) {
	c := colorRay
	if hit {
		c = colorRayHit
	}
	x0, y0 := cam.point(origin)
	x1, y1 := cam.point(origin.Add(dir.Scale(length)))
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, false)
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	snap := p.session.Snapshot()
	text := fmt.Sprintf("%s\nbackend=%s air dash=%t ignoring platforms=%t\n",
		snap, p.session.Backend(), p.session.Controller().IsAirDashEnabled(), p.session.Controller().IsIgnoringPlatforms())
	for _, t := range p.transitions {
		text += t + "\n"
	}
	ebitenutil.DebugPrint(screen, text)

	controls := "A/D: Move | W/Z: Jump | S+Jump: Drop | Space/X: Dash | R: Reset | ESC: Pause"
	if p.recorder != nil {
		controls += " | F5: Save"
	}
	ebitenutil.DebugPrintAt(screen, controls, 4, p.screenH-16)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {}

// OnExit saves the recording, if any
func (p *Playing) OnExit() {
	if p.recorder != nil && p.recorder.FrameCount() > 0 {
		p.saveRecording()
	}
}
