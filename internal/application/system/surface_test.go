package system

import (
	"sort"

	"github.com/younwookim/platformkit/internal/domain/entity"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

const testDT = 1.0 / 64.0

// testBox is one collider of a boxWorld
type testBox struct {
	rect     entity.Rect
	id       entity.SurfaceID
	owner    entity.OwnerID
	layer    entity.LayerMask
	oneWay   bool
	platform *entity.Platform
}

// boxWorld is an in-memory query surface made of axis-aligned boxes
type boxWorld struct {
	boxes  []testBox
	nextID entity.SurfaceID
	casts  int
}

func (w *boxWorld) add(b testBox) entity.SurfaceID {
	w.nextID++
	if b.id == 0 {
		b.id = w.nextID
	}
	if b.layer == 0 {
		b.layer = entity.LayerGround
	}
	w.boxes = append(w.boxes, b)
	return b.id
}

func (w *boxWorld) addSolid(r entity.Rect) entity.SurfaceID {
	return w.add(testBox{rect: r})
}

func (w *boxWorld) addPlatform(r entity.Rect) *entity.Platform {
	p := entity.NewPlatform(entity.EntityID(w.nextID+1), r)
	w.add(testBox{rect: r, oneWay: true, platform: p, layer: entity.LayerPlatform})
	return p
}

func (w *boxWorld) CastRay(origin, dir entity.Vec2, maxDist float64, mask entity.LayerMask) (entity.Hit, bool) {
	hits := w.CastRayAll(origin, dir, maxDist, mask)
	if len(hits) == 0 {
		return entity.Hit{}, false
	}
	return hits[0], true
}

func (w *boxWorld) CastRayAll(origin, dir entity.Vec2, maxDist float64, mask entity.LayerMask) []entity.Hit {
	w.casts++
	var hits []entity.Hit
	for _, b := range w.boxes {
		if !mask.Has(b.layer) {
			continue
		}
		if b.platform != nil && !b.platform.Enabled() {
			continue
		}
		d, ok := b.rect.RayIntersect(origin, dir, maxDist)
		if !ok {
			continue
		}
		h := entity.Hit{
			Surface:  b.id,
			Owner:    b.owner,
			OneWay:   b.oneWay,
			Point:    origin.Add(dir.Scale(d)),
			Distance: d,
		}
		if b.platform != nil {
			h.Platform = b.platform
		}
		hits = append(hits, h)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// createTestConfig uses power-of-two timings so countdowns are exact
func createTestConfig() *config.PhysicsConfig {
	cfg := config.DefaultPhysicsConfig()
	cfg.Jump.CoyoteTime = 0.125
	cfg.Jump.BufferTime = 0.125
	cfg.Dash.Distance = 2
	cfg.Dash.Duration = 0.25
	cfg.Dash.Cooldown = 0.5
	cfg.DownJump.PlatformIgnoreTime = 0.125
	return cfg
}

// createTestWorld returns a floor whose top is y=0
func createTestWorld() *boxWorld {
	w := &boxWorld{}
	w.addSolid(entity.NewRect(-10, -1, 20, 1))
	return w
}

// restingY is the center height of a 0.5x1 body standing on y=0,
// kept two contact offsets above the surface
const restingY = 0.52

func createTestBody(y float64) *entity.Body {
	return entity.NewBody(0, y, 0.5, 1)
}

func createTestController(cfg *config.PhysicsConfig, surface entity.QuerySurface, body *entity.Body, opts ...ControllerOption) *Controller {
	return NewController(cfg, body, surface, opts...)
}

// integrate moves the body by its velocity, no gravity
func integrate(b *entity.Body, dt float64) {
	b.Position = b.Position.Add(b.Vel.Scale(dt))
}
