package system

import (
	"math"

	"github.com/younwookim/platformkit/internal/domain/entity"
	"github.com/younwookim/platformkit/internal/infrastructure/config"
)

// horizontalEpsilon is the speed below which there is no travel direction
const horizontalEpsilon = 0.01

// Self identifies the controlled body's own collider in query results
type Self struct {
	Surface entity.SurfaceID // 0 when the body has no collider in the surface
	Owner   entity.OwnerID
}

// Matches reports whether hit belongs to the body itself
func (s Self) Matches(hit entity.Hit) bool {
	if s.Surface != 0 && hit.Surface == s.Surface {
		return true
	}
	return s.Owner != entity.NoOwner && hit.Owner == s.Owner
}

// VerticalResult describes one pass of the vertical resolver.
// Ray indices are -1 when nothing was hit.
type VerticalResult struct {
	DownLength      float64
	UpLength        float64
	GroundRay       int
	GroundDistance  float64
	CeilingRay      int
	CeilingDistance float64
	OneWay          bool
}

// HorizontalResult describes one pass of the horizontal resolver
type HorizontalResult struct {
	Skipped  bool // speed below epsilon, no rays cast
	Length   float64
	FaceDir  int
	WallRay  int
	Distance float64
}

// CollisionSystem fires the ground, ceiling and wall rays of a body
// against a query surface
type CollisionSystem struct {
	config  *config.PhysicsConfig
	surface entity.QuerySurface
	mask    entity.LayerMask
	self    Self
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(cfg *config.PhysicsConfig, surface entity.QuerySurface, mask entity.LayerMask, self Self) *CollisionSystem {
	return &CollisionSystem{
		config:  cfg,
		surface: surface,
		mask:    mask,
		self:    self,
	}
}

// SetSurface swaps the query surface, e.g. after a stage change
func (s *CollisionSystem) SetSurface(surface entity.QuerySurface) {
	s.surface = surface
}

// Mask returns the layer mask used for every query
func (s *CollisionSystem) Mask() entity.LayerMask {
	return s.mask
}

// cast returns the nearest hit along the ray that is not the body itself.
// When the nearest hit is the body, every hit along the ray is fetched and
// the nearest foreign one is used instead.
func (s *CollisionSystem) cast(origin, dir entity.Vec2, dist float64) (entity.Hit, bool) {
	if s.surface == nil || s.mask == 0 {
		return entity.Hit{}, false
	}
	hit, ok := s.surface.CastRay(origin, dir, dist, s.mask)
	if !ok {
		return entity.Hit{}, false
	}
	if !s.self.Matches(hit) {
		return hit, true
	}
	for _, h := range s.surface.CastRayAll(origin, dir, dist, s.mask) {
		if !s.self.Matches(h) {
			return h, true
		}
	}
	return entity.Hit{}, false
}

// castAll returns every foreign hit along the ray, nearest first
func (s *CollisionSystem) castAll(origin, dir entity.Vec2, dist float64) []entity.Hit {
	if s.surface == nil || s.mask == 0 {
		return nil
	}
	all := s.surface.CastRayAll(origin, dir, dist, s.mask)
	out := all[:0:0]
	for _, h := range all {
		if !s.self.Matches(h) {
			out = append(out, h)
		}
	}
	return out
}

// ResolveVertical sets Below, Above and OnOneWay from the ground and
// ceiling rays. It reads but never changes velocity or timers, so running
// it twice with the same inputs gives the same flags.
func (s *CollisionSystem) ResolveVertical(p *entity.Player, vel entity.Vec2, dt float64) VerticalResult {
	cc := s.config.Collision
	skin := cc.SkinWidth
	offset := s.config.Physics.ContactOffset
	count := clampRayCount(cc.VerticalRayCount)

	res := VerticalResult{GroundRay: -1, CeilingRay: -1}
	p.Collisions.Below = false
	p.Collisions.Above = false
	p.Collisions.OnOneWay = false

	down := cc.GroundCheckDistance
	if vel.Y <= 0 {
		down = math.Max(cc.GroundCheckDistance, math.Abs(vel.Y*dt)+skin)
	}
	// The origin sits skin above the feet
	down = math.Max(down, 2*skin)
	res.DownLength = down

	for i := 0; i < count; i++ {
		origin := VerticalRayOrigin(p.Origins, i, count, false, offset)
		hit, ok := s.cast(origin, entity.Down, down)
		if !ok {
			continue
		}
		if hit.OneWay {
			// Moving down through it, or the ray starts inside it
			if vel.Y < 0 || hit.Distance <= 0 {
				continue
			}
		}
		p.Collisions.Below = true
		p.Collisions.OnOneWay = hit.OneWay
		res.GroundRay = i
		res.GroundDistance = hit.Distance
		res.OneWay = hit.OneWay
		break
	}

	if vel.Y > 0 {
		res.UpLength = math.Abs(vel.Y*dt) + skin
	}
	if res.UpLength > 0 {
		for i := 0; i < count; i++ {
			origin := VerticalRayOrigin(p.Origins, i, count, true, offset)
			hit, ok := s.castSolid(origin, entity.Up, res.UpLength)
			if !ok {
				continue
			}
			p.Collisions.Above = true
			res.CeilingRay = i
			res.CeilingDistance = hit.Distance
			break
		}
	}

	return res
}

// ResolveHorizontal sets Left, Right and FaceDir from the wall rays on the
// side the body travels towards. One-way surfaces never block sideways.
func (s *CollisionSystem) ResolveHorizontal(p *entity.Player, vel entity.Vec2, dt float64) HorizontalResult {
	cc := s.config.Collision
	skin := cc.SkinWidth
	offset := s.config.Physics.ContactOffset
	count := clampRayCount(cc.HorizontalRayCount)

	p.Collisions.Left = false
	p.Collisions.Right = false

	if math.Abs(vel.X) < horizontalEpsilon {
		p.Collisions.FaceDir = 1
		return HorizontalResult{Skipped: true, FaceDir: 1, WallRay: -1}
	}

	dir := 1
	if vel.X < 0 {
		dir = -1
	}
	p.Collisions.FaceDir = dir

	length := math.Max(math.Abs(vel.X*dt)+skin, 2*skin)
	res := HorizontalResult{Length: length, FaceDir: dir, WallRay: -1}

	rayDir := entity.Right
	if dir < 0 {
		rayDir = entity.Left
	}

	for i := 0; i < count; i++ {
		origin := HorizontalRayOrigin(p.Origins, i, count, dir < 0, offset)
		hit, ok := s.castSolid(origin, rayDir, length)
		if !ok {
			continue
		}
		if dir < 0 {
			p.Collisions.Left = true
		} else {
			p.Collisions.Right = true
		}
		res.WallRay = i
		res.Distance = hit.Distance
		break
	}

	return res
}

// castSolid returns the nearest foreign hit that is not one-way
func (s *CollisionSystem) castSolid(origin, dir entity.Vec2, dist float64) (entity.Hit, bool) {
	hit, ok := s.cast(origin, dir, dist)
	if !ok || !hit.OneWay {
		return hit, ok
	}
	for _, h := range s.castAll(origin, dir, dist) {
		if !h.OneWay {
			return h, true
		}
	}
	return entity.Hit{}, false
}
