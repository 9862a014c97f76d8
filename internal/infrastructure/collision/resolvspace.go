package collision

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/younwookim/platformkit/internal/domain/entity"
)

// resolvScale converts world units to resolv space units
const resolvScale = 16.0

// ResolvSpace buckets the stage into resolv cells. A probe object that
// covers the ray's box collects candidates from the cells it touches,
// then each candidate's box is intersected exactly.
type ResolvSpace struct {
	space  *resolv.Space
	reg    *entity.LayerRegistry
	origin entity.Vec2 // world point at space (0, 0)
	probe  *resolv.Object
	bodies []*resolvBody
	nextID entity.SurfaceID
}

type resolvBody struct {
	ref   *bodyCollider
	obj   *resolv.Object
	entry *resolvEntry
}

// resolvEntry is stored in Object.Data. rect is the exact world box;
// the object's scaled box is only used for bucketing.
type resolvEntry struct {
	c    *collider
	rect entity.Rect
}

var _ Surface = (*ResolvSpace)(nil)

// NewResolvSpace builds a space for stage. Objects are tagged with their
// layer names from reg; nil uses the built-in layers.
func NewResolvSpace(stage *entity.Stage, reg *entity.LayerRegistry) *ResolvSpace {
	if reg == nil {
		reg = entity.NewLayerRegistry()
	}

	bounds := entity.NewRect(0, 0, 1, 1)
	cell := 1.0
	if stage != nil {
		bounds = stage.Bounds().Expand(stage.TileSize)
		cell = stage.TileSize
	}

	s := &ResolvSpace{reg: reg, origin: bounds.Min}
	cellSize := max(int(cell*resolvScale), 1)
	s.space = resolv.NewSpace(
		int(math.Ceil(bounds.Width()*resolvScale)),
		int(math.Ceil(bounds.Height()*resolvScale)),
		cellSize, cellSize,
	)
	s.probe = resolv.NewObject(0, 0, 1, 1)
	s.space.Add(s.probe)

	if stage == nil {
		return s
	}
	for _, r := range stage.Colliders() {
		s.add(r, &collider{owner: entity.NoOwner, layer: entity.LayerGround})
	}
	for _, p := range stage.Platforms {
		s.add(p.Rect, &collider{owner: entity.OwnerID(p.ID), layer: entity.LayerPlatform, platform: p})
	}
	return s
}

func (s *ResolvSpace) add(r entity.Rect, c *collider) (*resolv.Object, *resolvEntry) {
	s.nextID++
	c.id = s.nextID

	x, y, w, h := s.toSpace(r)
	entry := &resolvEntry{c: c, rect: r}
	obj := resolv.NewObject(x, y, w, h, s.reg.Names(c.layer)...)
	obj.Data = entry
	s.space.Add(obj)
	return obj, entry
}

// AddBody adds an object that follows body
func (s *ResolvSpace) AddBody(body entity.Kinematic, owner entity.OwnerID, layer entity.LayerMask) entity.SurfaceID {
	r, ok := body.Bounds()
	if !ok {
		r = entity.NewRect(0, 0, 1, 1)
	}
	ref := &bodyCollider{collider: collider{owner: owner, layer: layer}, body: body}
	obj, entry := s.add(r, &ref.collider)
	s.bodies = append(s.bodies, &resolvBody{ref: ref, obj: obj, entry: entry})
	return ref.id
}

// Sync moves every body object to its body's bounds
func (s *ResolvSpace) Sync() {
	for _, b := range s.bodies {
		r, ok := b.ref.body.Bounds()
		if !ok {
			continue
		}
		b.entry.rect = r
		b.obj.X, b.obj.Y, b.obj.W, b.obj.H = s.toSpace(r)
		b.obj.Update()
	}
}

// CastRay returns the nearest surface along the ray
func (s *ResolvSpace) CastRay(origin, dir entity.Vec2, maxDist float64, mask entity.LayerMask) (entity.Hit, bool) {
	hits := s.CastRayAll(origin, dir, maxDist, mask)
	if len(hits) == 0 {
		return entity.Hit{}, false
	}
	return hits[0], true
}

// CastRayAll returns every surface along the ray, nearest first
func (s *ResolvSpace) CastRayAll(origin, dir entity.Vec2, maxDist float64, mask entity.LayerMask) []entity.Hit {
	if mask == 0 {
		return nil
	}
	tags := s.reg.Names(mask)
	if len(tags) == 0 {
		return nil
	}

	end := origin.Add(dir.Scale(maxDist))
	ray := entity.Rect{
		Min: entity.Vec2{X: math.Min(origin.X, end.X), Y: math.Min(origin.Y, end.Y)},
		Max: entity.Vec2{X: math.Max(origin.X, end.X), Y: math.Max(origin.Y, end.Y)},
	}
	// Pad by one space unit so a zero-width ray still covers a cell
	s.probe.X, s.probe.Y, s.probe.W, s.probe.H = s.toSpace(ray)
	s.probe.X--
	s.probe.Y--
	s.probe.W += 2
	s.probe.H += 2
	s.probe.Update()

	check := s.probe.Check(0, 0, tags...)
	if check == nil {
		return nil
	}

	var hits []entity.Hit
	for _, obj := range check.Objects {
		e, ok := obj.Data.(*resolvEntry)
		if !ok || !mask.Has(e.c.layer) || !e.c.active() {
			continue
		}
		d, ok := e.rect.RayIntersect(origin, dir, maxDist)
		if !ok {
			continue
		}
		hits = append(hits, e.c.hit(origin, dir, d))
	}

	sortHits(hits)
	return hits
}

func (s *ResolvSpace) toSpace(r entity.Rect) (x, y, w, h float64) {
	return (r.Min.X - s.origin.X) * resolvScale,
		(r.Min.Y - s.origin.Y) * resolvScale,
		r.Width() * resolvScale,
		r.Height() * resolvScale
}
