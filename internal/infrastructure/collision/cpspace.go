package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/platformkit/internal/domain/entity"
)

// CPSpace indexes the stage in a chipmunk space. Solids become merged
// static boxes, one-way platforms get their own boxes, and moving bodies
// are kinematic boxes.
//
// A chipmunk segment query does not report a shape the segment starts
// inside, so every cast also checks the shapes whose bounds hold the
// origin and reports those containing it at distance 0.
type CPSpace struct {
	space     *cp.Space
	colliders map[*cp.Shape]*collider
	platforms map[*cp.Shape]*entity.Platform
	bodies    []cpBody
	nextID    entity.SurfaceID
}

type cpBody struct {
	ref   *bodyCollider
	body  *cp.Body
	shape *cp.Shape
	w, h  float64
}

var _ Surface = (*CPSpace)(nil)

// NewCPSpace builds a space for stage. A nil stage gives an empty space.
func NewCPSpace(stage *entity.Stage) *CPSpace {
	s := &CPSpace{
		space:     cp.NewSpace(),
		colliders: make(map[*cp.Shape]*collider),
		platforms: make(map[*cp.Shape]*entity.Platform),
	}
	if stage == nil {
		return s
	}

	for _, r := range stage.Colliders() {
		s.addStatic(r, &collider{owner: entity.NoOwner, layer: entity.LayerGround})
	}
	for _, p := range stage.Platforms {
		shape := s.addStatic(p.Rect, &collider{owner: entity.OwnerID(p.ID), layer: entity.LayerPlatform, platform: p})
		s.platforms[shape] = p
	}
	return s
}

func (s *CPSpace) addStatic(r entity.Rect, c *collider) *cp.Shape {
	s.nextID++
	c.id = s.nextID

	shape := cp.NewBox2(s.space.StaticBody, toBB(r), 0)
	shape.SetFilter(shapeFilter(c.layer))
	s.space.AddShape(shape)
	s.colliders[shape] = c
	return shape
}

// AddBody adds a kinematic box that follows body
func (s *CPSpace) AddBody(body entity.Kinematic, owner entity.OwnerID, layer entity.LayerMask) entity.SurfaceID {
	s.nextID++
	ref := &bodyCollider{collider: collider{id: s.nextID, owner: owner, layer: layer}, body: body}

	b := s.space.AddBody(cp.NewKinematicBody())
	w, h := 1.0, 1.0
	if r, ok := body.Bounds(); ok {
		w, h = r.Width(), r.Height()
		b.SetPosition(toVec(r.Center()))
	}
	shape := cp.NewBox(b, w, h, 0)
	shape.SetFilter(shapeFilter(layer))
	s.space.AddShape(shape)

	s.colliders[shape] = &ref.collider
	s.bodies = append(s.bodies, cpBody{ref: ref, body: b, shape: shape, w: w, h: h})
	return ref.id
}

// Sync moves every kinematic box to its body's bounds. Shapes are taken
// out of the space while their body moves so the tree indexes the new bounds.
func (s *CPSpace) Sync() {
	for i := range s.bodies {
		cb := &s.bodies[i]
		r, ok := cb.ref.body.Bounds()
		if !ok {
			continue
		}
		s.space.RemoveShape(cb.shape)
		if r.Width() != cb.w || r.Height() != cb.h {
			delete(s.colliders, cb.shape)
			cb.shape = cp.NewBox(cb.body, r.Width(), r.Height(), 0)
			cb.shape.SetFilter(shapeFilter(cb.ref.layer))
			s.colliders[cb.shape] = &cb.ref.collider
			cb.w, cb.h = r.Width(), r.Height()
		}
		cb.body.SetPosition(toVec(r.Center()))
		s.space.AddShape(cb.shape)
	}
}

// syncPlatforms hides disabled platforms from every query filter
func (s *CPSpace) syncPlatforms() {
	for shape, p := range s.platforms {
		if p.Enabled() {
			shape.SetFilter(shapeFilter(entity.LayerPlatform))
		} else {
			shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, 0, cp.ALL_CATEGORIES))
		}
	}
}

// CastRay returns the nearest surface along the ray
func (s *CPSpace) CastRay(origin, dir entity.Vec2, maxDist float64, mask entity.LayerMask) (entity.Hit, bool) {
	if mask == 0 {
		return entity.Hit{}, false
	}
	s.syncPlatforms()
	filter := queryFilter(mask)

	if inside := s.inside(origin, dir, filter); len(inside) > 0 {
		return inside[0], true
	}

	end := origin.Add(dir.Scale(maxDist))
	info := s.space.SegmentQueryFirst(toVec(origin), toVec(end), 0, filter)
	if info.Shape == nil {
		return entity.Hit{}, false
	}
	c, ok := s.colliders[info.Shape]
	if !ok || !c.active() {
		return entity.Hit{}, false
	}
	return c.hit(origin, dir, info.Alpha*maxDist), true
}

// CastRayAll returns every surface along the ray, nearest first
func (s *CPSpace) CastRayAll(origin, dir entity.Vec2, maxDist float64, mask entity.LayerMask) []entity.Hit {
	if mask == 0 {
		return nil
	}
	s.syncPlatforms()
	filter := queryFilter(mask)

	hits := s.inside(origin, dir, filter)
	seen := make(map[entity.SurfaceID]bool, len(hits))
	for _, h := range hits {
		seen[h.Surface] = true
	}

	end := origin.Add(dir.Scale(maxDist))
	s.space.SegmentQuery(toVec(origin), toVec(end), 0, filter,
		func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
			c, ok := s.colliders[shape]
			if !ok || !c.active() || seen[c.id] {
				return
			}
			seen[c.id] = true
			hits = append(hits, c.hit(origin, dir, alpha*maxDist))
		}, nil)

	sortHits(hits)
	return hits
}

// inside returns the shapes containing origin as distance 0 hits.
// Points on a shape's edge count as inside.
func (s *CPSpace) inside(origin, dir entity.Vec2, filter cp.ShapeFilter) []entity.Hit {
	var hits []entity.Hit
	p := toVec(origin)
	s.space.BBQuery(cp.NewBBForCircle(p, 0), filter, func(shape *cp.Shape, data interface{}) {
		c, ok := s.colliders[shape]
		if !ok || !c.active() {
			return
		}
		if shape.PointQuery(p).Distance > 0 {
			return
		}
		hits = append(hits, c.hit(origin, dir, 0))
	}, nil)
	sortHits(hits)
	return hits
}

// shapeFilter puts a shape in layer and lets every query see it
func shapeFilter(layer entity.LayerMask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES)
}

// queryFilter sees shapes in any layer of mask
func queryFilter(mask entity.LayerMask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

func toVec(v entity.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func toBB(r entity.Rect) cp.BB {
	return cp.BB{L: r.Min.X, B: r.Min.Y, R: r.Max.X, T: r.Max.Y}
}
