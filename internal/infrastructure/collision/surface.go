// Package collision answers raycasts against a stage using a physics
// library as the spatial index.
package collision

import (
	"fmt"
	"sort"

	"github.com/younwookim/platformkit/internal/domain/entity"
)

// Backend names accepted by NewSurface
const (
	BackendCP     = "cp"
	BackendResolv = "resolv"
)

// Surface is a query surface that can also carry moving bodies
type Surface interface {
	entity.QuerySurface
	// AddBody registers a moving collider. Its box follows the body on Sync.
	AddBody(body entity.Kinematic, owner entity.OwnerID, layer entity.LayerMask) entity.SurfaceID
	// Sync moves body colliders to their current bounds.
	Sync()
}

// NewSurface builds the named backend over stage
func NewSurface(backend string, stage *entity.Stage, reg *entity.LayerRegistry) (Surface, error) {
	switch backend {
	case BackendCP, "":
		return NewCPSpace(stage), nil
	case BackendResolv:
		return NewResolvSpace(stage, reg), nil
	default:
		return nil, fmt.Errorf("collision: unknown backend %q", backend)
	}
}

// collider is what a backend knows about one of its shapes
type collider struct {
	id       entity.SurfaceID
	owner    entity.OwnerID
	layer    entity.LayerMask
	platform *entity.Platform
}

// active reports whether queries may see the collider
func (c *collider) active() bool {
	return c.platform == nil || c.platform.Enabled()
}

func (c *collider) hit(origin, dir entity.Vec2, dist float64) entity.Hit {
	h := entity.Hit{
		Surface:  c.id,
		Owner:    c.owner,
		OneWay:   c.platform != nil,
		Point:    origin.Add(dir.Scale(dist)),
		Distance: dist,
	}
	if c.platform != nil {
		h.Platform = c.platform
	}
	return h
}

// bodyCollider is a collider that follows a kinematic body
type bodyCollider struct {
	collider
	body entity.Kinematic
}

// sortHits orders hits nearest first, ties by surface
func sortHits(hits []entity.Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Surface < hits[j].Surface
	})
}
