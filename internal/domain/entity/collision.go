package entity

// SurfaceID identifies a single collider in a query surface
type SurfaceID uint64

// OwnerID identifies the object a collider belongs to
type OwnerID uint64

// NoOwner marks a collider without an owning object
const NoOwner OwnerID = 0

// LayerMask filters collision queries by layer bits
type LayerMask uint32

// AllLayers matches every layer
const AllLayers LayerMask = ^LayerMask(0)

// Has reports whether any bit of other is set in m
func (m LayerMask) Has(other LayerMask) bool {
	return m&other != 0
}

// OneWayPlatform is a surface that can be made passable for a while
type OneWayPlatform interface {
	DisableCollisionTemporarily(duration float64)
}

// Hit is a single surface returned by a raycast
type Hit struct {
	Surface  SurfaceID
	Owner    OwnerID
	OneWay   bool
	Platform OneWayPlatform // set for one-way surfaces that support pass-through
	Point    Vec2
	Distance float64
}

// QuerySurface answers raycasts against the collision world.
// Both calls are synchronous and never block beyond the query itself.
type QuerySurface interface {
	// CastRay returns the nearest surface along the ray.
	CastRay(origin, dir Vec2, maxDist float64, mask LayerMask) (Hit, bool)
	// CastRayAll returns every surface along the ray, nearest first.
	CastRayAll(origin, dir Vec2, maxDist float64, mask LayerMask) []Hit
}

// CollisionInfo holds the contact flags of a single step.
// It is rebuilt from scratch every step and handed out by value.
type CollisionInfo struct {
	Below    bool
	Above    bool
	Left     bool
	Right    bool
	FaceDir  int
	OnOneWay bool
}

// Reset clears all contacts and faces right
func (c *CollisionInfo) Reset() {
	*c = CollisionInfo{FaceDir: 1}
}

// CollideX reports a wall contact on either side
func (c CollisionInfo) CollideX() bool {
	return c.Left || c.Right
}

// CollideY reports a ground or ceiling contact
func (c CollisionInfo) CollideY() bool {
	return c.Above || c.Below
}

// RaycastOrigins holds the sampling points of the collider for one step.
// Corners come from the exact bounds; edge midpoints use the center of the
// inner box (bounds shrunk by the skin margin).
type RaycastOrigins struct {
	TopLeft, TopRight       Vec2
	BottomLeft, BottomRight Vec2
	Top, Bottom             Vec2
	Left, Right             Vec2

	Bounds Rect
	Inner  Rect

	HorizontalSpacing float64
	VerticalSpacing   float64
}
