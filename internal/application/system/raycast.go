package system

import "github.com/younwookim/platformkit/internal/domain/entity"

// ComputeRaycastOrigins derives the sampling points of a collider box.
// Corners come from the exact bounds; edge midpoints and interior rays use
// the inner box, which is the bounds shrunk by skin on every side.
func ComputeRaycastOrigins(bounds entity.Rect, skin float64, horizontalRays, verticalRays int) entity.RaycastOrigins {
	inner := bounds.Expand(-skin)
	ic := inner.Center()

	return entity.RaycastOrigins{
		BottomLeft:  bounds.Min,
		BottomRight: entity.Vec2{X: bounds.Max.X, Y: bounds.Min.Y},
		TopLeft:     entity.Vec2{X: bounds.Min.X, Y: bounds.Max.Y},
		TopRight:    bounds.Max,

		Top:    entity.Vec2{X: ic.X, Y: bounds.Max.Y},
		Bottom: entity.Vec2{X: ic.X, Y: bounds.Min.Y},
		Left:   entity.Vec2{X: bounds.Min.X, Y: ic.Y},
		Right:  entity.Vec2{X: bounds.Max.X, Y: ic.Y},

		Bounds: bounds,
		Inner:  inner,

		HorizontalSpacing: raySpacing(inner.Height(), horizontalRays),
		VerticalSpacing:   raySpacing(inner.Width(), verticalRays),
	}
}

// raySpacing is zero for one or two rays since only interior rays use it
func raySpacing(length float64, count int) float64 {
	if count <= 2 {
		return 0
	}
	return length / float64(count-1)
}

// VerticalRayOrigin returns the origin of ground (top=false) or ceiling
// (top=true) ray index out of count. Ground rays start skin above the feet
// so a body resting on a surface never starts inside it.
func VerticalRayOrigin(o entity.RaycastOrigins, index, count int, top bool, contactOffset float64) entity.Vec2 {
	y := o.Inner.Min.Y
	if top {
		y = o.Bounds.Max.Y
	}
	x := rayCoord(index, count,
		o.Bounds.Min.X-contactOffset, o.Bounds.Max.X+contactOffset,
		o.Inner.Min.X, o.Inner.Width())
	return entity.Vec2{X: x, Y: y}
}

// HorizontalRayOrigin returns the origin of wall ray index out of count
// on the left (left=true) or right side.
func HorizontalRayOrigin(o entity.RaycastOrigins, index, count int, left bool, contactOffset float64) entity.Vec2 {
	x := o.Bounds.Max.X + contactOffset
	if left {
		x = o.Bounds.Min.X - contactOffset
	}
	y := rayCoord(index, count,
		o.Bounds.Min.Y-contactOffset, o.Bounds.Max.Y+contactOffset,
		o.Inner.Min.Y, o.Inner.Height())
	return entity.Vec2{X: x, Y: y}
}

// rayCoord places ray index along one axis. End rays sit at the pushed-out
// edges; interior rays are spread evenly over the inner extent.
func rayCoord(index, count int, lowEdge, highEdge, innerMin, innerSize float64) float64 {
	if count <= 1 {
		return innerMin + innerSize/2
	}
	switch index {
	case 0:
		return lowEdge
	case count - 1:
		return highEdge
	}
	spacing := innerSize / float64(count-1)
	return innerMin + spacing*float64(index)
}

// clampRayCount treats anything below one as a single center ray
func clampRayCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
