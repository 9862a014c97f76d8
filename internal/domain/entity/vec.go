package entity

import "math"

// Vec2 is a 2D vector in world units. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the vector magnitude
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector of v, or the zero vector when v is zero
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

var (
	Up    = Vec2{0, 1}
	Down  = Vec2{0, -1}
	Left  = Vec2{-1, 0}
	Right = Vec2{1, 0}
)

// Rect is an axis-aligned box given by its min and max corners
type Rect struct {
	Min, Max Vec2
}

// NewRect creates a rect from its bottom-left corner and size
func NewRect(x, y, w, h float64) Rect {
	return Rect{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

// RectFromCenter creates a rect centered on c
func RectFromCenter(c Vec2, w, h float64) Rect {
	return Rect{
		Min: Vec2{c.X - w/2, c.Y - h/2},
		Max: Vec2{c.X + w/2, c.Y + h/2},
	}
}

// Width returns the horizontal extent
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of the rect
func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Expand grows the rect by amount on every side. A negative amount shrinks it;
// the result never inverts and collapses onto the center instead.
func (r Rect) Expand(amount float64) Rect {
	out := Rect{
		Min: Vec2{r.Min.X - amount, r.Min.Y - amount},
		Max: Vec2{r.Max.X + amount, r.Max.Y + amount},
	}
	c := r.Center()
	if out.Min.X > out.Max.X {
		out.Min.X, out.Max.X = c.X, c.X
	}
	if out.Min.Y > out.Max.Y {
		out.Min.Y, out.Max.Y = c.Y, c.Y
	}
	return out
}

// Empty reports whether the rect has no area
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Overlaps reports whether two rects share interior area
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && r.Max.X > o.Min.X &&
		r.Min.Y < o.Max.Y && r.Max.Y > o.Min.Y
}

// Contains reports whether p lies inside or on the rect
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Translate moves the rect by d
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// RayIntersect returns the distance along the ray at which it enters r.
// dir must be a unit vector. A ray that starts inside r reports distance 0.
func (r Rect) RayIntersect(origin, dir Vec2, maxDist float64) (float64, bool) {
	tmin := 0.0
	tmax := maxDist

	if dir.X != 0 {
		inv := 1.0 / dir.X
		t1 := (r.Min.X - origin.X) * inv
		t2 := (r.Max.X - origin.X) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if origin.X < r.Min.X || origin.X > r.Max.X {
		return 0, false
	}

	if dir.Y != 0 {
		inv := 1.0 / dir.Y
		t1 := (r.Min.Y - origin.Y) * inv
		t2 := (r.Max.Y - origin.Y) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if origin.Y < r.Min.Y || origin.Y > r.Max.Y {
		return 0, false
	}

	if tmax < tmin {
		return 0, false
	}
	return tmin, true
}
