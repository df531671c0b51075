// pkg/physics/collision.go
package physics

import (
	"math"
	"math/rand/v2"
)

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are overlapping. Touching circles do not collide.
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Rect represents a rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// NewArena returns the rectangle spanning (0,0) to (width,height), the
// screen-space convention used by every host.
func NewArena(width, height float64) Rect {
	return Rect{
		Center: Vec(width/2, height/2),
		Width:  width,
		Height: height,
	}
}

func (r Rect) Left() float64   { return r.Center.X - r.Width/2 }
func (r Rect) Right() float64  { return r.Center.X + r.Width/2 }
func (r Rect) Top() float64    { return r.Center.Y - r.Height/2 }
func (r Rect) Bottom() float64 { return r.Center.Y + r.Height/2 }

// ClampCircle returns pos moved so that a circle of the given radius lies
// fully inside the rectangle. If the circle is wider than the rectangle it is
// centred on that axis.
func (r Rect) ClampCircle(pos Vector2D, radius float64) Vector2D {
	return Vector2D{
		X: clampAxis(pos.X, r.Left()+radius, r.Right()-radius, r.Center.X),
		Y: clampAxis(pos.Y, r.Top()+radius, r.Bottom()-radius, r.Center.Y),
	}
}

func clampAxis(v, lo, hi, mid float64) float64 {
	if lo > hi {
		return mid
	}
	return math.Max(lo, math.Min(hi, v))
}

// EdgeDistance returns the distance from pos to the nearest edge. Points
// outside the rectangle yield a negative value.
func (r Rect) EdgeDistance(pos Vector2D) float64 {
	return math.Min(
		math.Min(pos.X-r.Left(), r.Right()-pos.X),
		math.Min(pos.Y-r.Top(), r.Bottom()-pos.Y),
	)
}

// NearEdge reports whether pos is within margin of any edge
func (r Rect) NearEdge(pos Vector2D, margin float64) bool {
	return r.EdgeDistance(pos) <= margin
}

// Edge identifies one side of a rectangle
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// PointOnEdge returns the point at fraction t (0..1) along the given edge
func (r Rect) PointOnEdge(edge Edge, t float64) Vector2D {
	switch edge {
	case EdgeTop:
		return Vec(r.Left()+t*r.Width, r.Top())
	case EdgeRight:
		return Vec(r.Right(), r.Top()+t*r.Height)
	case EdgeBottom:
		return Vec(r.Left()+t*r.Width, r.Bottom())
	default:
		return Vec(r.Left(), r.Top()+t*r.Height)
	}
}

// RandomEdgePoint picks a uniformly random edge and a random point along it
func (r Rect) RandomEdgePoint(rng *rand.Rand) Vector2D {
	return r.PointOnEdge(Edge(rng.IntN(4)), rng.Float64())
}
