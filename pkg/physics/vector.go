// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components
type Vector2D struct {
	X float64
	Y float64
}

// Vec is shorthand for building a Vector2D
func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector2D) Normalize() Vector2D {
	n, _ := v.Direction()
	return n
}

// Direction returns the unit vector of v and whether v had a direction at all.
// Callers use the bool to skip direction-dependent effects for zero vectors.
func (v Vector2D) Direction() (Vector2D, bool) {
	length := v.Length()
	if length == 0 || math.IsNaN(length) {
		return Vector2D{}, false
	}
	return Vector2D{X: v.X / length, Y: v.Y / length}, true
}

// WithLength rescales v to the given magnitude, keeping its direction
func (v Vector2D) WithLength(length float64) Vector2D {
	return v.Normalize().Scale(length)
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Angle returns the angle of the vector in radians
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle creates a vector from an angle and magnitude
func FromAngle(angle float64, magnitude float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}
