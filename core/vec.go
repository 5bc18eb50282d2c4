package core

import "math"

// Vec2 is a 2D vector in world units per second when used as a velocity.
// Movement integration belongs to the owning actor; the behavior core only
// ever selects and hands over one of these per tick.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by factor
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the vector magnitude
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns the unit vector, zero-safe
func (v Vec2) Normalized() Vec2 {
	mag := v.Length()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / mag, Y: v.Y / mag}
}

// ClampLength limits the vector to maxLen while preserving direction
func (v Vec2) ClampLength(maxLen float64) Vec2 {
	mag := v.Length()
	if mag <= maxLen || mag == 0 {
		return v
	}
	return v.Scale(maxLen / mag)
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
