// Package geom holds the 2D math shared by the simulation systems.
package geom

import "math"

// Vec is a 2D vector in world units.
type Vec struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// FromAngle returns a vector of length mag pointing along angle (radians).
// Angle 0 points along +X.
func FromAngle(angle, mag float64) Vec {
	return Vec{X: math.Cos(angle) * mag, Y: math.Sin(angle) * mag}
}

func (v Vec) Add(o Vec) Vec        { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec        { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec  { return Vec{v.X * s, v.Y * s} }
func (v Vec) Dot(o Vec) float64    { return v.X*o.X + v.Y*o.Y }
func (v Vec) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec) LenSq() float64       { return v.X*v.X + v.Y*v.Y }
func (v Vec) Angle() float64       { return math.Atan2(v.Y, v.X) }
func (v Vec) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec) Dist(o Vec) float64   { return v.Sub(o).Len() }
func (v Vec) DistSq(o Vec) float64 { return v.Sub(o).LenSq() }

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// ClampLen limits the vector to limit while preserving direction.
func (v Vec) ClampLen(limit float64) Vec {
	l := v.Len()
	if l <= limit || l == 0 {
		return v
	}
	return v.Scale(limit / l)
}

// NormalizeAngle wraps an angle into [-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
