// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a point or direction in continuous playfield space.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// V creates a vector from its components.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// Direction returns the unit vector from `from` towards `to` together with the
// distance between them. A zero distance yields a zero vector.
func Direction(from, to Vec2) (Vec2, float64) {
	d := to.Sub(from)
	dist := d.Len()
	if dist == 0 {
		return Vec2{}, 0
	}
	return Vec2{X: d.X / dist, Y: d.Y / dist}, dist
}

// Arrived reports whether a step of length `step` from `from` reaches `to`.
// Zero distance always counts as arrived.
func Arrived(from, to Vec2, step float64) bool {
	dist := Dist(from, to)
	return dist == 0 || dist <= step
}

// WithinBox reports whether |a.X-b.X| < r and |a.Y-b.Y| < r.
func WithinBox(a, b Vec2, r float64) bool {
	return math.Abs(a.X-b.X) < r && math.Abs(a.Y-b.Y) < r
}

// Rect represents an axis-aligned cell rectangle used for screen layout.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
