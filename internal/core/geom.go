// Package core provides fundamental types and utilities for the patience
// platform. It contains no external dependencies (especially no Bubble Tea)
// to keep drawing and input logic pure and testable.
package core

// Rect represents an axis-aligned area on the screen, used to place piles
// and to hit-test mouse clicks.
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

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Wrap maps val into [0, n) cyclically. n must be positive.
func Wrap(val, n int) int {
	val %= n
	if val < 0 {
		val += n
	}
	return val
}
