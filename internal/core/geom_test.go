package core

import (
	"math"
	"testing"
)

func TestDist(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec2
		expected float64
	}{
		{"same point", V(3, 4), V(3, 4), 0},
		{"3-4-5 triangle", V(0, 0), V(3, 4), 5},
		{"negative coords", V(-1, -1), V(2, 3), 5},
		{"horizontal", V(10, 560), V(110, 560), 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Dist(tc.a, tc.b); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Dist() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := Dist(tc.b, tc.a); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Dist() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	dir, dist := Direction(V(0, 0), V(0, 50))
	if dist != 50 {
		t.Errorf("distance = %v, expected 50", dist)
	}
	if dir != V(0, 1) {
		t.Errorf("direction = %v, expected (0, 1)", dir)
	}

	dir, dist = Direction(V(7, 7), V(7, 7))
	if dist != 0 || dir != (Vec2{}) {
		t.Errorf("zero-length direction = %v/%v, expected zero vector and 0", dir, dist)
	}
}

func TestArrived(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec2
		step     float64
		expected bool
	}{
		{"zero distance with zero step", V(100, 560), V(100, 560), 0, true},
		{"exactly one step away", V(0, 0), V(0, 1), 1, true},
		{"just beyond one step", V(0, 0), V(0, 1.0001), 1, false},
		{"far away", V(0, 0), V(300, 400), 10, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Arrived(tc.from, tc.to, tc.step); got != tc.expected {
				t.Errorf("Arrived() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestWithinBox(t *testing.T) {
	center := V(200, 560)

	tests := []struct {
		name     string
		p        Vec2
		r        float64
		expected bool
	}{
		{"center", center, 25, true},
		{"inside corner", V(224, 584), 25, true},
		{"on boundary (exclusive)", V(225, 560), 25, false},
		{"circle would miss, box hits", V(220, 580), 25, true},
		{"outside", V(240, 560), 25, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithinBox(center, tc.p, tc.r); got != tc.expected {
				t.Errorf("WithinBox() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
