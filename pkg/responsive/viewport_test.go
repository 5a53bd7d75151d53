package responsive

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFitCapsZoomAtProfile(t *testing.T) {
	p := Profile{Zoom: 0.75}
	bounds := Rect{MinX: -50, MinY: 0, MaxX: 50, MaxY: 40}
	screen := Size{Width: 1000, Height: 800}

	v := Fit(bounds, screen, p)
	if !approx(v.Zoom, 0.75) {
		t.Fatalf("Zoom = %v, want 0.75 (small chart uses profile zoom)", v.Zoom)
	}

	// Horizontal center of the chart lands on the screen center.
	cx, _ := v.Apply(bounds.CenterX(), 0)
	if !approx(cx, 500) {
		t.Errorf("chart center x = %v, want 500", cx)
	}

	// Vertical center is nudged below the screen center.
	_, cy := v.Apply(0, 20)
	if want := 400 + 800*NudgeFraction; !approx(cy, want) {
		t.Errorf("chart center y = %v, want %v", cy, want)
	}
}

func TestFitShrinksLargeCharts(t *testing.T) {
	p := Profile{Zoom: 0.9}
	bounds := Rect{MinX: -2000, MinY: 0, MaxX: 2000, MaxY: 500}
	screen := Size{Width: 1000, Height: 800}

	v := Fit(bounds, screen, p)
	if want := 800.0 / 4000.0; !approx(v.Zoom, want) {
		t.Errorf("Zoom = %v, want %v", v.Zoom, want)
	}

	left, _ := v.Apply(bounds.MinX, 0)
	right, _ := v.Apply(bounds.MaxX, 0)
	if left < 0 || right > screen.Width {
		t.Errorf("fitted chart spans [%v, %v], outside screen", left, right)
	}
}

func TestFitEmptyBounds(t *testing.T) {
	v := Fit(Rect{}, Size{Width: 400, Height: 300}, Profile{Zoom: 0.8})
	if !approx(v.Zoom, 0.8) {
		t.Errorf("Zoom = %v, want 0.8", v.Zoom)
	}
	if !approx(v.X, 200) || !approx(v.Y, 150+30) {
		t.Errorf("viewport = %+v, want origin at screen center nudged down", v)
	}
}
