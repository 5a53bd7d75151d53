package responsive

import "math"

// NudgeFraction is the share of screen height the fitted chart is moved down.
const NudgeFraction = 0.1

// fitPadding is the fraction of the screen kept free around a fitted chart.
const fitPadding = 0.1

// Rect is an axis-aligned rectangle in layout coordinates.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return (r.MinX + r.MaxX) / 2 }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Size is a screen size in CSS pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport is the pan/zoom transform of the rendering surface: a layout
// point p is drawn at screen (p.X*Zoom + X, p.Y*Zoom + Y).
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Apply maps a layout point to screen coordinates.
func (v Viewport) Apply(x, y float64) (float64, float64) {
	return x*v.Zoom + v.X, y*v.Zoom + v.Y
}

// Fit frames bounds on a screen of the given size. The zoom is the largest
// that fits the padded screen, capped at the profile's default zoom. The
// chart is centered horizontally and vertically, then moved down by
// NudgeFraction of the screen height.
func Fit(bounds Rect, screen Size, p Profile) Viewport {
	zoom := p.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if !bounds.IsEmpty() && screen.Width > 0 && screen.Height > 0 {
		usableW := screen.Width * (1 - 2*fitPadding)
		usableH := screen.Height * (1 - 2*fitPadding)
		zoom = math.Min(zoom, math.Min(usableW/bounds.Width(), usableH/bounds.Height()))
	}

	v := Viewport{Zoom: zoom}
	v.X = screen.Width/2 - bounds.CenterX()*zoom
	v.Y = screen.Height/2 - (bounds.MinY+bounds.Height()/2)*zoom
	v.Y += screen.Height * NudgeFraction
	return v
}
