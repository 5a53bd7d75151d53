package responsive

import (
	"math"
	"slices"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// Tier names, narrowest first.
const (
	TierMobileSmall = "mobile-s"
	TierMobile      = "mobile"
	TierTablet      = "tablet"
	TierLaptop      = "laptop"
	TierDesktop     = "desktop"
	TierUltrawide   = "ultrawide"
)

// DefaultViewportWidth is used when a caller has no viewport to report.
const DefaultViewportWidth = 1280.0

// Profile is the set of layout constants for one viewport tier.
// All lengths are in CSS pixels.
type Profile struct {
	Name              string  `json:"name"`
	MinWidth          float64 `json:"min_width"` // inclusive lower bound of the tier
	NodeWidth         float64 `json:"node_width"`
	NodeHeight        float64 `json:"node_height"`
	HorizontalSpacing float64 `json:"horizontal_spacing"` // gap between sibling subtrees
	VerticalSpacing   float64 `json:"vertical_spacing"`   // distance between parent and child rows
	Zoom              float64 `json:"zoom"`               // default (and maximum fitted) zoom
	GridColumns       int     `json:"grid_columns"`       // columns in the flat fallback layout
}

// profiles is ordered by MinWidth ascending.
var profiles = []Profile{
	{Name: TierMobileSmall, MinWidth: 0, NodeWidth: 140, NodeHeight: 60, HorizontalSpacing: 16, VerticalSpacing: 90, Zoom: 0.9, GridColumns: 1},
	{Name: TierMobile, MinWidth: 480, NodeWidth: 160, NodeHeight: 66, HorizontalSpacing: 24, VerticalSpacing: 100, Zoom: 0.85, GridColumns: 2},
	{Name: TierTablet, MinWidth: 768, NodeWidth: 180, NodeHeight: 72, HorizontalSpacing: 32, VerticalSpacing: 120, Zoom: 0.8, GridColumns: 3},
	{Name: TierLaptop, MinWidth: 1024, NodeWidth: 200, NodeHeight: 80, HorizontalSpacing: 40, VerticalSpacing: 140, Zoom: 0.75, GridColumns: 4},
	{Name: TierDesktop, MinWidth: 1440, NodeWidth: 220, NodeHeight: 88, HorizontalSpacing: 50, VerticalSpacing: 160, Zoom: 0.7, GridColumns: 5},
	{Name: TierUltrawide, MinWidth: 1920, NodeWidth: 240, NodeHeight: 96, HorizontalSpacing: 64, VerticalSpacing: 180, Zoom: 0.6, GridColumns: 6},
}

// Profiles returns all tiers, narrowest first.
func Profiles() []Profile { return slices.Clone(profiles) }

// Resolve returns the profile for a viewport width. Widths at or below zero
// (and NaN) resolve to the narrowest tier.
func Resolve(viewportWidth float64) Profile {
	if math.IsNaN(viewportWidth) {
		return profiles[0]
	}
	for i := len(profiles) - 1; i > 0; i-- {
		if viewportWidth >= profiles[i].MinWidth {
			return profiles[i]
		}
	}
	return profiles[0]
}

// ByName returns the profile with the given tier name.
func ByName(name string) (Profile, bool) {
	i := slices.IndexFunc(profiles, func(p Profile) bool { return p.Name == name })
	if i < 0 {
		return Profile{}, false
	}
	return profiles[i], true
}

// ValidateWidth rejects viewport widths that cannot come from a real screen.
func ValidateWidth(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return orgerrors.New(orgerrors.ErrCodeInvalidViewport, "viewport width must be a positive number, got %v", w)
	}
	return nil
}
