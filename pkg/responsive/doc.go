// Package responsive maps viewport sizes to org-chart layout profiles.
//
// A [Profile] bundles the layout constants that depend on screen size: node
// box dimensions, spacing between siblings and levels, the default zoom and
// the column count used when the chart degrades to a grid. Six tiers cover
// narrow phones to ultra-wide monitors; [Resolve] picks one from a viewport
// width in CSS pixels.
//
// Larger tiers get larger nodes, wider spacing and more grid columns, but a
// smaller default zoom so more of the hierarchy is visible at once.
//
// # Viewport fitting
//
// [Fit] computes the pan/zoom that frames a laid-out chart on screen and
// then nudges it down by [NudgeFraction] of the screen height, so the root
// does not sit flush against the top edge.
//
// # Resize bursts
//
// Drag-resizing a window fires many events. [Debouncer] coalesces them so a
// relayout runs once the size settles. Layout is idempotent for a given
// input, so a relayout that overlaps an earlier one is harmless.
package responsive
