// Package layout computes org-chart node positions.
//
// # Overview
//
// [Build] takes an [org.Chart] and a [responsive.Profile] and returns a
// [Layout]: one positioned [Node] per employee and one [Edge] per
// manager/report link. Coordinates are in CSS pixels; X and Y are the
// top-left corner of a node's box, with y growing downward.
//
// # Tree mode
//
// When the chart is a single hierarchy, layout runs in two passes:
//
//  1. [ComputeWidths] walks the tree bottom-up once and memoises the width
//     every subtree needs. A leaf needs one node width; a manager needs the
//     sum of its reports' subtree widths plus one horizontal gap between
//     each pair, and never less than its own box.
//  2. A top-down pass places the root centered on x=0 at y=0 and lays each
//     manager's reports left to right across a span centered under the
//     manager, each report centered inside the slot reserved for its subtree.
//
// Sibling subtrees therefore never overlap at any depth, and every manager is
// centered over the full span of its direct reports.
//
// # Grid mode
//
// Charts without exactly one reachable root (no root, several roots, or
// employees stranded in a manager cycle) are laid out as a flat grid in input
// order, row-major across the profile's column count and centered on x=0.
// No hierarchy edges are drawn. An empty chart yields an empty layout.
//
// # Highlighting
//
// [HighlightPath] returns the nodes and edges from a hovered node up to the
// root, and [Apply] returns a copy of a layout with those elements flagged.
// The hovered node is always an explicit argument.
package layout
