// Package svg renders org chart layouts as standalone SVG documents.
//
// Nodes are drawn as rounded boxes with the employee's name and title;
// reporting lines are drawn as elbow connectors from the bottom of a
// manager's box to the top of each report's box. Elements flagged by
// [layout.Apply] carry the "highlight" class.
//
//	doc := svg.Render(l, svg.WithHighlight(layout.HighlightPath(l, "e42")))
//
// [WithInteraction] embeds a small script that reproduces the path
// highlighter in the browser: hovering a box lights up the chain of managers
// above it, stopping if the chain would revisit a node.
package svg
