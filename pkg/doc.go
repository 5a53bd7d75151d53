// Package pkg provides the core libraries for Orgchart.
//
// # Overview
//
// Orgchart turns a flat employee directory into a positioned org chart that
// adapts to the viewport it is shown in. The pkg directory is organized into
// four main areas:
//
//  1. Domain logic: [org], [responsive], [layout], [selection], [survey]
//  2. Data plumbing: [directory], [cache], [graph], [httputil]
//  3. Orchestration: [pipeline], [render], [server]
//  4. Shared: [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through Orgchart:
//
//	Employee directory (file, HTTP, MongoDB)
//	         ↓
//	    [org] package (validated chart, reporting lines)
//	         ↓
//	    [responsive] package (viewport width → profile)
//	         ↓
//	    [layout] package (tree or grid positions, highlighted path)
//	         ↓
//	    JSON/SVG/DOT/PDF/PNG output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/orgchart/pkg/directory"
//	    "github.com/matzehuels/orgchart/pkg/layout"
//	    "github.com/matzehuels/orgchart/pkg/org"
//	    "github.com/matzehuels/orgchart/pkg/render/svg"
//	    "github.com/matzehuels/orgchart/pkg/responsive"
//	    "github.com/matzehuels/orgchart/pkg/selection"
//	)
//
//	// 1. Load the directory
//	emps, _ := directory.NewFileSource("staff.yaml").Employees(ctx)
//	chart, _ := org.NewChart(emps)
//
//	// 2. Pick the profile for the viewport
//	p := responsive.Resolve(1024)
//
//	// 3. Position everyone and highlight a reporting path
//	l := layout.Build(chart, p)
//	m, _ := selection.ByName(emps, "jean")
//	h := layout.HighlightPath(l, m.Employee.ID)
//
//	// 4. Render to SVG
//	out := svg.Render(l, svg.WithHighlight(h))
//
// # Main Packages
//
// [org] - Employees and the chart built from them. Reporting lines are
// resolved once; a manager that is missing or the employee itself makes the
// employee a root.
//
// [responsive] - The six layout profiles, width resolution, viewport fitting
// and the resize [responsive.Debouncer].
//
// [layout] - Subtree widths, the tree positioner with its grid fallback and
// the path highlighter. Edge identifiers have the form "e-<manager>-<report>".
//
// [selection] - Employee lookup by id, and by name through the ranked tiers
// (exact, prefix, first name, last name, substring).
//
// [survey] - Questionnaires and the question kind registry. Each kind owns
// its widget rendering and answer validation.
//
// [directory] - Employee sources: local files, HTTP directories and MongoDB.
//
// [cache] - Layout and render caching with file, Redis and null backends.
//
// [graph] - Serialization types for layouts (JSON).
//
// [pipeline] - load → layout → render, used by both the CLI and the server.
//
// [render] - Output formats. [render/svg] draws the chart natively,
// [render/nodelink] goes through Graphviz.
//
// [server] - The HTTP API.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [org]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/org
// [responsive]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/responsive
// [layout]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/layout
// [selection]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/selection
// [survey]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/survey
// [directory]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/directory
// [cache]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/cache
// [graph]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/graph
// [httputil]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/httputil
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/render/nodelink
// [server]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/buildinfo
package pkg
