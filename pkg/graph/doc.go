// Package graph provides serialization types for employee directories and
// org-chart layouts.
//
// This package defines the canonical wire format used for input files, API
// responses and the layout cache.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Directory], [Layout]: Serialization types (this package)
//   - pkg/org.Chart: Internal manager/report index
//   - pkg/layout.Layout: Internal positioned layout
//
// Use [Export] and [Layout.Internal] to convert layouts in both directions.
//
// # Directory Files
//
// Employee files are JSON or YAML, either a bare list or an object with an
// "employees" key:
//
//	employees:
//	  - id: ceo
//	    name: Claire Martin
//	  - id: cto
//	    name: Jean Dupont
//	    manager_id: ceo
//
// Common operations:
//
//	emps, _ := graph.ReadEmployeesFile("staff.yaml")  // File → []Employee
//	graph.WriteEmployeesFile(emps, "staff.json")      // []Employee → File
//
// # Layout Serialization
//
// A serialized [Layout] carries the positioned nodes and edges together with
// the profile, bounds, fitted viewport and highlight that produced them, so a
// renderer can redraw a chart without recomputing it:
//
//	l, _ := graph.ReadLayoutFile("chart.layout.json")
//	internal := l.Internal()
package graph
