// Package org provides the employee directory model and the manager/report
// index the org-chart layout is built on.
//
// # Overview
//
// Employee data arrives as a flat list where each record optionally names
// its manager by ID. [NewChart] turns that list into a [Chart]: an
// immutable index answering "who are the roots?" and "who reports to X?"
// in constant time. The index is built in a single pass over the input,
// so layout code never rescans the employee list per node.
//
// # Roots
//
// A root is an employee with no manager, a manager ID equal to its own ID,
// or a manager ID that names no known employee. Charts with exactly one
// root that reaches every employee are trees ([Chart.Tree] reports ok);
// anything else (no root, several roots, employees stranded in a manager
// cycle) is drawn as a flat grid by the layout package.
//
// # Cycles
//
// Manager data is expected to be acyclic but is never trusted to be.
// [Chart.Walk] and [Chart.Depth] keep a visited set and terminate on
// malformed input.
//
// # Concurrency
//
// A Chart is read-only after construction and safe for concurrent use.
package org
