// Package server exposes the org chart pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz                        liveness probe
//	GET  /api/employees                  the directory, in source order
//	GET  /api/employees/{id}             one employee
//	GET  /api/employees/search?name=     tiered name selection
//	GET  /api/employees/suggest?q=       fuzzy autocompletion
//	GET  /api/orgchart?width=&hover=     positioned layout with viewport
//	GET  /api/orgchart.svg               rendered chart
//	GET  /api/orgchart.dot               Graphviz source
//	GET  /api/profiles                   responsive tiers
//	GET  /api/surveys/kinds              registered question kinds
//	POST /api/surveys/render             widgets for a questionnaire
//	POST /api/surveys/validate           answer validation
//
// Errors are JSON objects with a machine-readable code taken from
// [errors.Code]; invalid input maps to 400 and unknown records to 404.
//
// The directory is fetched through the runner on every chart request, so
// an HTTP or Mongo source sees edits without a restart; the shared cache
// keeps repeated layouts cheap.
//
// [errors.Code]: github.com/matzehuels/orgchart/pkg/errors
package server
