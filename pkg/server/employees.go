package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/orgchart/pkg/buildinfo"
	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/selection"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type searchResponse struct {
	Query string           `json:"query"`
	Found bool             `json:"found"`
	Match *selection.Match `json:"match,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) employees(w http.ResponseWriter, r *http.Request) ([]org.Employee, bool) {
	chart, err := s.runner.Load(r.Context(), s.source)
	if err != nil {
		s.writeErr(w, r, err)
		return nil, false
	}
	return chart.Employees(), true
}

// handleListEmployees handles GET /api/employees.
func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	emps, ok := s.employees(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employees": emps, "count": len(emps)})
}

// handleGetEmployee handles GET /api/employees/{id}.
func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emps, ok := s.employees(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	m, found := selection.ByID(emps, id)
	if !found {
		s.writeErr(w, r, orgerrors.New(orgerrors.ErrCodeEmployeeNotFound, "employee %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, m.Employee)
}

// handleSearchEmployees handles GET /api/employees/search?name=.
// A query that matches nobody is not an error: the response reports
// found=false and the caller keeps its current selection.
func (s *Server) handleSearchEmployees(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		s.writeErr(w, r, orgerrors.New(orgerrors.ErrCodeInvalidInput, "name parameter is required"))
		return
	}
	emps, ok := s.employees(w, r)
	if !ok {
		return
	}
	resp := searchResponse{Query: name}
	if m, found := selection.ByName(emps, name); found {
		resp.Found = true
		resp.Match = &m
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSuggestEmployees handles GET /api/employees/suggest?q=&limit=.
func (s *Server) handleSuggestEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := DefaultSuggestLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeErr(w, r, orgerrors.New(orgerrors.ErrCodeInvalidInput, "limit must be a positive integer, got %q", raw))
			return
		}
		limit = n
	}
	emps, ok := s.employees(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": selection.Suggest(emps, q.Get("q"), limit)})
}
