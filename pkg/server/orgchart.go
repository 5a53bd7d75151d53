package server

import (
	"net/http"
	"strconv"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/render"
	"github.com/matzehuels/orgchart/pkg/responsive"
)

// chartOptions reads layout and render options from the query string:
// width, height, profile, hover, engine, detailed, interactive.
func chartOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Profile: q.Get("profile"),
		Hover:   q.Get("hover"),
		Engine:  q.Get("engine"),
		Refresh: q.Has("refresh"),
	}

	var err error
	if opts.ViewportWidth, err = floatParam(q.Get("width")); err != nil {
		return opts, orgerrors.Wrap(orgerrors.ErrCodeInvalidViewport, err, "invalid width")
	}
	if opts.ViewportHeight, err = floatParam(q.Get("height")); err != nil {
		return opts, orgerrors.Wrap(orgerrors.ErrCodeInvalidViewport, err, "invalid height")
	}
	if q.Has("width") {
		if err := responsive.ValidateWidth(opts.ViewportWidth); err != nil {
			return opts, err
		}
	}
	opts.Detailed = boolParam(q.Get("detailed"))
	opts.Interactive = q.Get("interactive") == "" || boolParam(q.Get("interactive"))
	return opts, nil
}

func floatParam(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func boolParam(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

// handleOrgChart handles GET /api/orgchart.
func (s *Server) handleOrgChart(w http.ResponseWriter, r *http.Request) {
	opts, err := chartOptions(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := opts.ValidateForLayout(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	chart, err := s.runner.Load(r.Context(), s.source)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	l, err := s.runner.ComputeLayout(r.Context(), chart, opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.runner.Export(l, opts))
}

// handleOrgChartSVG handles GET /api/orgchart.svg.
func (s *Server) handleOrgChartSVG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, render.FormatSVG)
}

// handleOrgChartDOT handles GET /api/orgchart.dot.
func (s *Server) handleOrgChartDOT(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, render.FormatDOT)
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format render.Format) {
	opts, err := chartOptions(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	opts.Formats = []string{string(format)}

	res, err := s.runner.Execute(r.Context(), s.source, opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeBytes(w, format.ContentType(), res.Artifacts[string(format)])
}

// handleProfiles handles GET /api/profiles. With ?width= it also reports
// which profile that width resolves to.
func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"profiles": responsive.Profiles()}
	if raw := r.URL.Query().Get("width"); raw != "" {
		width, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			err = responsive.ValidateWidth(width)
		}
		if err != nil {
			s.writeErr(w, r, orgerrors.Wrap(orgerrors.ErrCodeInvalidViewport, err, "invalid width %q", raw))
			return
		}
		resp["resolved"] = responsive.Resolve(width)
	}
	writeJSON(w, http.StatusOK, resp)
}
