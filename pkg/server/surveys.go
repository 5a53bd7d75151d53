package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/survey"
)

type renderRequest struct {
	Questionnaire survey.Questionnaire `json:"questionnaire"`
}

type validateRequest struct {
	Questionnaire survey.Questionnaire `json:"questionnaire"`
	Answers       map[string]any       `json:"answers"`
}

type validateResponse struct {
	Valid  bool        `json:"valid"`
	Errors []errorBody `json:"errors,omitempty"`
}

const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return orgerrors.Wrap(orgerrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// handleSurveyKinds handles GET /api/surveys/kinds.
func (s *Server) handleSurveyKinds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"kinds": s.registry.Kinds()})
}

// handleSurveyRender handles POST /api/surveys/render.
func (s *Server) handleSurveyRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	qn := req.Questionnaire
	qn.Normalize()
	if err := qn.Check(s.registry); err != nil {
		s.writeErr(w, r, err)
		return
	}
	widgets, err := s.registry.RenderAll(qn)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questionnaire": qn, "widgets": widgets})
}

// handleSurveyValidate handles POST /api/surveys/validate. Answer errors are
// reported in the body with status 422; a malformed questionnaire is a 400.
func (s *Server) handleSurveyValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	qn := req.Questionnaire
	qn.Normalize()
	if err := qn.Check(s.registry); err != nil {
		s.writeErr(w, r, err)
		return
	}

	err := s.registry.ValidateAll(qn, req.Answers)
	if err == nil {
		writeJSON(w, http.StatusOK, validateResponse{Valid: true})
		return
	}
	resp := validateResponse{}
	for _, e := range flatten(err) {
		code := string(orgerrors.GetCode(e))
		if code == "" {
			code = string(orgerrors.ErrCodeInvalidAnswer)
		}
		resp.Errors = append(resp.Errors, errorBody{Code: code, Message: orgerrors.UserMessage(e)})
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

// flatten splits an errors.Join result into its parts.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if stderrors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
