package server

import (
	"encoding/json"
	"net/http"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}

// writeErr maps a coded error to its HTTP status.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(orgerrors.GetCode(err))
	if code == "" {
		code = string(orgerrors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, status, code, orgerrors.UserMessage(err))
}

func statusFor(err error) int {
	if orgerrors.Is(err, orgerrors.ErrCodeRateLimited) {
		return http.StatusTooManyRequests
	}
	switch orgerrors.ClassOf(err) {
	case orgerrors.ClassInvalid:
		return http.StatusBadRequest
	case orgerrors.ClassNotFound:
		return http.StatusNotFound
	case orgerrors.ClassUpstream, orgerrors.ClassDenied:
		// A denied directory token is our misconfiguration, not the caller's.
		return http.StatusBadGateway
	case orgerrors.ClassUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
