package web

// errors.go maps internal errors onto stable API responses.
//
// Every error carries a short code the front-end can branch on and the
// operator can quote. Structural import failures keep their full message:
// "which field is missing and which spellings were searched" is the one
// diagnostic the operator acts on.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/code-and-relax/studio/internal/engine"
	"github.com/code-and-relax/studio/internal/logging"
	"github.com/code-and-relax/studio/internal/service"
	"github.com/code-and-relax/studio/internal/store"
)

// ErrorResponse is the JSON shape of every error the API returns.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`

	// Missing is populated for header-location failures so the front-end
	// can highlight the affected fields.
	Missing []engine.MissingField `json:"missing,omitempty"`
}

// respondError logs the technical error and writes the mapped JSON response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := mapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", resp.Code,
		"error", err.Error(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// mapError assigns each error class a status and code.
func mapError(err error) (int, ErrorResponse) {
	var missing *engine.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Code:    "IMP001",
			Missing: missing.Missing,
		}
	case errors.Is(err, engine.ErrNoDataRows):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "IMP002"}
	case errors.Is(err, service.ErrTooManyImports):
		return http.StatusTooManyRequests, ErrorResponse{Error: err.Error(), Code: "IMP003"}
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error(), Code: "FILE001"}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "TSK001"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "SRV001"}
	}
}

// respondBadRequest writes a 400 with the given code, for request-shape
// problems that never reach the service layer.
func respondBadRequest(w http.ResponseWriter, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code})
}
