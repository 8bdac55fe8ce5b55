package http

import (
	"net/http"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/logger"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to write response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Status: "success", Message: message, Data: data})
}

// statusForKind maps an error kind to its HTTP status.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindInvariant:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindRuleViolation:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs the failure and answers with the status for its kind.
// Storage failures never leak their message to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)

	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, status, envelope{Status: "error", Message: "Internal Server Error"})
		return
	}

	logger.WarnContext(r.Context(), "Request rejected", "method", r.Method, "path", r.URL.Path, "kind", kind, "error", err.Error())
	writeJSON(w, status, envelope{Status: "fail", Message: err.Error()})
}
