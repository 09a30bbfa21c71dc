package httpapi

import (
	"encoding/json"
	"net/http"
)

// Problem type identifiers shared by every handler.
const (
	ProblemTypeValidation = "https://bfpsystem.app/problems/validation-error"
	ProblemTypeNotFound   = "https://bfpsystem.app/problems/not-found"
	ProblemTypeConflict   = "https://bfpsystem.app/problems/conflict"
	ProblemTypeInternal   = "https://bfpsystem.app/problems/internal-error"
)

// ProblemDetails is the RFC 7807 error body returned by the API.
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// WriteJSON renders v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem renders a problem-details response.
func WriteProblem(w http.ResponseWriter, status int, problemType, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ProblemDetails{
		Type:   problemType,
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// BadRequest is the common validation failure response.
func BadRequest(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusBadRequest, ProblemTypeValidation, "Validation failed", detail)
}

// NotFound is the common missing-resource response.
func NotFound(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusNotFound, ProblemTypeNotFound, "Not found", detail)
}

// Conflict is the common state-conflict response.
func Conflict(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusConflict, ProblemTypeConflict, "Conflict", detail)
}

// Internal is the generic failure response; the detail is deliberately vague.
func Internal(w http.ResponseWriter) {
	WriteProblem(w, http.StatusInternalServerError, ProblemTypeInternal, "Internal error", "internal error")
}
