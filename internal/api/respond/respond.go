package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/imanelbaz22-debug/serene-app/internal/analytics"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

// ErrorResponse is the standard error body. Detail carries the
// human-readable reason.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   int    `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteError writes a standardized error response
func WriteError(w http.ResponseWriter, statusCode int, detail string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:  http.StatusText(statusCode),
		Code:   statusCode,
		Detail: detail,
	})
}

func WriteBadRequest(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusBadRequest, detail)
}

func WriteNotFound(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusNotFound, detail)
}

func WriteUnauthorized(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusUnauthorized, detail)
}

func WriteInternalError(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusInternalServerError, detail)
}

// WriteDomainError maps service errors onto HTTP statuses. Unknown errors
// are logged and answered with a generic 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	var ide *analytics.InsufficientDataError
	switch {
	case errors.As(err, &ide):
		WriteBadRequest(w, ide.Error())
	case model.IsValidationError(err):
		WriteBadRequest(w, err.Error())
	case model.IsNotFoundError(err):
		WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		WriteUnauthorized(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		WriteError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Stack().Err(err).Msg("unhandled service error")
		WriteInternalError(w, "internal error")
	}
}
