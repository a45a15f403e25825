package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vkotenko/fintrack/internal/errs"
)

// response is the standard API envelope.
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}

func success(w http.ResponseWriter, statusCode int, data interface{}) {
	writeJSON(w, statusCode, response{Success: true, Data: data})
}

// fail maps the error kind to a status code and writes the envelope. Every
// failure carries its message; nothing fails silently.
func fail(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case errs.IsValidation(err):
		statusCode = http.StatusBadRequest
	case errors.Is(err, errs.ErrAuthenticationRequired):
		statusCode = http.StatusUnauthorized
	case errs.IsPersistence(err):
		statusCode = http.StatusBadGateway
	}
	writeJSON(w, statusCode, response{Success: false, Error: err.Error()})
}
