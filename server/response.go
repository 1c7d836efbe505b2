package server

import (
	"encoding/json"
	"errors"
	"net/http"

	bullposter_protocol "bullposter-cli/solana"
	"bullposter-cli/storage"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func failure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

// statusFor maps a client or storage error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, bullposter_protocol.ErrNotFound),
		errors.Is(err, storage.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, bullposter_protocol.ErrMalformedSeedInput),
		errors.Is(err, storage.ErrInvalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, bullposter_protocol.ErrAllEndpointsFailed),
		errors.Is(err, bullposter_protocol.ErrEndpointUnavailable),
		errors.Is(err, bullposter_protocol.ErrNoEndpoints):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
