package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fireops/lageboard/internal/gateway"
)

// APIResponse is the JSON envelope every endpoint answers with.
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
	Data      *T        `json:"data,omitempty"`
}

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}

// respondGatewayError translates gateway failures into upstream-style HTTP
// statuses: client mistakes pass through, everything else is a bad gateway.
func respondGatewayError(w http.ResponseWriter, err error) {
	var terr *gateway.TransportError
	if errors.As(err, &terr) {
		switch terr.StatusCode {
		case http.StatusBadRequest, http.StatusNotFound, http.StatusTooManyRequests:
			respondWithError(w, terr.StatusCode, terr.Message)
			return
		}
	}
	respondWithError(w, http.StatusBadGateway, "Operations API unavailable: "+err.Error())
}
