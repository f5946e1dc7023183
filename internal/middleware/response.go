package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(errorBody{Success: false, Message: message})
	if err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
