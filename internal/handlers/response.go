package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"beauty-assistant/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeRaw sends a body that is already JSON, such as a relayed upstream
// reply, and reports whether the client received all of it.
func writeRaw(w http.ResponseWriter, status int, body []byte) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	n, err := w.Write(body)
	if err == nil && n < len(body) {
		err = io.ErrShortWrite
	}
	return err
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

func errorRespWithDetails(message string, err error) models.ErrorResponse {
	return models.ErrorResponse{Error: message, Details: err.Error()}
}
