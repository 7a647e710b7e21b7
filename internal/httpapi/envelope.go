package httpapi

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response shape every production endpoint returns. Payload
// fields are appended alongside it; a non-2xx status or success=false is
// treated uniformly as failure by clients.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK writes a success envelope with optional payload fields.
func OK(w http.ResponseWriter, message string, payload map[string]any) {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	for key, value := range payload {
		body[key] = value
	}
	writeJSON(w, http.StatusOK, body)
}

// Fail writes a failure envelope. The message is surfaced verbatim to the
// operator, so it must be phrased for humans.
func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
