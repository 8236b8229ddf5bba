package middleware

import (
	"encoding/json"
	"net/http"

	"auth-system/internal/model"
)

// errorEnvelope renders the envelope used by every error the middleware writes
// itself, so clients see the same shape as handler errors.
func errorEnvelope(code string, message string) []byte {
	body, _ := json.Marshal(model.APIResponse{Success: false, Code: code, Message: message})
	return body
}

func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(errorEnvelope(code, message))
}
