package middleware

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope mirrors handler.MessageEnvelope so rejected requests look
// the same whether a middleware or a handler refused them.
type errorEnvelope struct {
	Error     string `json:"error"`
	ErrorCode int    `json:"error_code"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: msg, ErrorCode: status})
}
