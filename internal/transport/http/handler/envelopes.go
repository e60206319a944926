package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/pkg/id"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 64 << 10

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// FlowEnvelope wraps every response about a mounted flow.
type FlowEnvelope[S any] struct {
	FlowID     string `json:"flow_id"`
	State      S      `json:"state"`
	NavigateTo string `json:"navigate_to,omitempty"`
	Error      string `json:"error,omitempty"`
}

// StateEnvelope wraps the state of a stateless form submission.
type StateEnvelope struct {
	State domain.SendState `json:"state"`
	Error string           `json:"error,omitempty"`
}

// NavigateEnvelope tells the renderer where to go next.
type NavigateEnvelope struct {
	NavigateTo string `json:"navigate_to"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, ErrorCode: status})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// statusOf maps a rejected call onto an HTTP status. Backend failures never
// get here: they are part of the returned state.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrBusy),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrResendUnavailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDisposed):
		return http.StatusGone
	case errors.Is(err, domain.ErrCapacity):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// flowID returns the {id} path parameter, or writes a 404 when it is not a
// well-formed flow id.
func flowID(w http.ResponseWriter, r *http.Request, what string) (string, bool) {
	key := chi.URLParam(r, "id")
	if !id.Valid(key) {
		writeError(w, http.StatusNotFound, what+" not found")
		return "", false
	}
	return key, true
}
