package handler

import (
	"net/http"

	"github.com/go-authflow/internal/application/magiclink"
	"github.com/go-authflow/internal/application/signup"
	"github.com/go-authflow/internal/domain"
)

// FormHandler serves the one-shot email forms. Each request gets a fresh
// form, so a sent form never needs a reset.
type FormHandler struct {
	links     magiclink.Requester
	registrar signup.Registrar
}

func NewFormHandler(links magiclink.Requester, registrar signup.Registrar) *FormHandler {
	return &FormHandler{links: links, registrar: registrar}
}

func (h *FormHandler) MagicLink(w http.ResponseWriter, r *http.Request) {
	var req domain.MagicLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st, err := magiclink.New(h.links).Submit(r.Context(), req.Email)
	writeFormState(w, st, err)
}

func (h *FormHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st, err := signup.New(h.registrar).Submit(r.Context(), req.Name, req.Email)
	writeFormState(w, st, err)
}

func writeFormState(w http.ResponseWriter, st domain.SendState, err error) {
	if err != nil {
		writeJSON(w, statusOf(err), StateEnvelope{State: st, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, StateEnvelope{State: st})
}
