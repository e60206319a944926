package handler

import (
	"net/http"
	"time"

	"github.com/go-authflow/internal/application/flow"
	"github.com/go-authflow/internal/application/resend"
	"github.com/go-authflow/internal/domain"
)

// ResendFormHandler serves the standalone resend form.
type ResendFormHandler struct {
	sender resend.Sender
	forms  *flow.Registry[*resend.Orchestrator]
}

func NewResendFormHandler(sender resend.Sender, idleTTL time.Duration, maxLive int) *ResendFormHandler {
	return &ResendFormHandler{
		sender: sender,
		forms:  flow.NewRegistry[*resend.Orchestrator]("resend-forms", idleTTL, maxLive),
	}
}

func (h *ResendFormHandler) Close() { h.forms.Close() }

func (h *ResendFormHandler) Options(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, resend.Options())
}

func (h *ResendFormHandler) Create(w http.ResponseWriter, _ *http.Request) {
	o := resend.New(h.sender)
	key, err := h.forms.Add(o)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, FlowEnvelope[resend.State]{FlowID: key, State: o.Snapshot()})
}

func (h *ResendFormHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := flowID(w, r, "resend form")
	if !ok {
		return
	}
	o, err := h.forms.Get(key)
	if err != nil {
		writeError(w, statusOf(err), "resend form not found")
		return
	}
	writeJSON(w, http.StatusOK, FlowEnvelope[resend.State]{FlowID: key, State: o.Snapshot()})
}

func (h *ResendFormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	key, ok := flowID(w, r, "resend form")
	if !ok {
		return
	}
	o, err := h.forms.Get(key)
	if err != nil {
		writeError(w, statusOf(err), "resend form not found")
		return
	}
	var sel domain.ResendSelection
	if !decodeJSON(w, r, &sel) {
		return
	}
	st, err := o.Submit(r.Context(), sel)
	if err != nil {
		writeJSON(w, statusOf(err), FlowEnvelope[resend.State]{FlowID: key, State: st, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, FlowEnvelope[resend.State]{FlowID: key, State: st})
}

func (h *ResendFormHandler) Reset(w http.ResponseWriter, r *http.Request) {
	key, ok := flowID(w, r, "resend form")
	if !ok {
		return
	}
	o, err := h.forms.Get(key)
	if err != nil {
		writeError(w, statusOf(err), "resend form not found")
		return
	}
	if err := o.Reset(); err != nil {
		writeJSON(w, statusOf(err), FlowEnvelope[resend.State]{FlowID: key, State: o.Snapshot(), Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, FlowEnvelope[resend.State]{FlowID: key, State: o.Snapshot()})
}

func (h *ResendFormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key, ok := flowID(w, r, "resend form")
	if !ok {
		return
	}
	if err := h.forms.Remove(key); err != nil {
		writeError(w, statusOf(err), "resend form not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
