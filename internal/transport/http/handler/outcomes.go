package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-authflow/internal/application/outcome"
	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/pkg/validate"
)

// OutcomeResender is the resend call behind the error surface's button.
type OutcomeResender interface {
	Resend(ctx context.Context, flow domain.FlowType, email string) error
}

// OutcomeHandler serves the error and success surfaces.
type OutcomeHandler struct {
	resolver *outcome.Resolver
	resender OutcomeResender
}

func NewOutcomeHandler(resolver *outcome.Resolver, resender OutcomeResender) *OutcomeHandler {
	return &OutcomeHandler{resolver: resolver, resender: resender}
}

func linkParams(r *http.Request) domain.LinkParams {
	q := r.URL.Query()
	return domain.LinkParams{
		Type:     q.Get("type"),
		Message:  q.Get("message"),
		Email:    q.Get("email"),
		Redirect: q.Get("redirect"),
	}
}

func (h *OutcomeHandler) Error(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.resolver.ResolveError(linkParams(r)))
}

func (h *OutcomeHandler) Success(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.resolver.ResolveSuccess(linkParams(r)))
}

type outcomeResendRequest struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// Resend reissues the email for an error surface that offers it and points
// the renderer at the email-sent surface.
func (h *OutcomeHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req outcomeResendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	flowType, ok := outcome.ResendFlow(req.Type)
	if !ok {
		writeError(w, http.StatusConflict, domain.ErrResendUnavailable.Error())
		return
	}
	if err := validate.Email(req.Email); err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	if err := h.resender.Resend(r.Context(), flowType, req.Email); err != nil {
		slog.Warn("outcome resend failed", "type", req.Type, "err", err)
		writeError(w, http.StatusBadGateway, domain.MessageOf(err, "Failed to resend email"))
		return
	}
	writeJSON(w, http.StatusOK, NavigateEnvelope{NavigateTo: outcome.EmailSentHref(req.Email)})
}
