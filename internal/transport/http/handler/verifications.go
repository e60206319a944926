package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-authflow/internal/application/flow"
	"github.com/go-authflow/internal/application/verification"
	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/pkg/schedule"
)

// VerificationConfig tunes every machine the handler mounts.
type VerificationConfig struct {
	RedirectDelay time.Duration
	Dashboard     string
	IdleTTL       time.Duration
	MaxLive       int
	Scheduler     schedule.Scheduler // nil means real timers
}

// navRecorder holds the redirect target once it fires, for the next poll.
type navRecorder struct {
	mu     sync.Mutex
	target string
}

func (n *navRecorder) Navigate(target string) {
	n.mu.Lock()
	n.target = target
	n.mu.Unlock()
}

func (n *navRecorder) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

type verificationFlow struct {
	*verification.Machine
	nav *navRecorder
}

// VerificationHandler mounts one verification machine per page load.
type VerificationHandler struct {
	verifier verification.Verifier
	resender verification.Resender
	cfg      VerificationConfig
	flows    *flow.Registry[verificationFlow]
}

func NewVerificationHandler(verifier verification.Verifier, resender verification.Resender, cfg VerificationConfig) *VerificationHandler {
	return &VerificationHandler{
		verifier: verifier,
		resender: resender,
		cfg:      cfg,
		flows:    flow.NewRegistry[verificationFlow]("verifications", cfg.IdleTTL, cfg.MaxLive),
	}
}

// Close disposes every mounted machine.
func (h *VerificationHandler) Close() { h.flows.Close() }

type createVerificationRequest struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	Redirect string `json:"redirect"`
}

// Create mounts a machine and runs its verify call before answering.
func (h *VerificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVerificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	nav := &navRecorder{}
	m := verification.New(domain.VerificationRequest{
		Token:    req.Token,
		FlowType: domain.ParseVerifyFlow(req.Type),
		Redirect: req.Redirect,
	}, h.verifier, h.resender, verification.Options{
		Scheduler:     h.cfg.Scheduler,
		Navigator:     nav,
		RedirectDelay: h.cfg.RedirectDelay,
		Dashboard:     h.cfg.Dashboard,
	})
	key, err := h.flows.Add(verificationFlow{Machine: m, nav: nav})
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	st := m.Start(r.Context())
	writeJSON(w, http.StatusCreated, FlowEnvelope[domain.VerificationState]{FlowID: key, State: st})
}

func (h *VerificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := flowID(w, r, "verification flow")
	if !ok {
		return
	}
	f, err := h.flows.Get(key)
	if err != nil {
		writeError(w, statusOf(err), "verification flow not found")
		return
	}
	writeJSON(w, http.StatusOK, FlowEnvelope[domain.VerificationState]{
		FlowID:     key,
		State:      f.Snapshot(),
		NavigateTo: f.nav.Target(),
	})
}

func (h *VerificationHandler) Resend(w http.ResponseWriter, r *http.Request) {
	key, ok := flowID(w, r, "verification flow")
	if !ok {
		return
	}
	f, err := h.flows.Get(key)
	if err != nil {
		writeError(w, statusOf(err), "verification flow not found")
		return
	}
	st, err := f.Resend(r.Context())
	if err != nil {
		writeJSON(w, statusOf(err), FlowEnvelope[domain.VerificationState]{FlowID: key, State: st, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, FlowEnvelope[domain.VerificationState]{FlowID: key, State: st})
}

// Delete is the unmount: the machine is disposed and its redirect cancelled.
func (h *VerificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key, ok := flowID(w, r, "verification flow")
	if !ok {
		return
	}
	if err := h.flows.Remove(key); err != nil {
		writeError(w, statusOf(err), "verification flow not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
