// Package verification drives one verification link from mount to a
// terminal phase and exposes the resend recovery path.
package verification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/pkg/schedule"
	"github.com/go-authflow/internal/pkg/urlutil"
)

const (
	msgNoToken      = "No verification token provided"
	msgExpired      = "This verification link has expired"
	msgResendFailed = "Failed to resend verification"
)

// Verifier validates a token. It never returns an error: every failure is
// a VerificationResult kind.
type Verifier interface {
	Verify(ctx context.Context, req domain.VerificationRequest) domain.VerificationResult
}

// Resender reissues the email of a flow.
type Resender interface {
	Resend(ctx context.Context, flow domain.FlowType, email string) error
}

// Navigator receives the deferred login redirect.
type Navigator interface {
	Navigate(target string)
}

// Options tune a Machine. Zero values pick the defaults.
type Options struct {
	Scheduler     schedule.Scheduler // default schedule.Real
	Navigator     Navigator          // default: log only; called with the machine locked
	RedirectDelay time.Duration      // default 2s
	Dashboard     string             // default /dashboard
	// OnChange receives every published snapshot, in order. It runs with
	// the machine locked and must not call back into it.
	OnChange func(domain.VerificationState)
}

// Machine is owned by exactly one page mount. All methods are safe for
// concurrent use; a second network call while one is in flight is rejected.
type Machine struct {
	mu       sync.Mutex
	req      domain.VerificationRequest
	verifier Verifier
	resender Resender
	opts     Options
	state    domain.VerificationState
	started  bool
	disposed bool
	redirect schedule.Task
}

// New builds a machine for req. The initial phase is loading when a token
// is present and invalid otherwise.
func New(req domain.VerificationRequest, verifier Verifier, resender Resender, opts Options) *Machine {
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.Real{}
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = 2 * time.Second
	}
	if opts.Dashboard == "" {
		opts.Dashboard = "/dashboard"
	}
	if req.FlowType != domain.FlowSignup {
		req.FlowType = domain.FlowLogin
	}
	m := &Machine{req: req, verifier: verifier, resender: resender, opts: opts}
	m.state = domain.VerificationState{Phase: domain.PhaseLoading, FlowType: req.FlowType}
	if req.Token == "" {
		m.state = domain.VerificationState{Phase: domain.PhaseInvalid, FlowType: req.FlowType, ErrorMessage: msgNoToken}
	}
	return m
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() domain.VerificationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start is the mount transition. It calls the verifier at most once over
// the machine's lifetime and never when the token is missing.
func (m *Machine) Start(ctx context.Context) domain.VerificationState {
	m.mu.Lock()
	if m.started || m.disposed || m.req.Token == "" {
		m.started = true
		s := m.state
		m.mu.Unlock()
		return s
	}
	m.started = true
	m.mu.Unlock()

	res := m.verifier.Verify(ctx, m.req)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return m.state
	}
	m.apply(m.next(res))
	return m.state
}

// next maps a verify result onto a full snapshot.
func (m *Machine) next(res domain.VerificationResult) domain.VerificationState {
	s := domain.VerificationState{FlowType: m.req.FlowType, Email: res.Email}
	switch res.Kind {
	case domain.ResultSuccess:
		s.Phase = domain.PhaseSuccess
		if m.req.FlowType == domain.FlowLogin {
			s.Redirect = &domain.RedirectPlan{
				Target:  urlutil.SafeRedirect(m.req.Redirect, m.opts.Dashboard),
				DelayMs: m.opts.RedirectDelay.Milliseconds(),
			}
		}
	case domain.ResultExpired:
		s.Phase = domain.PhaseExpired
		s.ErrorMessage = msgExpired
	case domain.ResultInvalid:
		s.Phase = domain.PhaseInvalid
		s.ErrorMessage = res.Message
	default:
		s.Phase = domain.PhaseError
		s.ErrorMessage = res.Message
	}
	return s
}

// apply replaces the snapshot wholesale and schedules the redirect the new
// snapshot asks for. Callers hold m.mu.
func (m *Machine) apply(s domain.VerificationState) {
	m.state = s
	if s.Redirect != nil && m.redirect == nil {
		target := s.Redirect.Target
		m.redirect = m.opts.Scheduler.After(m.opts.RedirectDelay, func() { m.fireRedirect(target) })
	}
	if m.opts.OnChange != nil {
		m.opts.OnChange(s)
	}
}

// fireRedirect navigates with the machine locked, so a Dispose that has
// returned can never be followed by a navigation.
func (m *Machine) fireRedirect(target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	if m.opts.Navigator == nil {
		slog.Info("login redirect due", "target", target)
		return
	}
	m.opts.Navigator.Navigate(target)
}

// Resend reissues the email from an error or expired phase. Rejections
// (wrong phase, no email, already in flight, disposed) are returned as
// errors without any network call. Backend failures are not errors: they
// land in the snapshot's ErrorMessage.
func (m *Machine) Resend(ctx context.Context) (domain.VerificationState, error) {
	m.mu.Lock()
	switch {
	case m.disposed:
		m.mu.Unlock()
		return domain.VerificationState{}, domain.ErrDisposed
	case !m.state.Phase.Resendable():
		s := m.state
		m.mu.Unlock()
		return s, fmt.Errorf("resend from %s: %w", s.Phase, domain.ErrInvalidTransition)
	case m.state.Email == "":
		s := m.state
		m.mu.Unlock()
		return s, domain.ErrResendUnavailable
	case m.state.ResendInFlight:
		s := m.state
		m.mu.Unlock()
		return s, domain.ErrBusy
	}
	prev := m.state
	inFlight := prev
	inFlight.ResendInFlight = true
	m.apply(inFlight)
	m.mu.Unlock()

	err := m.resender.Resend(ctx, m.req.FlowType, prev.Email)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return m.state, domain.ErrDisposed
	}
	if err != nil {
		slog.Warn("verification resend failed", "flow", m.req.FlowType, "err", err)
		failed := prev
		failed.ErrorMessage = domain.MessageOf(err, msgResendFailed)
		m.apply(failed)
		return m.state, nil
	}
	m.apply(domain.VerificationState{Phase: domain.PhaseLoading, FlowType: m.req.FlowType, Email: prev.Email})
	return m.state, nil
}

// Dispose tears the machine down: the redirect timer is cancelled and no
// later result, transition or navigation is applied. Safe to call twice.
func (m *Machine) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	m.disposed = true
	if m.redirect != nil {
		m.redirect.Cancel()
	}
}
