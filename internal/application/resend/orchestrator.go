// Package resend is the standalone "resend an email" form: the user picks
// a flow type and an address, and the matching backend endpoint reissues
// the email.
package resend

import (
	"context"
	"sync"

	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/infrastructure/authapi"
	"github.com/go-authflow/internal/pkg/sendstate"
	"github.com/go-authflow/internal/pkg/validate"
)

// Option is the per-flow row of the resend form.
type Option struct {
	FlowType       domain.FlowType `json:"flow_type"`
	Label          string          `json:"label"`
	Description    string          `json:"description"`
	SuccessMessage string          `json:"success_message"`
	Endpoint       string          `json:"endpoint"`
}

var options = []Option{
	{
		FlowType:       domain.FlowLogin,
		Label:          "Magic login link",
		Description:    "Send a new magic login link",
		SuccessMessage: "We've sent a new magic login link to your email address.",
		Endpoint:       authapi.ResendEndpoint(domain.FlowLogin),
	},
	{
		FlowType:       domain.FlowSignup,
		Label:          "Account verification email",
		Description:    "Resend account verification email",
		SuccessMessage: "We've resent the account verification email. Please check your inbox.",
		Endpoint:       authapi.ResendEndpoint(domain.FlowSignup),
	},
	{
		FlowType:       domain.FlowVerification,
		Label:          "Email verification link",
		Description:    "Resend email verification link",
		SuccessMessage: "We've sent a new verification link to your email address.",
		Endpoint:       authapi.ResendEndpoint(domain.FlowVerification),
	},
}

// Options lists the three choices in display order.
func Options() []Option {
	return append([]Option(nil), options...)
}

// Lookup returns the option for flow. Unknown flows get the login option
// and ok=false.
func Lookup(flow domain.FlowType) (Option, bool) {
	for _, o := range options {
		if o.FlowType == flow {
			return o, true
		}
	}
	return options[0], false
}

// Sender reissues an email.
type Sender interface {
	Resend(ctx context.Context, flow domain.FlowType, email string) error
}

// State is the form snapshot.
type State struct {
	domain.SendState
	FlowType domain.FlowType `json:"flow_type,omitempty"`
}

// Orchestrator owns one resend form.
type Orchestrator struct {
	sender Sender
	sm     *sendstate.Machine

	mu   sync.Mutex
	flow domain.FlowType
}

func New(sender Sender) *Orchestrator {
	return &Orchestrator{sender: sender, sm: sendstate.New(nil)}
}

func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return State{SendState: o.sm.Snapshot(), FlowType: o.flow}
}

// Submit validates sel locally and sends it. Validation failures and
// submissions while sending (domain.ErrBusy) or after sent
// (domain.ErrInvalidTransition) never reach the network.
func (o *Orchestrator) Submit(ctx context.Context, sel domain.ResendSelection) (State, error) {
	if err := validate.Struct(&sel); err != nil {
		return o.Snapshot(), err
	}
	opt, _ := Lookup(sel.FlowType)
	st, err := o.sm.Run(ctx, sel.Email, func(ctx context.Context) error {
		o.mu.Lock()
		o.flow = sel.FlowType
		o.mu.Unlock()
		return o.sender.Resend(ctx, sel.FlowType, sel.Email)
	}, sendstate.Narrative{
		Success:     opt.SuccessMessage + " Please check your inbox at " + sel.Email + ".",
		Rejected:    "Failed to send email",
		Unreachable: "Failed to send email. Please try again.",
	})
	if err != nil {
		return o.Snapshot(), err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return State{SendState: st, FlowType: o.flow}, nil
}

// Reset is the "send another email" edge from sent back to idle.
func (o *Orchestrator) Reset() error {
	if err := o.sm.Reset(); err != nil {
		return err
	}
	o.mu.Lock()
	o.flow = ""
	o.mu.Unlock()
	return nil
}

// Dispose lets the orchestrator live in a flow registry; it holds no
// timers, so there is nothing to cancel.
func (o *Orchestrator) Dispose() {}
