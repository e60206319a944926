package outcome

import (
	"fmt"
	"time"

	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/pkg/urlutil"
)

// Outcome is a descriptor with the link state overlaid. The overlay lives
// here, never in the catalog.
type Outcome struct {
	domain.OutcomeDescriptor
	Message string `json:"message"`
	// ResendTo is the address a resend button targets; empty hides it.
	ResendTo string `json:"resend_to,omitempty"`
}

// Resolver overlays link parameters onto catalog descriptors.
type Resolver struct {
	dashboard string
	delay     time.Duration
}

// NewResolver builds a Resolver. Zero values fall back to /dashboard and
// the default redirect delay.
func NewResolver(dashboard string, delay time.Duration) *Resolver {
	if dashboard == "" {
		dashboard = "/dashboard"
	}
	if delay <= 0 {
		delay = DefaultRedirectDelayMs * time.Millisecond
	}
	return &Resolver{dashboard: dashboard, delay: delay}
}

// ResolveError builds the error surface for p. A caller-supplied message
// replaces the default one; resend is offered only when the key allows it
// and an email is known.
func (r *Resolver) ResolveError(p domain.LinkParams) Outcome {
	d := Errors.Classify(keyOrDefault(p.Type))
	o := Outcome{OutcomeDescriptor: d, Message: d.DefaultMessage}
	if p.Message != "" {
		o.Message = p.Message
	}
	if d.ShowResend && p.Email != "" {
		o.ResendTo = p.Email
	}
	return o
}

// ResolveSuccess builds the success surface for p.
func (r *Resolver) ResolveSuccess(p domain.LinkParams) Outcome {
	d := Success.Classify(keyOrDefault(p.Type))
	o := Outcome{OutcomeDescriptor: d, Message: d.DefaultMessage}
	switch d.Key {
	case KeySignup:
		if p.Email != "" {
			o.Message = fmt.Sprintf("Welcome! We've sent a verification link to %s. Please check your inbox to activate your account.", p.Email)
		}
	case KeyEmailSent:
		if p.Email != "" {
			o.Message = fmt.Sprintf("Please check your inbox at %s and follow the instructions in the email.", p.Email)
		}
	case KeyLogin:
		target := urlutil.SafeRedirect(p.Redirect, r.dashboard)
		o.PrimaryAction.Href = target
		o.AutoRedirect = &domain.AutoRedirect{TargetHref: target, DelayMs: r.delay.Milliseconds()}
	}
	return o
}

// ResendFlow maps an error key to the flow whose email a resend reissues.
// ok is false for keys that do not offer resend.
func ResendFlow(key string) (domain.FlowType, bool) {
	switch key {
	case KeyVerificationFailed:
		return domain.FlowVerification, true
	case KeyLoginFailed, KeyExpired:
		return domain.FlowLogin, true
	}
	return "", false
}

// EmailSentHref is where the error surface navigates after a resend.
func EmailSentHref(email string) string {
	return urlutil.WithQuery("/success", map[string]string{"type": KeyEmailSent, "email": email})
}

func keyOrDefault(k string) string {
	if k == "" {
		return KeyDefault
	}
	return k
}
