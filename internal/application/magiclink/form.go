// Package magiclink is the passwordless sign-in form.
package magiclink

import (
	"context"

	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/pkg/sendstate"
	"github.com/go-authflow/internal/pkg/validate"
)

const msgFailed = "Failed to send login link. Please try again."

// Requester asks the backend to email a login link.
type Requester interface {
	RequestMagicLink(ctx context.Context, email string) error
}

type Form struct {
	requester Requester
	sm        *sendstate.Machine
}

func New(requester Requester) *Form {
	return &Form{requester: requester, sm: sendstate.New(nil)}
}

// Submit sends a login link to email. The backend's own message is never
// shown; every failure reads the same.
func (f *Form) Submit(ctx context.Context, email string) (domain.SendState, error) {
	if err := validate.Struct(&domain.MagicLinkRequest{Email: email}); err != nil {
		return f.sm.Snapshot(), err
	}
	return f.sm.Run(ctx, email, func(ctx context.Context) error {
		return f.requester.RequestMagicLink(ctx, email)
	}, sendstate.Narrative{
		Success:     "We've sent a secure login link to " + email,
		Rejected:    msgFailed,
		Unreachable: msgFailed,
	})
}
