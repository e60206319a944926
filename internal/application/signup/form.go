// Package signup is the account creation form.
package signup

import (
	"context"
	"strings"

	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/pkg/sendstate"
	"github.com/go-authflow/internal/pkg/validate"
)

// Registrar creates an account and sends its verification email.
type Registrar interface {
	Signup(ctx context.Context, req domain.SignupRequest) error
}

type Form struct {
	registrar Registrar
	sm        *sendstate.Machine
}

func New(registrar Registrar) *Form {
	return &Form{registrar: registrar, sm: sendstate.New(nil)}
}

// Submit creates the account. The name is trimmed before validation so a
// blank name is rejected locally.
func (f *Form) Submit(ctx context.Context, name, email string) (domain.SendState, error) {
	req := domain.SignupRequest{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if err := validate.Struct(&req); err != nil {
		return f.sm.Snapshot(), err
	}
	return f.sm.Run(ctx, req.Email, func(ctx context.Context) error {
		return f.registrar.Signup(ctx, req)
	}, sendstate.Narrative{
		Success:     "We've sent a verification link to " + req.Email + ". Click the link to activate your account.",
		Rejected:    "Failed to create account",
		Unreachable: "Failed to create account. Please try again.",
	})
}
