package http

import (
	"context"

	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/pkg/schedule"
)

// AuthAPI is the minimal interface the router requires from the auth backend.
type AuthAPI interface {
	Verify(ctx context.Context, req domain.VerificationRequest) domain.VerificationResult
	Resend(ctx context.Context, flow domain.FlowType, email string) error
	RequestMagicLink(ctx context.Context, email string) error
	Signup(ctx context.Context, req domain.SignupRequest) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AuthAPI AuthAPI
	// Scheduler runs deferred redirects; nil means real timers.
	Scheduler schedule.Scheduler
}
