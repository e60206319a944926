package http

import (
	"context"
	"net/http"

	"github.com/go-authflow/internal/application/outcome"
	"github.com/go-authflow/internal/config"
	"github.com/go-authflow/internal/transport/http/handler"
	appmiddleware "github.com/go-authflow/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. Mounted flows are
// disposed and background sweepers stopped once ctx is done.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Applied to every endpoint that makes the backend send an email.
	sendRL, err := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	// Applied to every endpoint that mounts a registry entry.
	mountRL, err := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.MountRateRPS), cfg.MountRateBurst, cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	healthH := handler.NewHealthHandler()
	verifyH := handler.NewVerificationHandler(deps.AuthAPI, deps.AuthAPI, handler.VerificationConfig{
		RedirectDelay: cfg.LoginRedirectDelay,
		Dashboard:     cfg.DashboardPath,
		IdleTTL:       cfg.FlowIdleTTL,
		MaxLive:       cfg.FlowMaxLive,
		Scheduler:     deps.Scheduler,
	})
	outcomeH := handler.NewOutcomeHandler(outcome.NewResolver(cfg.DashboardPath, cfg.LoginRedirectDelay), deps.AuthAPI)
	resendH := handler.NewResendFormHandler(deps.AuthAPI, cfg.FlowIdleTTL, cfg.FlowMaxLive)
	formH := handler.NewFormHandler(deps.AuthAPI, deps.AuthAPI)

	go func() {
		<-ctx.Done()
		verifyH.Close()
		resendH.Close()
	}()

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.With(mountRL.Limit).Post("/verifications", verifyH.Create)
		r.Get("/verifications/{id}", verifyH.Get)
		r.Delete("/verifications/{id}", verifyH.Delete)
		r.With(sendRL.Limit).Post("/verifications/{id}/resend", verifyH.Resend)

		r.Get("/outcomes/error", outcomeH.Error)
		r.Get("/outcomes/success", outcomeH.Success)
		r.With(sendRL.Limit).Post("/outcomes/error/resend", outcomeH.Resend)

		r.Get("/resend/options", resendH.Options)
		r.With(mountRL.Limit).Post("/resend-forms", resendH.Create)
		r.Get("/resend-forms/{id}", resendH.Get)
		r.Delete("/resend-forms/{id}", resendH.Delete)
		r.With(sendRL.Limit).Post("/resend-forms/{id}/submit", resendH.Submit)
		r.Post("/resend-forms/{id}/reset", resendH.Reset)

		r.With(sendRL.Limit).Post("/magic-link", formH.MagicLink)
		r.With(sendRL.Limit).Post("/signup", formH.Signup)
	})

	return r, nil
}
