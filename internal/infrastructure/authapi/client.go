// Package authapi talks to the authentication backend. Every call is a
// single JSON POST: no retries, no caching, no deduplication.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-authflow/internal/config"
	"github.com/go-authflow/internal/domain"
)

const (
	PathVerify             = "/api/auth/verify"
	PathResendLogin        = "/api/auth/resend-login"
	PathResendSignup       = "/api/auth/resend-signup"
	PathResendVerification = "/api/auth/resend-verification"
	PathMagicLink          = "/api/auth/magic-link"
	PathSignup             = "/api/auth/signup"
)

const (
	msgNetwork            = "Network error. Please try again."
	msgVerificationFailed = "Verification failed"
)

// maxBodyBytes bounds how much of a backend response is decoded.
const maxBodyBytes = 1 << 20

// ResendEndpoint returns the backend path that reissues an email for flow.
func ResendEndpoint(flow domain.FlowType) string {
	switch flow {
	case domain.FlowSignup:
		return PathResendSignup
	case domain.FlowVerification:
		return PathResendVerification
	default:
		return PathResendLogin
	}
}

// Client is the HTTP client for the auth backend.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return New(cfg.AuthAPIBaseURL, &http.Client{Timeout: cfg.AuthAPITimeout})
}

// New builds a client against baseURL. A nil hc uses a 10s timeout client.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// responseBody is the subset of backend JSON the flows read.
type responseBody struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Verify validates a token. Transport failure, 410 and other non-2xx
// statuses are folded into the result rather than returned as errors.
func (c *Client) Verify(ctx context.Context, req domain.VerificationRequest) domain.VerificationResult {
	status, body, err := c.post(ctx, PathVerify, map[string]string{
		"token": req.Token,
		"type":  string(req.FlowType),
	})
	if err != nil {
		slog.Warn("verify request failed", "flow", req.FlowType, "err", err)
		return domain.VerificationResult{Kind: domain.ResultError, Message: msgNetwork}
	}
	switch {
	case status == http.StatusGone:
		return domain.VerificationResult{Kind: domain.ResultExpired, Email: body.Email, Message: body.Message}
	case status < 200 || status > 299:
		msg := body.Message
		if msg == "" {
			msg = msgVerificationFailed
		}
		return domain.VerificationResult{Kind: domain.ResultError, Email: body.Email, Message: msg}
	}
	return domain.VerificationResult{Kind: domain.ResultSuccess, Email: body.Email}
}

// Resend asks the backend to reissue the email for flow.
func (c *Client) Resend(ctx context.Context, flow domain.FlowType, email string) error {
	return c.send(ctx, ResendEndpoint(flow), map[string]string{"email": email}, true)
}

// RequestMagicLink asks for a login link. The backend has no failure body
// contract for this call, so its body is ignored.
func (c *Client) RequestMagicLink(ctx context.Context, email string) error {
	return c.send(ctx, PathMagicLink, map[string]string{"email": email}, false)
}

// Signup creates an account and triggers the verification email.
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) error {
	return c.send(ctx, PathSignup, req, true)
}

func (c *Client) send(ctx context.Context, path string, payload any, readMessage bool) error {
	status, body, err := c.post(ctx, path, payload)
	if err != nil {
		slog.Warn("auth backend unreachable", "path", path, "err", err)
		return &domain.Error{Kind: domain.ErrTransport}
	}
	if status >= 200 && status <= 299 {
		return nil
	}
	de := &domain.Error{Kind: domain.ErrDomain, Status: status, Email: body.Email}
	if readMessage {
		de.Message = body.Message
	}
	return de
}

// post returns a transport error only when no HTTP response was received.
func (c *Client) post(ctx context.Context, path string, payload any) (int, responseBody, error) {
	var body responseBody
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, body, fmt.Errorf("encode %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return 0, body, fmt.Errorf("build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, body, err
	}
	defer resp.Body.Close()

	// Bodies that are empty or not JSON read as zero values.
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil && err != io.EOF {
		slog.Debug("auth backend returned non-JSON body", "path", path, "status", resp.StatusCode)
	}
	return resp.StatusCode, body, nil
}
