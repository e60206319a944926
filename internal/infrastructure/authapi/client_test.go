package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-authflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// backend answers every request with status and body, recording the call.
type backend struct {
	calls    int32
	path     string
	ctype    string
	received map[string]string
}

func newBackend(t *testing.T, status int, body string) (*backend, *Client) {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.calls, 1)
		b.path = r.URL.Path
		b.ctype = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&b.received)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return b, New(srv.URL, srv.Client())
}

func TestVerify_Success(t *testing.T) {
	b, c := newBackend(t, http.StatusOK, `{"email":"a@b.com"}`)

	res := c.Verify(context.Background(), domain.VerificationRequest{Token: "abc", FlowType: domain.FlowLogin})

	assert.Equal(t, domain.VerificationResult{Kind: domain.ResultSuccess, Email: "a@b.com"}, res)
	assert.Equal(t, int32(1), b.calls)
	assert.Equal(t, PathVerify, b.path)
	assert.Equal(t, "application/json", b.ctype)
	assert.Equal(t, map[string]string{"token": "abc", "type": "login"}, b.received)
}

func TestVerify_GoneIsExpired(t *testing.T) {
	_, c := newBackend(t, http.StatusGone, `{"email":"u@x.com"}`)
	res := c.Verify(context.Background(), domain.VerificationRequest{Token: "abc", FlowType: domain.FlowSignup})
	assert.Equal(t, domain.ResultExpired, res.Kind)
	assert.Equal(t, "u@x.com", res.Email)
}

func TestVerify_OtherStatusUsesBodyMessage(t *testing.T) {
	_, c := newBackend(t, http.StatusConflict, `{"message":"already used","email":"u@x.com"}`)
	res := c.Verify(context.Background(), domain.VerificationRequest{Token: "abc", FlowType: domain.FlowLogin})
	assert.Equal(t, domain.VerificationResult{Kind: domain.ResultError, Email: "u@x.com", Message: "already used"}, res)
}

func TestVerify_OtherStatusWithoutMessage(t *testing.T) {
	_, c := newBackend(t, http.StatusInternalServerError, `not json`)
	res := c.Verify(context.Background(), domain.VerificationRequest{Token: "abc"})
	assert.Equal(t, domain.ResultError, res.Kind)
	assert.Equal(t, "Verification failed", res.Message)
}

func TestVerify_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL, nil)

	res := c.Verify(context.Background(), domain.VerificationRequest{Token: "abc"})
	assert.Equal(t, domain.VerificationResult{Kind: domain.ResultError, Message: "Network error. Please try again."}, res)
}

func TestResendEndpoint(t *testing.T) {
	assert.Equal(t, "/api/auth/resend-login", ResendEndpoint(domain.FlowLogin))
	assert.Equal(t, "/api/auth/resend-signup", ResendEndpoint(domain.FlowSignup))
	assert.Equal(t, "/api/auth/resend-verification", ResendEndpoint(domain.FlowVerification))
}

func TestResendEndpoint_IsPure(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		flow := domain.FlowType(rapid.SampledFrom([]string{"login", "signup", "verification", "", "other"}).Draw(rt, "flow"))
		if ResendEndpoint(flow) != ResendEndpoint(flow) {
			rt.Fatalf("endpoint for %q is not stable", flow)
		}
		if !flow.Valid() && ResendEndpoint(flow) != PathResendLogin {
			rt.Fatalf("unknown flow %q should fall back to resend-login", flow)
		}
	})
}

func TestResend_Success(t *testing.T) {
	b, c := newBackend(t, http.StatusOK, `{}`)
	require.NoError(t, c.Resend(context.Background(), domain.FlowVerification, "a@b.com"))
	assert.Equal(t, PathResendVerification, b.path)
	assert.Equal(t, map[string]string{"email": "a@b.com"}, b.received)
}

func TestResend_DomainError(t *testing.T) {
	_, c := newBackend(t, http.StatusTooManyRequests, `{"message":"slow down"}`)
	err := c.Resend(context.Background(), domain.FlowLogin, "a@b.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDomain)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, http.StatusTooManyRequests, de.Status)
	assert.Equal(t, "slow down", de.Message)
}

func TestResend_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	err := New(srv.URL, nil).Resend(context.Background(), domain.FlowSignup, "a@b.com")
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestRequestMagicLink_IgnoresFailureBody(t *testing.T) {
	b, c := newBackend(t, http.StatusBadRequest, `{"message":"internal detail"}`)
	err := c.RequestMagicLink(context.Background(), "a@b.com")
	require.ErrorIs(t, err, domain.ErrDomain)
	assert.Equal(t, "", domain.MessageOf(err, ""))
	assert.Equal(t, PathMagicLink, b.path)
}

func TestSignup_SendsNameAndEmail(t *testing.T) {
	b, c := newBackend(t, http.StatusCreated, ``)
	require.NoError(t, c.Signup(context.Background(), domain.SignupRequest{Name: "Ada", Email: "ada@x.com"}))
	assert.Equal(t, PathSignup, b.path)
	assert.Equal(t, map[string]string{"name": "Ada", "email": "ada@x.com"}, b.received)
}
