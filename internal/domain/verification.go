package domain

// FlowType names the authentication journey a token or action belongs to.
type FlowType string

const (
	FlowLogin        FlowType = "login"
	FlowSignup       FlowType = "signup"
	FlowVerification FlowType = "verification"
)

// ParseVerifyFlow maps the inbound `type` link parameter to a verify flow.
// Anything other than "signup" is treated as a login link.
func ParseVerifyFlow(raw string) FlowType {
	if FlowType(raw) == FlowSignup {
		return FlowSignup
	}
	return FlowLogin
}

// Valid reports whether f is one of the three resend flow types.
func (f FlowType) Valid() bool {
	switch f {
	case FlowLogin, FlowSignup, FlowVerification:
		return true
	}
	return false
}

// VerificationRequest is derived once from the inbound link parameters.
type VerificationRequest struct {
	Token    string   `json:"token"`
	FlowType FlowType `json:"type"`
	Redirect string   `json:"redirect,omitempty"`
}

// ResultKind discriminates VerificationResult.
type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	ResultExpired ResultKind = "expired"
	ResultInvalid ResultKind = "invalid"
	ResultError   ResultKind = "error"
)

// VerificationResult is the outcome of one verify call. Email is set on
// success and, when the backend echoes it, on expired/error so a resend can
// be offered.
type VerificationResult struct {
	Kind    ResultKind `json:"kind"`
	Email   string     `json:"email,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Phase is the externally observed phase of a verification flow.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
	PhaseExpired Phase = "expired"
	PhaseInvalid Phase = "invalid"
)

// Resendable reports whether a resend may be requested from p.
func (p Phase) Resendable() bool {
	return p == PhaseError || p == PhaseExpired
}

// RedirectPlan describes a scheduled one-shot navigation.
type RedirectPlan struct {
	Target  string `json:"target"`
	DelayMs int64  `json:"delay_ms"`
}

// VerificationState is an immutable snapshot; every transition replaces it.
type VerificationState struct {
	Phase          Phase         `json:"phase"`
	FlowType       FlowType      `json:"flow_type"`
	Email          string        `json:"email,omitempty"`
	ErrorMessage   string        `json:"error_message,omitempty"`
	ResendInFlight bool          `json:"resend_in_flight"`
	Redirect       *RedirectPlan `json:"redirect,omitempty"`
}

// CanResend reports whether the resend action should be offered.
func (s VerificationState) CanResend() bool {
	return s.Phase.Resendable() && s.Email != "" && !s.ResendInFlight
}

// ResendSelection is the user's choice on the resend form.
type ResendSelection struct {
	FlowType FlowType `json:"flow_type" validate:"required,oneof=login signup verification"`
	Email    string   `json:"email" validate:"required,contains=@"`
}
