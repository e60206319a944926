package domain

// SendPhase is the phase of an email-sending form.
type SendPhase string

const (
	SendIdle    SendPhase = "idle"
	SendSending SendPhase = "sending"
	SendSent    SendPhase = "sent"
	SendFailed  SendPhase = "failed"
)

// SendState is the snapshot of an email-sending form.
type SendState struct {
	Phase   SendPhase `json:"phase"`
	Error   string    `json:"error,omitempty"`
	Email   string    `json:"email,omitempty"`
	Message string    `json:"message,omitempty"` // success narrative once sent
}

// SignupRequest is the body of an account creation call.
type SignupRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,contains=@"`
}

// MagicLinkRequest is the body of a magic-link login call.
type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,contains=@"`
}
