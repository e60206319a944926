// Package outcome maps classification keys from link state onto the
// presentation contract of the error and success surfaces.
package outcome

import (
	"sort"

	"github.com/go-authflow/internal/domain"
)

// Error surface keys.
const (
	KeyVerificationFailed = "verification-failed"
	KeyLoginFailed        = "login-failed"
	KeyExpired            = "expired"
	KeyRateLimit          = "rate-limit"
	KeyNetwork            = "network"
	KeyDefault            = "default"
)

// Success surface keys. KeyDefault is shared.
const (
	KeySignup        = "signup"
	KeyLogin         = "login"
	KeyVerification  = "verification"
	KeyPasswordReset = "password-reset"
	KeyEmailSent     = "email-sent"
)

// DefaultRedirectDelayMs is the login auto-redirect delay.
const DefaultRedirectDelayMs = 2000

// Catalog is a closed, read-only table of descriptors. Lookups hand out
// deep copies so nothing a caller does can reach the table.
type Catalog struct {
	entries map[string]domain.OutcomeDescriptor
}

func newCatalog(ds ...domain.OutcomeDescriptor) *Catalog {
	c := &Catalog{entries: make(map[string]domain.OutcomeDescriptor, len(ds))}
	for _, d := range ds {
		c.entries[d.Key] = d
	}
	if _, ok := c.entries[KeyDefault]; !ok {
		panic("outcome: catalog without a default entry")
	}
	return c
}

// Classify returns the descriptor for key, or the default one for unknown
// keys.
func (c *Catalog) Classify(key string) domain.OutcomeDescriptor {
	d, ok := c.entries[key]
	if !ok {
		d = c.entries[KeyDefault]
	}
	return d.Clone()
}

// Known reports whether key has its own entry.
func (c *Catalog) Known(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Keys lists every key in the catalog in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	backToSignIn = domain.Action{Text: "Back to Sign In", Href: "/"}
	checkEmail   = domain.Action{Text: "Check Email", Href: "#", Trigger: domain.TriggerOpenMailClient}
)

func action(a domain.Action) *domain.Action { return &a }

// Errors is the error surface catalog.
var Errors = newCatalog(
	domain.OutcomeDescriptor{
		Key:             KeyVerificationFailed,
		Title:           "Verification Failed",
		Description:     "We couldn't verify your email address.",
		DefaultMessage:  "The verification link is invalid or has expired. Please request a new verification email.",
		Icon:            domain.IconError,
		PrimaryAction:   domain.Action{Text: "Request New Link", Href: "/signup"},
		SecondaryAction: action(backToSignIn),
		ShowResend:      true,
	},
	domain.OutcomeDescriptor{
		Key:             KeyLoginFailed,
		Title:           "Sign In Failed",
		Description:     "We couldn't sign you in.",
		DefaultMessage:  "The login link is invalid or has expired. Please request a new login link.",
		Icon:            domain.IconError,
		PrimaryAction:   domain.Action{Text: "Try Again", Href: "/"},
		SecondaryAction: action(domain.Action{Text: "Create Account", Href: "/signup"}),
		ShowResend:      true,
	},
	domain.OutcomeDescriptor{
		Key:            KeyExpired,
		Title:          "Link Expired",
		Description:    "This link is no longer valid.",
		DefaultMessage: "This link has expired for security reasons. Please request a new one.",
		Icon:           domain.IconWarning,
		PrimaryAction:  domain.Action{Text: "Get New Link", Href: "/"},
		ShowResend:     true,
	},
	domain.OutcomeDescriptor{
		Key:            KeyRateLimit,
		Title:          "Too Many Requests",
		Description:    "Please wait before trying again.",
		DefaultMessage: "You've made too many requests. Please wait a few minutes before trying again.",
		Icon:           domain.IconWarning,
		PrimaryAction:  backToSignIn,
	},
	domain.OutcomeDescriptor{
		Key:             KeyNetwork,
		Title:           "Connection Error",
		Description:     "Unable to connect to our servers.",
		DefaultMessage:  "Please check your internet connection and try again.",
		Icon:            domain.IconRetry,
		PrimaryAction:   domain.Action{Text: "Try Again", Href: "#", Trigger: domain.TriggerReload},
		SecondaryAction: action(backToSignIn),
	},
	domain.OutcomeDescriptor{
		Key:             KeyDefault,
		Title:           "Something Went Wrong",
		Description:     "An unexpected error occurred.",
		DefaultMessage:  "We're sorry, but something went wrong. Please try again or contact support if the problem persists.",
		Icon:            domain.IconError,
		PrimaryAction:   domain.Action{Text: "Try Again", Href: "/"},
		SecondaryAction: action(domain.Action{Text: "Contact Support", Href: "/support"}),
	},
)

// Success is the success surface catalog.
var Success = newCatalog(
	domain.OutcomeDescriptor{
		Key:             KeySignup,
		Title:           "Account Created!",
		Description:     "Your account has been successfully created.",
		DefaultMessage:  "Welcome! Please check your email for a verification link to activate your account.",
		Icon:            domain.IconSuccess,
		PrimaryAction:   checkEmail,
		SecondaryAction: action(backToSignIn),
	},
	domain.OutcomeDescriptor{
		Key:            KeyLogin,
		Title:          "Successfully Signed In!",
		Description:    "You have been logged in to your account.",
		DefaultMessage: "Welcome back! You're being redirected to your dashboard.",
		Icon:           domain.IconSuccess,
		PrimaryAction:  domain.Action{Text: "Go to Dashboard", Href: "/dashboard"},
		AutoRedirect:   &domain.AutoRedirect{TargetHref: "/dashboard", DelayMs: DefaultRedirectDelayMs},
	},
	domain.OutcomeDescriptor{
		Key:            KeyVerification,
		Title:          "Email Verified!",
		Description:    "Your email address has been successfully verified.",
		DefaultMessage: "Great! Your account is now active and you can start using all features.",
		Icon:           domain.IconSuccess,
		PrimaryAction:  domain.Action{Text: "Continue to Sign In", Href: "/"},
	},
	domain.OutcomeDescriptor{
		Key:            KeyPasswordReset,
		Title:          "Password Reset!",
		Description:    "Your password has been successfully updated.",
		DefaultMessage: "You can now sign in with your new password.",
		Icon:           domain.IconSuccess,
		PrimaryAction:  domain.Action{Text: "Sign In", Href: "/"},
	},
	domain.OutcomeDescriptor{
		Key:             KeyEmailSent,
		Title:           "Email Sent!",
		Description:     "We've sent you an email with further instructions.",
		DefaultMessage:  "Please check your inbox and follow the instructions in the email.",
		Icon:            domain.IconMail,
		PrimaryAction:   checkEmail,
		SecondaryAction: action(backToSignIn),
	},
	domain.OutcomeDescriptor{
		Key:            KeyDefault,
		Title:          "Success!",
		Description:    "Your request has been completed successfully.",
		DefaultMessage: "Everything went smoothly. You can continue using the application.",
		Icon:           domain.IconSuccess,
		PrimaryAction:  domain.Action{Text: "Continue", Href: "/"},
	},
)

// ErrorKeys returns the closed key set of the error surface.
func ErrorKeys() []string {
	return []string{KeyVerificationFailed, KeyLoginFailed, KeyExpired, KeyRateLimit, KeyNetwork, KeyDefault}
}

// SuccessKeys returns the closed key set of the success surface.
func SuccessKeys() []string {
	return []string{KeySignup, KeyLogin, KeyVerification, KeyPasswordReset, KeyEmailSent, KeyDefault}
}
