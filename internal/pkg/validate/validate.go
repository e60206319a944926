package validate

import (
	"fmt"
	"strings"

	"github.com/go-authflow/internal/domain"
	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

// fieldMessages holds the user-facing text for well-known fields.
var fieldMessages = map[string]string{
	"Email":    "Please enter a valid email address",
	"Name":     "Please enter your full name",
	"FlowType": "Please choose which email you need",
}

// Struct validates the given struct using its validate tags.
// Returns a *domain.Error of kind domain.ErrValidation or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			if m, ok := fieldMessages[fe.Field()]; ok {
				msgs = append(msgs, m)
				continue
			}
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return domain.NewValidationError(strings.Join(msgs, "; "))
	}
	return nil
}

// Email runs the client-side pre-check on a single address: non-empty and
// containing '@'. The backend stays authoritative.
func Email(email string) error {
	if err := v.Var(email, "required,contains=@"); err != nil {
		return domain.NewValidationError(fieldMessages["Email"])
	}
	return nil
}
