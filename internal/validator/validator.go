// Package validator wraps the go-playground validator for the client's
// pre-flight checks: struct tags on outbound requests plus the phone and
// OTP formats the auth flow enforces before contacting the backend.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidPhone = errors.New("enter a valid 10-digit mobile number")
	ErrInvalidOTP   = errors.New("enter the 6-digit code")
)

// Validator is a wrapper around the validator library.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator instance.
func New() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateStruct validates a struct based on its tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// FieldErrors flattens a validation error into field → message pairs for
// inline display. Non-validation errors produce an empty map.
func (v *Validator) FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "this field is required"
		case "gte":
			out[fe.Field()] = "must be " + fe.Param() + " or more"
		default:
			out[fe.Field()] = "invalid value"
		}
	}
	return out
}

// Phone checks the mobile number a user submits before an OTP is requested:
// an optional leading + followed by 10 to 15 digits.
func (v *Validator) Phone(phone string) error {
	p := strings.TrimSpace(phone)
	p = strings.TrimPrefix(p, "+")
	if len(p) < 10 || len(p) > 15 || !allDigits(p) {
		return ErrInvalidPhone
	}
	return nil
}

// OTP checks the one-time password format: exactly six digits.
func (v *Validator) OTP(code string) error {
	c := strings.TrimSpace(code)
	if len(c) != 6 || !allDigits(c) {
		return ErrInvalidOTP
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
