// Package validate checks form input before anything reaches the network.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Reason says why a field was rejected.
type Reason string

const (
	Required      Reason = "required"
	InvalidEmail  Reason = "invalid-email"
	TooShort      Reason = "too-short"
	Mismatch      Reason = "mismatch"
	SameAsCurrent Reason = "same-as-current"
)

// Error is a ValidationError: a locally rejected form field.
type Error struct {
	Field  string
	Reason Reason
}

func (e *Error) Error() string {
	return "invalid " + e.Field + ": " + string(e.Reason)
}

// AsError extracts a validation *Error from err.
func AsError(err error) (*Error, bool) {
	var ve *Error
	ok := errors.As(err, &ve)
	return ve, ok
}

// LoginForm is the sign-in screen input.
type LoginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterForm is the sign-up screen input. Name is optional.
type RegisterForm struct {
	Name     string `validate:"omitempty,min=2"`
	Email    string `validate:"required,mailbox"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"required,eqfield=Password"`
}

// ChangePasswordForm is the change-password screen input.
type ChangePasswordForm struct {
	Current string `validate:"required"`
	New     string `validate:"required,min=6,nefield=Current"`
	Confirm string `validate:"required,eqfield=New"`
}

// ResetForm is the forgot-password input.
type ResetForm struct {
	Email string `validate:"required"`
}

type taskTitle struct {
	Title string `validate:"required"`
}

var mailboxPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
			return mailboxPattern.MatchString(fl.Field().String())
		})
	})
	return v
}

// Struct validates one of the form types and returns the first failure as
// an *Error. Missing fields are reported before any other rule; among the
// rest, length and format come before cross-field comparisons.
func Struct(form any) error {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	best := fieldErrs[0]
	for _, fe := range fieldErrs[1:] {
		if rank(fe.Tag()) < rank(best.Tag()) {
			best = fe
		}
	}
	return &Error{Field: strings.ToLower(best.Field()), Reason: reasonFor(best.Tag())}
}

// Title trims title and rejects it if nothing is left.
func Title(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if err := Struct(taskTitle{Title: trimmed}); err != nil {
		return "", err
	}
	return trimmed, nil
}

func rank(tag string) int {
	switch tag {
	case "required":
		return 0
	case "min", "mailbox":
		return 1
	case "eqfield":
		return 2
	default:
		return 3
	}
}

func reasonFor(tag string) Reason {
	switch tag {
	case "required":
		return Required
	case "mailbox":
		return InvalidEmail
	case "min":
		return TooShort
	case "eqfield":
		return Mismatch
	case "nefield":
		return SameAsCurrent
	default:
		return Reason(tag)
	}
}
