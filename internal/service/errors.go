package service

import (
	"errors"
	"fmt"
)

// AuthCode categorizes identity provider failures.
type AuthCode string

const (
	CodeInvalidCredentials   AuthCode = "invalid-credentials"
	CodeEmailInUse           AuthCode = "email-in-use"
	CodeWeakPassword         AuthCode = "weak-password"
	CodeInvalidEmail         AuthCode = "invalid-email"
	CodeWrongCurrentPassword AuthCode = "wrong-current-password"
	CodeRequiresRecentLogin  AuthCode = "requires-recent-login"
	CodeNoActiveSession      AuthCode = "no-active-session"
	CodeUnknown              AuthCode = "unknown"
)

// AuthError is a categorized identity provider failure.
type AuthError struct {
	Code AuthCode
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth: " + string(e.Code)
	}
	return fmt.Sprintf("auth: %s: %v", e.Code, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError wraps err with code.
func NewAuthError(code AuthCode, err error) error {
	return &AuthError{Code: code, Err: err}
}

// AuthCodeOf returns the AuthCode carried by err, or "" if err is not an AuthError.
func AuthCodeOf(err error) AuthCode {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// ErrNoActiveSession is returned when an operation needs a signed-in user.
var ErrNoActiveSession = &AuthError{Code: CodeNoActiveSession}

// StoreError is any document store failure. Op names the failed operation
// ("create", "list", "update", "delete").
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// ErrFetchFailed is returned when the quote API is unreachable or answers
// with something other than a usable quote.
var ErrFetchFailed = errors.New("quote fetch failed")

// NotificationError is a scheduling or permission failure. It is logged,
// never shown to the user.
type NotificationError struct {
	Op  string
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification %s: %v", e.Op, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
