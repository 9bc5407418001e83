package commands

import (
	"errors"
	"fmt"
	"io"

	"planify/internal/exitcode"
	"planify/internal/i18n"
	"planify/internal/prompt"
	"planify/internal/service"
	"planify/internal/tasklist"
	"planify/internal/validate"
)

// ErrNoBackend is reported when the identity provider is not configured.
var ErrNoBackend = errors.New("backend not configured (set firebase.api_key and firebase.project_id in config.yaml)")

var authMessages = map[service.AuthCode]string{
	service.CodeInvalidCredentials:   i18n.AuthInvalidCredentials,
	service.CodeEmailInUse:           i18n.AuthEmailInUse,
	service.CodeWeakPassword:         i18n.AuthWeakPassword,
	service.CodeInvalidEmail:         i18n.AuthInvalidEmail,
	service.CodeWrongCurrentPassword: i18n.AuthWrongCurrentPassword,
	service.CodeRequiresRecentLogin:  i18n.AuthRequiresRecentLogin,
	service.CodeNoActiveSession:      i18n.AuthNoActiveSession,
}

var storeMessages = map[string]string{
	"list":   i18n.StoreLoadErr,
	"create": i18n.StoreCreateErr,
	"update": i18n.StoreUpdateErr,
	"delete": i18n.StoreDeleteErr,
}

// reportError prints err as a localized "error: ..." line and returns the
// exit code for its category. Store failures are logged, not shown.
func reportError(env *Env, errOut io.Writer, err error) int {
	msg, code := describeError(env, err)
	fmt.Fprintf(errOut, "error: %s\n", msg)
	return code
}

func describeError(env *Env, err error) (string, int) {
	if ve, ok := validate.AsError(err); ok {
		return env.T(validationMessage(ve)), exitcode.UserError
	}
	if errors.Is(err, prompt.ErrCancelled) {
		return env.T(i18n.Cancelled), exitcode.UserError
	}
	if errors.Is(err, tasklist.ErrNotFound) {
		return err.Error(), exitcode.UserError
	}

	var ae *service.AuthError
	if errors.As(err, &ae) {
		if key, ok := authMessages[ae.Code]; ok {
			return env.T(key), exitcode.AuthError
		}
		detail := "unknown error"
		if ae.Err != nil {
			detail = ae.Err.Error()
		}
		return env.T(i18n.AuthUnknown, detail), exitcode.AuthError
	}

	var se *service.StoreError
	if errors.As(err, &se) {
		env.log().Error("store failure", "op", se.Op, "err", se.Err)
		key, ok := storeMessages[se.Op]
		if !ok {
			key = i18n.StoreLoadErr
		}
		return env.T(key), exitcode.BackendError
	}

	return err.Error(), exitcode.BackendError
}

func validationMessage(ve *validate.Error) string {
	switch ve.Reason {
	case validate.Required:
		switch ve.Field {
		case "title":
			return i18n.ValTitleRequired
		case "email":
			return i18n.ValEmailRequired
		}
		return i18n.ValFillAllFields
	case validate.InvalidEmail:
		return i18n.ValInvalidEmail
	case validate.TooShort:
		if ve.Field == "name" {
			return i18n.ValNameShort
		}
		return i18n.ValPasswordShort
	case validate.Mismatch:
		return i18n.ValPasswordsDiffer
	case validate.SameAsCurrent:
		return i18n.ValSamePassword
	}
	return i18n.ValFillAllFields
}
