// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion. A failed quote fetch or
	// notification still exits with Success.
	Success = 0

	// UserError indicates bad arguments, an unknown task number, a rejected
	// form field or a cancelled prompt.
	UserError = 1

	// AuthError indicates no session or an identity provider rejection.
	AuthError = 2

	// BackendError indicates a task store or other remote failure.
	BackendError = 3
)
