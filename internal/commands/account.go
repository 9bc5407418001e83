package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"planify/internal/exitcode"
	"planify/internal/i18n"
	"planify/internal/validate"
)

func init() {
	Register(&ResetPasswordCmd{})
	Register(&PasswdCmd{})
	Register(&DeleteAccountCmd{})
}

// ResetPasswordCmd implements the reset-password command.
type ResetPasswordCmd struct {
	email string
}

// SetEmail sets the --email flag (for testing).
func (c *ResetPasswordCmd) SetEmail(email string) {
	c.email = email
}

func (c *ResetPasswordCmd) Name() string      { return "reset-password" }
func (c *ResetPasswordCmd) Aliases() []string { return []string{"forgot"} }
func (c *ResetPasswordCmd) Synopsis() string  { return "Email a password reset link" }
func (c *ResetPasswordCmd) Usage() string     { return "planify reset-password [--email <email>]" }
func (c *ResetPasswordCmd) NeedsAuth() bool   { return false }

func (c *ResetPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
}

func (c *ResetPasswordCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if code, ok := requireBackend(env, errOut); !ok {
		return code
	}

	email := c.email
	if email == "" && env.Prompt != nil {
		if err := env.Prompt.Text(ctx, i18n.FieldEmail, &email); err != nil {
			return reportError(env, errOut, err)
		}
	}

	if err := env.Auth.SendPasswordReset(ctx, email); err != nil {
		return reportError(env, errOut, err)
	}

	if !env.quiet() {
		fmt.Fprintln(out, env.T(i18n.ResetSent, strings.TrimSpace(email)))
	}
	return exitcode.Success
}

// PasswdCmd implements the passwd command.
type PasswdCmd struct {
	current string
	next    string
	confirm string
}

// SetForm sets all password flags (for testing).
func (c *PasswdCmd) SetForm(current, next, confirm string) {
	c.current, c.next, c.confirm = current, next, confirm
}

func (c *PasswdCmd) Name() string      { return "passwd" }
func (c *PasswdCmd) Aliases() []string { return []string{"change-password"} }
func (c *PasswdCmd) Synopsis() string  { return "Change the account password" }
func (c *PasswdCmd) Usage() string {
	return "planify passwd [--current <password>] [--new <password>] [--confirm <password>]"
}
func (c *PasswdCmd) NeedsAuth() bool { return false }

func (c *PasswdCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.current, "current", "", "")
	fs.StringVar(&c.next, "new", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
}

func (c *PasswdCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if code, ok := requireBackend(env, errOut); !ok {
		return code
	}

	form := validate.ChangePasswordForm{Current: c.current, New: c.next, Confirm: c.confirm}
	if env.Prompt != nil {
		if err := env.Prompt.ChangePassword(ctx, &form); err != nil {
			return reportError(env, errOut, err)
		}
	}

	if err := env.Auth.ChangePassword(ctx, form); err != nil {
		return reportError(env, errOut, err)
	}

	if !env.quiet() {
		fmt.Fprintln(out, env.T(i18n.PasswordChanged))
	}
	return exitcode.Success
}

// DeleteAccountCmd implements the delete-account command.
type DeleteAccountCmd struct {
	yes bool
}

// SetYes sets the --yes flag (for testing).
func (c *DeleteAccountCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *DeleteAccountCmd) Name() string      { return "delete-account" }
func (c *DeleteAccountCmd) Aliases() []string { return nil }
func (c *DeleteAccountCmd) Synopsis() string  { return "Permanently delete the account" }
func (c *DeleteAccountCmd) Usage() string     { return "planify delete-account [--yes]" }
func (c *DeleteAccountCmd) NeedsAuth() bool   { return false }

func (c *DeleteAccountCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
}

func (c *DeleteAccountCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if code, ok := requireBackend(env, errOut); !ok {
		return code
	}

	cred, err := env.Auth.Current()
	if err != nil {
		return reportError(env, errOut, err)
	}
	if cred == nil {
		fmt.Fprintf(errOut, "error: %s\n", env.T(i18n.AuthNoActiveSession))
		return exitcode.AuthError
	}

	if code, ok := confirm(ctx, env, c.yes, i18n.ConfirmDelete, out, errOut); !ok {
		return code
	}

	if err := env.Auth.DeleteAccount(ctx); err != nil {
		return reportError(env, errOut, err)
	}

	if !env.quiet() {
		fmt.Fprintln(out, env.T(i18n.AccountDeleted))
	}
	return exitcode.Success
}
