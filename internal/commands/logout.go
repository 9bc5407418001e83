package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"planify/internal/exitcode"
	"planify/internal/i18n"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct {
	yes bool
}

// SetYes sets the --yes flag (for testing).
func (c *LogoutCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return []string{"signout"} }
func (c *LogoutCmd) Synopsis() string  { return "Sign out and forget the stored session" }
func (c *LogoutCmd) Usage() string     { return "planify logout [--yes]" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
}

func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if code, ok := requireBackend(env, errOut); !ok {
		return code
	}

	cred, err := env.Auth.Current()
	if err != nil {
		return reportError(env, errOut, err)
	}
	if cred == nil {
		if !env.quiet() {
			fmt.Fprintln(out, env.T(i18n.AuthNoActiveSession))
		}
		return exitcode.Success
	}

	if code, ok := confirm(ctx, env, c.yes, i18n.ConfirmSignOut, out, errOut); !ok {
		return code
	}

	if err := env.Auth.SignOut(); err != nil {
		return reportError(env, errOut, err)
	}

	if !env.quiet() {
		fmt.Fprintln(out, env.T(i18n.SignedOut))
	}
	return exitcode.Success
}

// confirm asks before a destructive account action. yes skips the question;
// without a terminal the action needs yes.
func confirm(ctx context.Context, env *Env, yes bool, key string, out, errOut io.Writer) (int, bool) {
	if yes {
		return exitcode.Success, true
	}
	if env.Prompt == nil {
		fmt.Fprintf(errOut, "error: %s\n", env.T(i18n.ConfirmRequired))
		return exitcode.UserError, false
	}

	ok, err := env.Prompt.Confirm(ctx, key)
	if err != nil {
		return reportError(env, errOut, err), false
	}
	if !ok {
		if !env.quiet() {
			fmt.Fprintln(out, env.T(i18n.Cancelled))
		}
		return exitcode.Success, false
	}
	return exitcode.Success, true
}
