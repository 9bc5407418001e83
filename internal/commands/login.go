package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"planify/internal/exitcode"
	"planify/internal/i18n"
	"planify/internal/validate"
)

func init() {
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
	google   bool
}

// SetCredentials sets the email and password flags (for testing).
func (c *LoginCmd) SetCredentials(email, password string) {
	c.email, c.password = email, password
}

// SetGoogle sets the --google flag (for testing).
func (c *LoginCmd) SetGoogle(google bool) {
	c.google = google
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in with email and password, or Google" }
func (c *LoginCmd) Usage() string {
	return "planify login [--email <email>] [--password <password>] [--google]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.BoolVar(&c.google, "google", false, "")
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if code, ok := requireBackend(env, errOut); !ok {
		return code
	}

	cred, err := env.Auth.Current()
	if err != nil {
		return reportError(env, errOut, err)
	}
	if cred != nil {
		if !env.quiet() {
			fmt.Fprintln(out, env.T(i18n.AuthAlreadySignedIn, cred.User.Email))
		}
		return exitcode.Success
	}

	if c.google {
		return c.runGoogle(ctx, env, out, errOut)
	}

	form := validate.LoginForm{Email: c.email, Password: c.password}
	if env.Prompt != nil {
		if err := env.Prompt.Login(ctx, &form); err != nil {
			return reportError(env, errOut, err)
		}
	}

	user, err := env.Auth.SignIn(ctx, form)
	if err != nil {
		return reportError(env, errOut, err)
	}
	env.User = user

	if !env.quiet() {
		fmt.Fprintln(out, env.T(i18n.Welcome, env.userName()))
	}
	return exitcode.Success
}

func (c *LoginCmd) runGoogle(ctx context.Context, env *Env, out, errOut io.Writer) int {
	cfg := env.Config
	if !cfg.HasOAuthClient() || env.GoogleToken == nil {
		fmt.Fprintf(errOut, "error: %s not found\n\n", cfg.OAuthClientPath())
		fmt.Fprintln(errOut, "To sign in with Google, you need OAuth credentials:")
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "1. Go to https://console.cloud.google.com/apis/credentials")
		fmt.Fprintln(errOut, "2. Select the project that hosts your Firebase app")
		fmt.Fprintln(errOut, "3. Create OAuth 2.0 credentials:")
		fmt.Fprintln(errOut, "   - Click 'Create Credentials' > 'OAuth client ID'")
		fmt.Fprintln(errOut, "   - Choose 'Desktop app' as application type")
		fmt.Fprintln(errOut, "   - Download the JSON file")
		fmt.Fprintln(errOut, "4. Enable Google as a sign-in provider in the Firebase console")
		fmt.Fprintln(errOut, "5. Save the JSON file as:")
		fmt.Fprintf(errOut, "   %s\n", cfg.OAuthClientPath())
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "Then run 'planify login --google' again.")
		return exitcode.AuthError
	}

	idToken, err := env.GoogleToken(ctx, cfg.OAuthClientPath(), errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	user, err := env.Auth.SignInWithGoogle(ctx, idToken)
	if err != nil {
		return reportError(env, errOut, err)
	}
	env.User = user

	if !env.quiet() {
		fmt.Fprintln(out, env.T(i18n.Welcome, env.userName()))
	}
	return exitcode.Success
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	name     string
	email    string
	password string
	confirm  string
}

// SetForm sets all registration flags (for testing).
func (c *RegisterCmd) SetForm(name, email, password, confirm string) {
	c.name, c.email, c.password, c.confirm = name, email, password, confirm
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "planify register [--name <name>] [--email <email>] [--password <password>] [--confirm <password>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if code, ok := requireBackend(env, errOut); !ok {
		return code
	}

	form := validate.RegisterForm{Name: c.name, Email: c.email, Password: c.password, Confirm: c.confirm}
	if env.Prompt != nil {
		if err := env.Prompt.Register(ctx, &form); err != nil {
			return reportError(env, errOut, err)
		}
	}

	user, err := env.Auth.SignUp(ctx, form)
	if err != nil {
		return reportError(env, errOut, err)
	}
	env.User = user

	if !env.quiet() {
		fmt.Fprintln(out, env.T(i18n.AccountCreated))
		fmt.Fprintln(out, env.T(i18n.Welcome, env.userName()))
	}
	return exitcode.Success
}

// requireBackend reports whether account commands can run.
func requireBackend(env *Env, errOut io.Writer) (int, bool) {
	if env.Auth != nil {
		return exitcode.Success, true
	}
	fmt.Fprintf(errOut, "error: %v\n", ErrNoBackend)
	return exitcode.AuthError, false
}
