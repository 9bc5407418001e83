// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"time"

	"planify/internal/auth"
	"planify/internal/config"
	"planify/internal/i18n"
	"planify/internal/logging"
	"planify/internal/notify"
	"planify/internal/prompt"
	"planify/internal/service"
	"planify/internal/tasklist"
	"planify/internal/theme"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a signed-in user.
	// Account commands like login, register and logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// env.Config, env.Locale and env.Theme are always provided.
	// env.Tasks and env.User are only set if NeedsAuth() returns true.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// GoogleTokenFunc runs the browser sign-in flow and returns a Google ID token.
type GoogleTokenFunc func(ctx context.Context, clientFile string, errOut io.Writer) (string, error)

// Env is everything a command may use. The dispatcher builds it once per run.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
	Locale *i18n.Store
	Theme  *theme.Store

	// Auth is nil when the identity provider is not configured.
	Auth *auth.Gateway

	// Tasks and User are set for commands that need a session.
	Tasks *tasklist.Controller
	User  service.SessionUser

	Quotes   service.QuoteSource
	Notifier *notify.Scheduler

	// Prompt is nil when stdin is not a terminal.
	Prompt prompt.Prompter

	GoogleToken GoogleTokenFunc

	// Now defaults to time.Now.
	Now func() time.Time
}

// T looks up a message in the current language.
func (e *Env) T(key string, args ...any) string {
	return e.Locale.T(key, args...)
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) log() *slog.Logger {
	return logging.OrDiscard(e.Logger)
}

func (e *Env) quiet() bool {
	return e.Config != nil && e.Config.Quiet
}

func (e *Env) userName() string {
	return e.User.Name(e.T(i18n.DefaultUserName))
}
