package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"planify/internal/auth"
	"planify/internal/commands"
	"planify/internal/config"
	"planify/internal/exitcode"
	"planify/internal/i18n"
	"planify/internal/logging"
	"planify/internal/notify"
	"planify/internal/prompt"
	"planify/internal/quote"
	"planify/internal/service"
	"planify/internal/session"
	"planify/internal/tasklist"
	"planify/internal/theme"
)

// Backend creates the collaborators a run needs. Nil factories leave the
// matching feature off.
type Backend struct {
	// Identity returns nil, nil when no identity provider is configured.
	Identity func(ctx context.Context, cfg *config.Config) (service.IdentityProvider, error)

	Sessions func(cfg *config.Config) (*session.Store, error)

	// Tasks opens the task store for the signed-in user. Stores that
	// implement io.Closer are closed when the command returns.
	Tasks func(ctx context.Context, cfg *config.Config, ts oauth2.TokenSource, logger *slog.Logger) (service.TaskStore, error)

	Quotes        func(cfg *config.Config) service.QuoteSource
	Notifications func(cfg *config.Config) notify.Deliverer

	// Prompter returns nil when stdin is not interactive.
	Prompter func(tr prompt.Translator) prompt.Prompter

	GoogleToken commands.GoogleTokenFunc
	Now         func() time.Time
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	backend  Backend
}

// NewDispatcher creates a new dispatcher with the given registry and backend.
func NewDispatcher(registry *commands.Registry, backend Backend) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		backend:  backend,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args opens the task list
	if len(args) == 0 {
		args = []string{"list"}
	}

	name := args[0]
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configDir string
		locale    string
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&locale, "locale", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if locale != "" {
		cfg.Locale = locale
	}

	logger := logging.New(errOut, debug)
	env, code, ok := d.environment(ctx, cfg, logger, errOut)
	if !ok {
		return code
	}

	if cmd.NeedsAuth() {
		closeStore, code, ok := d.openTasks(ctx, env, errOut)
		if !ok {
			return code
		}
		defer closeStore()
		defer env.Tasks.Wait()
	}

	logger.Debug("dispatch", "command", cmd.Name(), "args", len(positional))
	return cmd.Run(ctx, env, positional, out, errOut)
}

// environment builds everything except the task list.
func (d *Dispatcher) environment(ctx context.Context, cfg *config.Config, logger *slog.Logger, errOut io.Writer) (*commands.Env, int, bool) {
	env := &commands.Env{
		Config:      cfg,
		Logger:      logger,
		Locale:      i18n.New(cfg.Locale),
		Theme:       theme.New(theme.Detect(cfg.Theme)),
		GoogleToken: d.backend.GoogleToken,
		Now:         d.backend.Now,
	}

	if d.backend.Quotes != nil {
		if src := d.backend.Quotes(cfg); src != nil {
			env.Quotes = quote.NewCache(src)
		}
	}
	if d.backend.Notifications != nil {
		if deliverer := d.backend.Notifications(cfg); deliverer != nil {
			env.Notifier = notify.NewScheduler(deliverer, logger)
		}
	}
	if d.backend.Prompter != nil {
		env.Prompt = d.backend.Prompter(env.Locale)
	}

	if d.backend.Identity == nil || d.backend.Sessions == nil {
		return env, exitcode.Success, true
	}
	idp, err := d.backend.Identity(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return nil, exitcode.AuthError, false
	}
	if idp == nil {
		return env, exitcode.Success, true
	}
	store, err := d.backend.Sessions(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return nil, exitcode.AuthError, false
	}
	env.Auth = auth.New(idp, store, logger)
	return env, exitcode.Success, true
}

// openTasks resolves the session and opens the user's task list.
func (d *Dispatcher) openTasks(ctx context.Context, env *commands.Env, errOut io.Writer) (func(), int, bool) {
	if env.Auth == nil || d.backend.Tasks == nil {
		fmt.Fprintf(errOut, "error: %v\n", commands.ErrNoBackend)
		return nil, exitcode.AuthError, false
	}

	ts, cred, err := env.Auth.TokenSource(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			fmt.Fprintf(errOut, "error: %s\n", env.T(i18n.AuthNotSignedIn))
		} else {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		}
		return nil, exitcode.AuthError, false
	}

	store, err := d.backend.Tasks(ctx, env.Config, ts, env.Logger)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return nil, exitcode.BackendError, false
	}

	env.Tasks = tasklist.New(store, env.Logger)
	if env.Now != nil {
		env.Tasks.SetClock(env.Now)
	}
	env.User = cred.User

	closeStore := func() {
		if c, ok := store.(io.Closer); ok {
			if err := c.Close(); err != nil {
				env.Logger.Debug("closing task store", "err", err)
			}
		}
	}
	return closeStore, exitcode.Success, true
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "flag needs an argument:"):
		return "flag needs an argument: " + strings.TrimSpace(strings.TrimPrefix(msg, "flag needs an argument:"))
	case strings.HasPrefix(msg, "flag provided but not defined:"):
		return "unknown flag: " + strings.TrimSpace(strings.TrimPrefix(msg, "flag provided but not defined:"))
	default:
		return msg
	}
}
