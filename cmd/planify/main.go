// Package main is the entry point for the planify CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/oauth2"

	"planify/internal/auth"
	"planify/internal/backend/firebase"
	"planify/internal/cli"
	"planify/internal/commands"
	"planify/internal/config"
	"planify/internal/notify"
	"planify/internal/prompt"
	"planify/internal/quote"
	"planify/internal/service"
	"planify/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := cli.Backend{
		Identity: func(ctx context.Context, cfg *config.Config) (service.IdentityProvider, error) {
			if !cfg.HasBackend() {
				return nil, nil
			}
			return firebase.NewIdentity(ctx, cfg.Firebase.APIKey, nil)
		},
		Sessions: session.Open,
		Tasks: func(ctx context.Context, cfg *config.Config, ts oauth2.TokenSource, logger *slog.Logger) (service.TaskStore, error) {
			return firebase.NewTasks(ctx, cfg.Firebase.ProjectID, cfg.Firebase.TasksCollection, ts, logger)
		},
		Quotes: func(cfg *config.Config) service.QuoteSource {
			return quote.New(cfg.Quotes.URL, nil)
		},
		Notifications: func(cfg *config.Config) notify.Deliverer {
			return notify.NewDesktop(config.AppName, cfg.Notifications.Enabled)
		},
		Prompter: func(tr prompt.Translator) prompt.Prompter {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return nil
			}
			return prompt.NewHuh(tr, os.Stdin, os.Stderr, os.Getenv("ACCESSIBLE") != "")
		},
		GoogleToken: auth.GoogleIDToken,
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, backend)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
