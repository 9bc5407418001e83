package home

import (
	"context"
	"errors"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"planify/internal/event"
	"planify/internal/logging"
	"planify/internal/notify"
	"planify/internal/tasklist"
)

// Run shows the screen until the user quits or ctx is cancelled. While it
// runs, a reminder is scheduled whenever the pending count changes to a new
// non-zero value.
func Run(ctx context.Context, deps Deps, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, deps),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	var subs []*event.Subscription
	if deps.Notifier != nil {
		if deps.Reminder != nil {
			trigger := notify.NewTrigger(deps.Notifier, deps.Reminder)
			subs = append(subs, WatchPending(ctx, deps.Tasks, trigger, deps.Logger))
		}
		subs = append(subs, deps.Notifier.OnReceived(func(n notify.Notification) {
			p.Send(NotifiedMsg{n})
		}))
		defer deps.Notifier.CancelAll()
	}
	defer func() {
		for _, s := range subs {
			s.Unsubscribe()
		}
	}()

	_, err := p.Run()
	deps.Tasks.Wait()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// WatchPending feeds the pending count of every settled snapshot to trigger.
func WatchPending(ctx context.Context, tasks *tasklist.Controller, trigger *notify.Trigger, logger *slog.Logger) *event.Subscription {
	logger = logging.OrDiscard(logger)
	return tasks.OnChange(func(s tasklist.Snapshot) {
		if s.Loading {
			return
		}
		if _, err := trigger.Observe(ctx, s.Stats().Pending); err != nil {
			logger.Warn("scheduling reminder", "err", err)
		}
	})
}
