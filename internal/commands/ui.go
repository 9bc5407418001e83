package commands

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"planify/internal/exitcode"
	"planify/internal/i18n"
	"planify/internal/notify"
	"planify/internal/ui/home"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command, the interactive Home screen.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"tui"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive home screen" }
func (c *UICmd) Usage() string     { return "planify ui" }
func (c *UICmd) NeedsAuth() bool   { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	deps := home.Deps{
		Tasks:    env.Tasks,
		Quotes:   env.Quotes,
		Theme:    env.Theme,
		Locale:   env.Locale,
		Notifier: env.Notifier,
		Reminder: func() notify.Reminder { return reminder(env) },
		UserName: env.userName(),
		Logger:   env.Logger,
		Describe: func(err error) string {
			msg, _ := describeError(env, err)
			return msg
		},
		Now: env.Now,
	}

	if err := home.Run(ctx, deps, os.Stdin, out); err != nil {
		env.log().Debug("home screen", "err", err)
		return reportError(env, errOut, err)
	}
	return exitcode.Success
}

// reminder is the pending-task reminder in the current language and with
// the configured timing.
func reminder(env *Env) notify.Reminder {
	return notify.Reminder{
		Title:  env.T(i18n.ReminderTitle),
		Body:   env.T(i18n.ReminderBody),
		Delay:  time.Duration(env.Config.Notifications.DelaySeconds) * time.Second,
		Repeat: env.Config.Notifications.Repeat,
	}
}
