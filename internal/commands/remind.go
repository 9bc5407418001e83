package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"planify/internal/exitcode"
	"planify/internal/i18n"
)

func init() {
	Register(&RemindCmd{})
}

// RemindCmd implements the remind command: a reminder notification about
// pending tasks after a short delay. It stays running until the reminder
// has been shown, or until interrupted when --repeat is set.
type RemindCmd struct {
	delay  int
	repeat bool
}

// SetDelay sets the delay in seconds (for testing). Negative means the config default.
func (c *RemindCmd) SetDelay(seconds int) {
	c.delay = seconds
}

func (c *RemindCmd) Name() string      { return "remind" }
func (c *RemindCmd) Aliases() []string { return nil }
func (c *RemindCmd) Synopsis() string  { return "Schedule a pending-task reminder" }
func (c *RemindCmd) Usage() string     { return "planify remind [--delay <seconds>] [--repeat]" }
func (c *RemindCmd) NeedsAuth() bool   { return true }

func (c *RemindCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.delay, "delay", -1, "")
	fs.BoolVar(&c.repeat, "repeat", false, "")
}

func (c *RemindCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if err := env.Tasks.Load(ctx); err != nil {
		return reportError(env, errOut, err)
	}
	if env.Tasks.Stats().Total == 0 {
		if !env.quiet() {
			fmt.Fprintln(out, env.T(i18n.ReminderNoTasks))
		}
		return exitcode.Success
	}

	r := reminder(env)
	if c.delay >= 0 {
		r.Delay = time.Duration(c.delay) * time.Second
	}
	r.Repeat = r.Repeat || c.repeat

	id := ""
	if env.Notifier != nil {
		var err error
		id, err = env.Notifier.ScheduleReminder(ctx, r.Title, r.Body, r.Delay, r.Repeat)
		if err != nil {
			env.log().Warn("scheduling reminder", "err", err)
		}
	}
	if id == "" {
		if !env.quiet() {
			fmt.Fprintln(out, env.T(i18n.ReminderDisabled))
		}
		return exitcode.Success
	}

	if !env.quiet() {
		fmt.Fprintln(out, env.T(i18n.ReminderScheduled))
	}
	if err := env.Notifier.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
		env.log().Warn("waiting for reminder", "err", err)
	}
	env.Notifier.CancelAll()
	return exitcode.Success
}
