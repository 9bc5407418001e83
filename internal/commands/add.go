package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"planify/internal/exitcode"
	"planify/internal/i18n"
	"planify/internal/output"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due string
}

// SetDue sets the due date flag (for testing).
func (c *AddCmd) SetDue(due string) {
	c.due = due
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "planify add [--due <YYYY-MM-DD|RFC3339>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	var due *time.Time
	if c.due != "" {
		t, err := parseDue(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", env.T(i18n.ValInvalidDate, c.due))
			return exitcode.UserError
		}
		due = &t
	}

	title := strings.Join(args, " ")
	if title == "" && env.Prompt != nil {
		if err := env.Prompt.Text(ctx, i18n.NewTaskTitle, &title); err != nil {
			return reportError(env, errOut, err)
		}
	}

	if _, err := env.Tasks.Add(ctx, title, due); err != nil {
		return reportError(env, errOut, err)
	}

	if !env.quiet() {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseDue accepts a calendar date in the local zone or a full RFC 3339
// timestamp.
func parseDue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(output.DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
