package commands

import (
	"context"
	"flag"
	"io"

	"planify/internal/i18n"
	"planify/internal/tasklist"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

// SetYes sets the --yes flag (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "planify rm [--yes] <n>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	task, code, ok := resolveTask(ctx, env, args, errOut)
	if !ok {
		return code
	}
	if code, ok := confirm(ctx, env, c.yes, i18n.ConfirmRemove, out, errOut); !ok {
		return code
	}
	return awaitMutation(ctx, env, task, out, errOut, (*tasklist.Controller).Remove)
}
