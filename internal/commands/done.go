package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"planify/internal/exitcode"
	"planify/internal/service"
	"planify/internal/tasklist"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles the task, so running it
// on a checked task unchecks it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Check or uncheck a task" }
func (c *DoneCmd) Usage() string     { return "planify done <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return mutateTask(ctx, env, args, out, errOut, (*tasklist.Controller).Toggle)
}

// mutateTask resolves the task number in args against a fresh listing and
// applies op, waiting for the store to confirm.
func mutateTask(ctx context.Context, env *Env, args []string, out, errOut io.Writer,
	op func(*tasklist.Controller, context.Context, string) (<-chan error, error)) int {
	task, code, ok := resolveTask(ctx, env, args, errOut)
	if !ok {
		return code
	}
	return awaitMutation(ctx, env, task, out, errOut, op)
}

// resolveTask loads the list and returns the task numbered by args.
func resolveTask(ctx context.Context, env *Env, args []string, errOut io.Writer) (service.Task, int, bool) {
	num, err := ParseTaskNumber(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError, false
	}

	if err := env.Tasks.Load(ctx); err != nil {
		return service.Task{}, reportError(env, errOut, err), false
	}
	task, err := taskAt(env.Tasks.Tasks(), num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError, false
	}
	return task, exitcode.Success, true
}

func awaitMutation(ctx context.Context, env *Env, task service.Task, out, errOut io.Writer,
	op func(*tasklist.Controller, context.Context, string) (<-chan error, error)) int {
	errc, err := op(env.Tasks, ctx, task.ID)
	if err != nil {
		return reportError(env, errOut, err)
	}
	if err := <-errc; err != nil {
		return reportError(env, errOut, err)
	}

	if !env.quiet() {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

