package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"planify/internal/exitcode"
	"planify/internal/i18n"
	"planify/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command, the Home screen in plain text.
// Handles both `planify` (no args) and `planify list`.
type ListCmd struct {
	noQuote bool
}

// SetNoQuote disables the quote fetch (for testing).
func (c *ListCmd) SetNoQuote(v bool) {
	c.noQuote = v
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"home"} }
func (c *ListCmd) Synopsis() string  { return "Show greeting, quote and tasks" }
func (c *ListCmd) Usage() string     { return "planify list [--no-quote]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.noQuote, "no-quote", false, "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if err := env.Tasks.Load(ctx); err != nil {
		return reportError(env, errOut, err)
	}
	snap := env.Tasks.Snapshot()

	// Quiet prints task lines only.
	if !env.quiet() {
		output.FormatHeader(out, env.Locale.Greeting(env.now(), env.userName()))
		if !c.noQuote && env.Quotes != nil {
			if q, err := env.Quotes.Fetch(ctx); err != nil {
				env.log().Debug("quote unavailable", "err", err)
				fmt.Fprintln(out, env.T(i18n.QuoteUnavailable))
			} else {
				output.FormatQuote(out, q)
			}
			fmt.Fprintln(out, output.Separator)
		}
		stats := snap.Stats()
		fmt.Fprintln(out, env.T(i18n.StatsLine, stats.Total, stats.Completed, stats.Pending))
	}

	for i, task := range snap.Tasks {
		output.FormatTask(out, i+1, task, output.FormatDue(task))
	}

	if !env.quiet() {
		if len(snap.Tasks) == 0 {
			fmt.Fprintln(out, env.T(i18n.NoTasks))
		}
		if n := len(snap.Skipped); n > 0 {
			fmt.Fprintln(errOut, env.T(i18n.SkippedTasks, n))
		}
	}
	return exitcode.Success
}
