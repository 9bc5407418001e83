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
	Register(&QuoteCmd{})
}

// QuoteCmd implements the quote command. A failed fetch prints the
// fallback text and still succeeds.
type QuoteCmd struct{}

func (c *QuoteCmd) Name() string      { return "quote" }
func (c *QuoteCmd) Aliases() []string { return nil }
func (c *QuoteCmd) Synopsis() string  { return "Show a motivational quote" }
func (c *QuoteCmd) Usage() string     { return "planify quote" }
func (c *QuoteCmd) NeedsAuth() bool   { return false }

func (c *QuoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *QuoteCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if env.Quotes == nil {
		fmt.Fprintln(out, env.T(i18n.QuoteUnavailable))
		return exitcode.Success
	}
	q, err := env.Quotes.Fetch(ctx)
	if err != nil {
		env.log().Warn("fetching quote", "err", err)
		fmt.Fprintln(out, env.T(i18n.QuoteUnavailable))
		return exitcode.Success
	}
	output.FormatQuote(out, q)
	return exitcode.Success
}
