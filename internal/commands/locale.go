package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"planify/internal/exitcode"
	"planify/internal/i18n"
)

func init() {
	Register(&LocaleCmd{})
}

// LocaleCmd implements the locale command. With an argument it switches the
// language and saves the choice to config.yaml.
type LocaleCmd struct{}

func (c *LocaleCmd) Name() string      { return "locale" }
func (c *LocaleCmd) Aliases() []string { return []string{"lang"} }
func (c *LocaleCmd) Synopsis() string  { return "Show or switch the language" }
func (c *LocaleCmd) Usage() string     { return "planify locale [en|pt-BR]" }
func (c *LocaleCmd) NeedsAuth() bool   { return false }

func (c *LocaleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LocaleCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	switch len(args) {
	case 0:
		fmt.Fprintln(out, env.T(i18n.LocaleCurrent, env.Locale.Tag()))
		if !env.quiet() {
			for _, tag := range i18n.Supported() {
				fmt.Fprintf(out, "  %s\n", tag)
			}
		}
		return exitcode.Success
	case 1:
	default:
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	tag, err := env.Locale.Set(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", env.T(i18n.LocaleUnsupported, args[0]))
		return exitcode.UserError
	}
	if err := env.Config.SaveLocale(tag.String()); err != nil {
		env.log().Warn("saving locale", "err", err)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !env.quiet() {
		fmt.Fprintln(out, env.T(i18n.LocaleCurrent, tag))
	}
	return exitcode.Success
}
