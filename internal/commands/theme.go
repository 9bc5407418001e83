package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"planify/internal/exitcode"
	"planify/internal/i18n"
	"planify/internal/theme"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd implements the theme command. It shows the active palette; an
// argument switches it for this run. Use the theme config key to change the
// startup default.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or switch the color theme" }
func (c *ThemeCmd) Usage() string     { return "planify theme [light|dark|toggle]" }
func (c *ThemeCmd) NeedsAuth() bool   { return false }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	if len(args) == 1 {
		if args[0] == "toggle" {
			env.Theme.Toggle()
		} else {
			mode, ok, err := theme.ParseMode(args[0])
			if err != nil || !ok {
				fmt.Fprintf(errOut, "error: unknown theme: %s\n", args[0])
				return exitcode.UserError
			}
			env.Theme.Set(mode)
		}
	}

	name := env.T(i18n.ThemeLight)
	if env.Theme.Mode() == theme.Dark {
		name = env.T(i18n.ThemeDark)
	}
	if env.quiet() {
		fmt.Fprintln(out, env.Theme.Mode())
		return exitcode.Success
	}

	styles := env.Theme.Styles()
	fmt.Fprintln(out, styles.Header.Render(env.T(i18n.ThemeCurrent, name)))
	fmt.Fprintln(out, styles.Item.Render("[ ] "+env.T(i18n.NewTaskTitle)))
	fmt.Fprintln(out, styles.Checked.Render("[x] "+env.T(i18n.TaskToggled)))
	return exitcode.Success
}
