package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"planify/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "planify help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  planify                                         Show greeting, quote and tasks
  planify list [common flags] [--no-quote]
  planify ui [common flags]                       Interactive home screen
  planify add [common flags] [--due <date>] <title...>
  planify done [common flags] <n>                 Check or uncheck task n
  planify rm [common flags] [--yes] <n>
  planify quote [common flags]
  planify remind [common flags] [--delay <seconds>] [--repeat]
  planify login [common flags] [--email <email>] [--password <password>] [--google]
  planify register [common flags] [--name <name>] [--email <email>]
  planify logout [common flags] [--yes]
  planify reset-password [common flags] [--email <email>]
  planify passwd [common flags]
  planify delete-account [common flags] [--yes]
  planify theme [common flags] [light|dark|toggle]
  planify locale [common flags] [en|pt-BR]
  planify help
  planify version

Common flags:
  --config <dir>   Override config directory
  --locale <tag>   Override the language for this run
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
