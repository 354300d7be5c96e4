package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Command is a node of the command tree. Leaves set Run, groups set Subcommands.
type Command struct {
	Name    string
	Summary string
	// Usage replaces the synthesized "eero <name> [flags]" line.
	Usage string
	// Flags builds the command's flag set. Called on every Execute.
	Flags       func() *pflag.FlagSet
	Subcommands []*Command
	// Run receives the positional args left after flag parsing.
	Run func(ctx context.Context, args []string) error
	// MinArgs is the number of positional args Run needs.
	MinArgs int

	parent *Command
	help   io.Writer
}

// UsageError is a command line mistake. It is reported with the command's usage and exit code 2.
type UsageError struct {
	Command *Command
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Execute parses args and dispatches to a subcommand or Run.
func (c *Command) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.helpWriter())
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		for _, sub := range c.Subcommands {
			if sub.Name == args[0] {
				sub.parent = c
				return sub.Execute(ctx, args[1:])
			}
		}
		if c.Run == nil {
			return &UsageError{Command: c, Message: fmt.Sprintf("unknown command %q", args[0])}
		}
	}

	if c.Run == nil {
		c.PrintHelp(c.helpWriter())
		return &UsageError{Command: c, Message: "command required"}
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		flagSet.SetOutput(io.Discard)
		if err := flagSet.Parse(args); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				c.PrintHelp(c.helpWriter())
				return nil
			}
			return &UsageError{Command: c, Message: err.Error()}
		}
		args = flagSet.Args()
	}

	if len(args) < c.MinArgs {
		return &UsageError{Command: c, Message: fmt.Sprintf("%s needs %d argument(s)", c.fullName(), c.MinArgs)}
	}
	return c.Run(ctx, args)
}

// PrintHelp writes the usage line, subcommands and flags to w.
func (c *Command) PrintHelp(w io.Writer) {
	if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", c.usage())

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		table := tablewriter.NewWriter(w)
		table.SetBorder(false)
		table.SetColumnSeparator("")
		table.SetHeaderLine(false)
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetTablePadding("   ")
		table.SetNoWhiteSpace(true)
		for _, sub := range c.Subcommands {
			table.Append([]string{"  " + sub.Name, sub.Summary})
		}
		table.Render()
	}

	if c.Flags != nil {
		var flagHelp strings.Builder
		flagSet := c.Flags()
		flagSet.SetOutput(&flagHelp)
		flagSet.PrintDefaults()
		if flagHelp.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", flagHelp.String())
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", c.fullName())
	}
}

func (c *Command) usage() string {
	switch {
	case c.Usage != "":
		return c.fullName() + " " + c.Usage
	case len(c.Subcommands) > 0:
		return c.fullName() + " <command> [flags]"
	default:
		return c.fullName() + " [flags]"
	}
}

func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func (c *Command) helpWriter() io.Writer {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.help != nil {
			return cmd.help
		}
	}
	return io.Discard
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
