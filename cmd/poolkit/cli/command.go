// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the poolkit command tree: either a group with
// Subcommands or a leaf with Run.
type Command struct {
	// Name is the word that selects the command ("list", "restore").
	Name string

	// Summary is the one-line description in the parent's command list.
	Summary string

	// Description is the long help text. Summary is shown when empty.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	Examples []Example

	// Params returns a pointer to the command's parameter struct. Its
	// tagged fields become flags (see [BindFlags]) when Flags is nil.
	Params func() any

	// Flags returns a hand-built flag set. It takes precedence over
	// Params.
	Flags func() *pflag.FlagSet

	// Args validates the positional arguments left after flag parsing.
	// Nil accepts anything. See [ExactArgs], [MinimumArgs], [NoArgs].
	Args ArgsValidator

	Subcommands []*Command

	// Run executes a leaf command with its positional arguments.
	Run func(args []string) error

	parent *Command
}

// Example is one entry of the Examples help section.
type Example struct {
	Description string
	Command     string
}

// ArgsValidator checks a command's positional arguments.
type ArgsValidator func(args []string) error

// ErrUsage is wrapped by argument count errors. Execute appends the
// usage line and a pointer to --help.
var ErrUsage = errors.New("wrong number of arguments")

// NoArgs rejects any positional argument.
func NoArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, args[0])
	}
	return nil
}

// ExactArgs requires exactly n positional arguments.
func ExactArgs(n int) ArgsValidator {
	return func(args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: want %d, got %d", ErrUsage, n, len(args))
		}
		return nil
	}
}

// MinimumArgs requires at least n positional arguments.
func MinimumArgs(n int) ArgsValidator {
	return func(args []string) error {
		if len(args) < n {
			return fmt.Errorf("%w: want at least %d, got %d", ErrUsage, n, len(args))
		}
		return nil
	}
}

// Execute runs the command tree against args (os.Args[1:] for the
// root). Group commands route on their first argument; leaf commands
// parse flags, check positional arguments, and call Run.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}
	if len(c.Subcommands) > 0 {
		return c.route(args)
	}

	positional, err := c.parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		c.PrintHelp(os.Stderr)
		return nil
	}
	if err != nil {
		return err
	}
	if c.Args != nil {
		if err := c.Args(positional); err != nil {
			if errors.Is(err, ErrUsage) {
				return fmt.Errorf("%w\n\nUsage:\n  %s\n\nRun '%s --help' for details.", err, c.usageLine(), c.fullName())
			}
			return err
		}
	}
	if c.Run == nil {
		c.PrintHelp(os.Stderr)
		return fmt.Errorf("no action defined for %q", c.fullName())
	}
	return c.Run(positional)
}

// route dispatches to the subcommand named by args[0].
func (c *Command) route(args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		c.PrintHelp(os.Stderr)
		if len(args) == 0 {
			return fmt.Errorf("%s: subcommand required", c.fullName())
		}
		return fmt.Errorf("%s: subcommand required (got flag %q)", c.fullName(), args[0])
	}

	for _, sub := range c.Subcommands {
		if sub.Name == args[0] {
			sub.parent = c
			return sub.Execute(args[1:])
		}
	}
	if suggestion := suggestCommand(args[0], c.Subcommands); suggestion != "" {
		return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
			args[0], suggestion, c.fullName())
	}
	return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", args[0], c.fullName())
}

// parseFlags parses args against the command's flags and returns the
// positional arguments. Parse errors carry a flag suggestion when one
// is close enough; a -h or --help among the flags returns
// [pflag.ErrHelp].
func (c *Command) parseFlags(args []string) ([]string, error) {
	flagSet := c.flagSet()
	if flagSet == nil {
		return args, nil
	}
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		message := err.Error()
		if strings.Contains(message, "unknown flag") {
			// The failed parse may have left state behind; look up
			// suggestions in a fresh set.
			if suggestion := suggestFlag(args, c.flagSet()); suggestion != "" {
				message += fmt.Sprintf(" (did you mean %s?)", suggestion)
			}
		}
		return nil, fmt.Errorf("%s\n\nRun '%s --help' for usage.", message, c.fullName())
	}
	return flagSet.Args(), nil
}

// PrintHelp writes the command's help text to w.
func (c *Command) PrintHelp(w io.Writer) {
	switch {
	case c.Description != "":
		fmt.Fprintf(w, "%s\n\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", c.usageLine())

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if flagSet := c.flagSet(); flagSet != nil {
		if defaults := flagSet.FlagUsages(); defaults != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", defaults)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description == "" {
				fmt.Fprintf(w, "  %s\n", example.Command)
				continue
			}
			fmt.Fprintf(w, "  # %s\n  %s\n\n", example.Description, example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", c.fullName())
	}
}

func (c *Command) usageLine() string {
	switch {
	case c.Usage != "":
		return c.Usage
	case len(c.Subcommands) > 0:
		return c.fullName() + " <command> [flags]"
	default:
		return c.fullName() + " [flags]"
	}
}

// flagSet builds the command's flags from Flags or Params, or returns
// nil when the command has neither.
func (c *Command) flagSet() *pflag.FlagSet {
	if c.Flags != nil {
		return c.Flags()
	}
	if c.Params != nil {
		return FlagsFromParams(c.Name, c.Params())
	}
	return nil
}

// fullName returns the command path from the root ("poolkit backup
// restore").
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
