package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a CLI command with unified help generation.
type Command struct {
	// Flags defines command-specific flags.
	// The FlagSet name is not used - command identity comes from Usage.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "keyscreen" in help.
	// Includes the command name and arguments/flags.
	Usage string

	// Short is a one-line description for the global help listing.
	Short string

	// Long is the full description shown in command help.
	// If empty, Short is used instead.
	Long string

	// Examples are complete invocations, without the leading "keyscreen".
	Examples []string

	// Exec runs the command after flags are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-36s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "keyscreen <cmd> --help" to stdout.
func (c *Command) PrintHelp(o *IO) {
	var buf strings.Builder

	c.writeHelp(&buf)
	o.Printf("%s", buf.String())
}

// writeHelp renders the command help to w.
func (c *Command) writeHelp(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: keyscreen", c.Usage)
	_, _ = fmt.Fprintln(w)

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	_, _ = fmt.Fprintln(w, desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Flags:")
		_, _ = fmt.Fprint(w, c.Flags.FlagUsages())
	}

	if len(c.Examples) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Examples:")

		for _, ex := range c.Examples {
			_, _ = fmt.Fprintln(w, "  keyscreen", ex)
		}
	}
}

// Run parses flags and executes the command. Returns exit code.
//
// Flag errors print the help to stderr so stdout only ever carries results.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(io.Discard)

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.writeHelp(o.errOut)

		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return o.Finish()
}
