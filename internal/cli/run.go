package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/keyscreen/internal/config"
)

const (
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

var (
	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownFlag     = errors.New("unknown flag")
	errUnknownCommand  = errors.New("unknown command")
)

// Run is the main entry point. Returns exit code.
//
// A value received on sigCh cancels the running command.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < 2 {
		printUsage(out, nil)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printGlobalFlags(errOut)

		return 1
	}

	if flags.help || len(flags.remaining) == 0 {
		printUsage(out, nil)

		if flags.help {
			return 0
		}

		// Flags without a command
		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	commands := allCommands(&cfg)

	name := flags.remaining[0]

	var cmd *Command

	for _, c := range commands {
		if c.Name() == name {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", errUnknownCommand, name))
		fprintln(errOut)
		printUsage(errOut, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return cmd.Run(ctx, NewIO(stdin, out, errOut, flags.verbose), flags.remaining[1:])
}

func allCommands(cfg *config.Config) []*Command {
	return []*Command{
		ScreenCmd(cfg),
		CheckCmd(cfg),
		SizeCmd(cfg),
		ReplCmd(cfg),
		PrintConfigCmd(cfg),
	}
}

type globalFlags struct {
	workDir    string
	configPath string
	verbose    bool
	help       bool
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if arg == "-C" || arg == "--cwd" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	if arg == "-v" || arg == "--verbose" {
		flags.verbose = true

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.help = true

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printGlobalFlags(w io.Writer) {
	fprintln(w, `Global flags:
  -C, --cwd <dir>      Run as if started in <dir>
  -c, --config <file>  Use specified config file
  -v, --verbose        Print diagnostics to stderr
  -h, --help           Show help`)
}

func printUsage(w io.Writer, commands []*Command) {
	if commands == nil {
		cfg := config.Default()
		commands = allCommands(&cfg)
	}

	fprintln(w, `keyscreen - screen candidate keys against a reference set with a Bloom filter

Usage: keyscreen [global flags] <command> [args]`)
	fprintln(w)
	printGlobalFlags(w)
	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Run 'keyscreen <command> --help' for command flags.")
}
