package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/calvinalkan/keyscreen/internal/config"
	"github.com/calvinalkan/keyscreen/internal/screen"
	"github.com/calvinalkan/keyscreen/pkg/bloom"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

var errNotTerminal = errors.New("repl needs an interactive terminal (use 'check' for piped input)")

const replPrompt = "keyscreen> "

// prompter is the subset of *liner.State the loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// ReplCmd returns the repl command.
func ReplCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	ff := addFilterFlags(fs, true)

	return &Command{
		Flags: fs,
		Usage: "repl <reference-file>",
		Short: "Query keys interactively",
		Long: `Build a Bloom filter from <reference-file> and read keys interactively.

Each line is classified as a key. Lines starting with ':' are commands:
  :stats   Show filter statistics
  :help    Show this help
  :quit    Exit (also Ctrl-D)`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return errReferenceRequired
			}

			if !isTerminal(o.Stdin()) {
				return errNotTerminal
			}

			resolved, params, err := ff.resolve(*cfg, config.Overrides{})
			if err != nil {
				return err
			}

			filter, refCount, err := screen.BuildFromFile(ctx, resolvePath(resolved, args[0]), resolved.SkipsHeader(), params)
			if err != nil {
				return err
			}

			line := liner.NewLiner()
			defer line.Close()

			line.SetCtrlCAborts(true)
			line.SetCompleter(completeReplCommand)

			history := historyFile()
			if f, err := os.Open(history); err == nil {
				_, _ = line.ReadHistory(f)
				_ = f.Close()
			}

			o.Printf("keyscreen - %d reference keys (m=%d, k=%d)\n", refCount, filter.BitCount(), filter.HashCount())
			o.Println("Type a key to classify it, ':help' for commands.")

			err = runRepl(ctx, o, filter, line)

			if history != "" {
				if f, createErr := os.Create(history); createErr == nil {
					_, _ = line.WriteHistory(f)
					_ = f.Close()
				}
			}

			return err
		},
	}
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".keyscreen_history")
}

func runRepl(ctx context.Context, o *IO, filter *bloom.Filter, p prompter) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := p.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				o.Println()

				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		key := strings.TrimRight(input, " \t\r\n")
		if key == "" {
			continue
		}

		p.AppendHistory(key)

		switch key {
		case ":q", ":quit", ":exit":
			return nil
		case ":help", ":h":
			printReplHelp(o)
		case ":stats":
			printReplStats(o, filter)
		default:
			if strings.HasPrefix(key, ":") {
				o.Println("unknown command: " + key + " (type :help)")

				continue
			}

			o.Println(filter.QueryString(key))
		}
	}
}

func completeReplCommand(line string) []string {
	var completions []string

	if !strings.HasPrefix(line, ":") {
		return nil
	}

	for _, cmd := range []string{":stats", ":help", ":quit"} {
		if strings.HasPrefix(cmd, line) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func printReplHelp(o *IO) {
	o.Println("Commands:")
	o.Println("  <key>     Classify key")
	o.Println("  :stats    Show filter statistics")
	o.Println("  :help     Show this help")
	o.Println("  :quit     Exit")
}

func printReplStats(o *IO, filter *bloom.Filter) {
	o.Printf("bits=%d\n", filter.BitCount())
	o.Printf("hashes=%d\n", filter.HashCount())
	o.Printf("bits_set=%d\n", filter.BitsSet())
	o.Printf("hash=%s\n", filter.Hasher().Name())
	o.Printf("sizing=%s\n", filter.Sizing())
	o.Printf("estimated_false_positive_rate=%s\n", formatRate(filter.EstimatedFalsePositiveRate()))
}
