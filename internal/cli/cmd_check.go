package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/calvinalkan/keyscreen/internal/config"
	"github.com/calvinalkan/keyscreen/internal/screen"

	flag "github.com/spf13/pflag"
)

var errReferenceRequired = errors.New("reference file is required")

// CheckCmd returns the check command.
func CheckCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	ff := addFilterFlags(fs, true)

	return &Command{
		Flags: fs,
		Usage: "check <reference-file> [key...]",
		Short: "Classify keys given as arguments or on stdin",
		Long: `Build a Bloom filter from <reference-file> and classify each key.

Keys come from the remaining arguments, or one per line on stdin when no
key arguments are given. Prints "<key><TAB><result>" per key.`,
		Examples: []string{
			"check db_input.csv a@x.com b@x.com",
			"check --hash=xxhash db_input.csv < keys.txt",
		},
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errReferenceRequired
			}

			resolved, params, err := ff.resolve(*cfg, config.Overrides{})
			if err != nil {
				return err
			}

			return execCheck(ctx, o, resolved, params, args[0], args[1:])
		},
	}
}

func execCheck(ctx context.Context, o *IO, cfg config.Config, params screen.Params, refPath string, keyArgs []string) error {
	filter, refCount, err := screen.BuildFromFile(ctx, resolvePath(cfg, refPath), cfg.SkipsHeader(), params)
	if err != nil {
		return err
	}

	o.Infof("filter: %d keys, m=%d bits, k=%d", refCount, filter.BitCount(), filter.HashCount())
	warnUndersized(o, filter.Sizing(), filter.BitCount(), filter.HashCount(), filter.ExpectedItems(), filter.FalsePositiveRate())

	var candidates [][]byte

	if len(keyArgs) > 0 {
		for _, k := range keyArgs {
			candidates = append(candidates, []byte(k))
		}
	} else {
		candidates, err = screen.ReadKeys(ctx, o.Stdin(), screen.ReadKeysOptions{})
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	results, err := screen.Classify(ctx, filter, candidates)
	if err != nil {
		return err
	}

	for _, r := range results {
		o.Printf("%s\t%s\n", r.Key, r.Classification)
	}

	return nil
}
