package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/keyscreen/internal/config"
	"github.com/calvinalkan/keyscreen/internal/screen"

	flag "github.com/spf13/pflag"
)

var errScreenArgs = errors.New("screen requires <reference-file> and <candidate-file>")

// ScreenCmd returns the screen command.
func ScreenCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("screen", flag.ContinueOnError)
	ff := addFilterFlags(fs, true)
	output := fs.StringP("output", "o", "", "Results file (default from config, results.csv)")
	stats := fs.Bool("stats", false, "Print filter statistics")

	return &Command{
		Flags: fs,
		Usage: "screen <reference-file> <candidate-file>",
		Short: "Classify every candidate key, write a results CSV",
		Long: `Build a Bloom filter from the keys in <reference-file>, then classify every
key in <candidate-file> as "Probably in the DB" or "Not in the DB".

Both files hold one key per line. The first line is a header unless
--no-header is given. Results are written as CSV (Email,Result) in
candidate order. Prints the results path on success.`,
		Examples: []string{
			"screen db_input.csv db_check.csv",
			"screen -p 0.001 -o out/results.csv --stats db_input.csv db_check.csv",
		},
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 2 {
				return errScreenArgs
			}

			resolved, params, err := ff.resolve(*cfg, config.Overrides{Output: *output})
			if err != nil {
				return err
			}

			return execScreen(ctx, o, resolved, params, args[0], args[1], *stats)
		},
	}
}

func execScreen(ctx context.Context, o *IO, cfg config.Config, params screen.Params, refPath, candPath string, stats bool) error {
	summary, err := screen.Run(ctx, screen.Job{
		ReferencePath: resolvePath(cfg, refPath),
		CandidatePath: resolvePath(cfg, candPath),
		OutputPath:    cfg.OutputAbs,
		SkipHeader:    cfg.SkipsHeader(),
		Params:        params,
		Logf:          o.Infof,
	})
	if err != nil {
		return err
	}

	warnUndersized(o, summary.Sizing, summary.BitCount, summary.HashCount, uint64(summary.References), summary.FalsePositiveRate)

	if summary.Candidates == 0 {
		o.Warn("candidate file has no keys", "results file contains only the header")
	}

	o.Println(summary.OutputPath)

	if stats {
		o.Printf("references=%d\n", summary.References)
		o.Printf("candidates=%d\n", summary.Candidates)
		o.Printf("possibly_present=%d\n", summary.PossiblyPresent)
		o.Printf("definitely_absent=%d\n", summary.DefinitelyAbsent)
		o.Printf("bits=%d\n", summary.BitCount)
		o.Printf("hashes=%d\n", summary.HashCount)
		o.Printf("estimated_false_positive_rate=%s\n", formatRate(summary.EstimatedFalsePositiveRate))
	}

	return nil
}
