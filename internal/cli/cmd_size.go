package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/keyscreen/internal/config"
	"github.com/calvinalkan/keyscreen/pkg/bloom"

	flag "github.com/spf13/pflag"
)

var errItemsRequired = errors.New("--items must be at least 1")

// SizeCmd returns the size command.
func SizeCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("size", flag.ContinueOnError)
	ff := addFilterFlags(fs, false)
	items := fs.Uint64P("items", "n", 0, "Number of keys the filter will hold")

	return &Command{
		Flags: fs,
		Usage: "size -n <items> [flags]",
		Short: "Show filter dimensions for a key count",
		Long: `Print the bit count, hash count and memory a filter would need for
<items> keys at the configured false positive rate, plus the rate those
dimensions actually achieve.`,
		Examples: []string{
			"size -n 1000000",
			"size -n 5000 -p 0.01 --sizing=truncate",
		},
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if *items == 0 {
				return errItemsRequired
			}

			resolved, _, err := ff.resolve(*cfg, config.Overrides{})
			if err != nil {
				return err
			}

			return execSize(o, resolved, *items)
		},
	}
}

func execSize(o *IO, cfg config.Config, items uint64) error {
	sizing, err := bloom.ParseSizing(cfg.Sizing)
	if err != nil {
		return err
	}

	m, k, err := bloom.EstimateParameters(items, cfg.FalsePositiveRate, sizing)
	if err != nil {
		return err
	}

	expected := bloom.FalsePositiveRate(m, k, items)

	warnUndersized(o, sizing, m, k, items, cfg.FalsePositiveRate)

	o.Printf("items=%d\n", items)
	o.Printf("target_false_positive_rate=%s\n", formatRate(cfg.FalsePositiveRate))
	o.Printf("sizing=%s\n", sizing)
	o.Printf("bits=%d\n", m)
	o.Printf("hashes=%d\n", k)
	o.Printf("bytes=%d\n", bloom.BitsetBytes(m))
	o.Printf("expected_false_positive_rate=%s\n", formatRate(expected))

	return nil
}
