package cli

import (
	"errors"
	"path/filepath"
	"strconv"

	"github.com/calvinalkan/keyscreen/internal/config"
	"github.com/calvinalkan/keyscreen/internal/screen"
	"github.com/calvinalkan/keyscreen/pkg/bloom"

	flag "github.com/spf13/pflag"
)

var errRateNotPositive = errors.New("--rate must be in (0,1)")

// filterFlags are the flags shared by every command that builds a filter.
type filterFlags struct {
	flags    *flag.FlagSet
	rate     *float64
	sizing   *string
	hash     *string
	noHeader *bool
}

func addFilterFlags(fs *flag.FlagSet, withHeader bool) *filterFlags {
	ff := &filterFlags{
		flags:  fs,
		rate:   fs.Float64P("rate", "p", 0, "Target false positive rate (default from config, 1e-07)"),
		sizing: fs.String("sizing", "", "Bit count rounding: ceil|truncate"),
		hash:   fs.String("hash", "", "Hash function: murmur3|xxhash"),
	}

	if withHeader {
		ff.noHeader = fs.Bool("no-header", false, "Input files have no header line")
	}

	return ff
}

// overrides converts the parsed flags into config overrides.
func (ff *filterFlags) overrides() (config.Overrides, error) {
	var o config.Overrides

	if ff.flags.Changed("rate") {
		if !(*ff.rate > 0 && *ff.rate < 1) {
			return config.Overrides{}, errRateNotPositive
		}

		o.FalsePositiveRate = *ff.rate
	}

	o.Sizing = *ff.sizing
	o.Hash = *ff.hash

	if ff.noHeader != nil {
		o.NoHeader = *ff.noHeader
	}

	return o, nil
}

// resolve applies the flags to cfg and returns filter params for it.
func (ff *filterFlags) resolve(cfg config.Config, extra config.Overrides) (config.Config, screen.Params, error) {
	o, err := ff.overrides()
	if err != nil {
		return config.Config{}, screen.Params{}, err
	}

	o.Output = extra.Output

	resolved, err := cfg.Apply(o)
	if err != nil {
		return config.Config{}, screen.Params{}, err
	}

	opts, err := resolved.FilterOptions()
	if err != nil {
		return config.Config{}, screen.Params{}, err
	}

	return resolved, screen.Params{FalsePositiveRate: resolved.FalsePositiveRate, Options: opts}, nil
}

// warnUndersized flags truncated filters whose size misses the target rate.
//
// Ceil sizing is not checked: flooring k can leave it a hair above the
// target (n=1000 at 1e-7 gives 1.0005e-7), which is inherent to the formula.
func warnUndersized(o *IO, sizing bloom.Sizing, bitCount uint64, hashCount uint32, items uint64, target float64) {
	if sizing != bloom.SizingTruncate {
		return
	}

	theoretical := bloom.FalsePositiveRate(bitCount, hashCount, items)
	if theoretical > target {
		o.Warn(
			"truncated sizing misses target rate",
			"expected false positive rate is "+formatRate(theoretical)+
				"; --sizing=ceil or a lower --rate sizes closer to the target",
		)
	}
}

// resolvePath makes a relative path relative to the effective working directory.
func resolvePath(cfg config.Config, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(cfg.EffectiveCwd, path)
}

func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'g', 4, 64)
}
