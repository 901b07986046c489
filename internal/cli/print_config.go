package cli

import (
	"context"
	"strconv"

	"github.com/calvinalkan/keyscreen/internal/config"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("print-config", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print as a config file")

	return &Command{
		Flags: fs,
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			if *asJSON {
				formatted, err := config.Format(*cfg)
				if err != nil {
					return err
				}

				io.Println(formatted)

				return nil
			}

			return execPrintConfig(io, cfg)
		},
	}
}

func execPrintConfig(io *IO, cfg *config.Config) error {
	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("false_positive_rate=" + formatRate(cfg.FalsePositiveRate))
	io.Println("sizing=" + cfg.Sizing)
	io.Println("hash=" + cfg.Hash)
	io.Println("output=" + cfg.OutputAbs)
	io.Println("skip_header=" + strconv.FormatBool(cfg.SkipsHeader()))

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
