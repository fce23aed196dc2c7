// Command trajprep turns a raw, headerless trajectory dataset into a
// model-ready CSV.
//
//	trajprep --input data.csv --columns names.txt --output clean.csv
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/trajprep/decomposition"
	"github.com/YuminosukeSato/trajprep/pipeline"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"github.com/YuminosukeSato/trajprep/pkg/log"
)

type options struct {
	input        string
	columns      string
	output       string
	components   int
	logLevel     string
	logFormat    string
	variancePlot string
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "trajprep",
		Short: "Preprocess a trajectory dataset for model training",
		Long: "Names the columns of a headerless dataset, drops missing values, imputes and standardizes " +
			"numeric columns, synthesizes velocity and distance features, one-hot encodes categorical " +
			"columns and appends principal components.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.input == opts.output {
				return errors.NewValidationError("output", "must differ from the input path", opts.output)
			}
			if opts.logFormat != string(log.FormatJSON) && opts.logFormat != string(log.FormatConsole) {
				return errors.NewValidationError("log-format", "must be json or console", opts.logFormat)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			provider := log.NewZerologProviderWithWriter(stderr, log.Format(opts.logFormat), level)
			provider.InstallWarningHook()
			defer errors.SetZerologWarnFunc(nil)

			p := pipeline.New(
				pipeline.WithComponents(opts.components),
				pipeline.WithLoggerProvider(provider),
				pipeline.WithVariancePlot(opts.variancePlot),
			)
			_, err = p.Run(pipeline.RunConfig{
				InputPath:   opts.input,
				ColumnsPath: opts.columns,
				OutputPath:  opts.output,
			})
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.input, "input", "", "path to the input CSV file (no header)")
	f.StringVar(&opts.columns, "columns", "", "path to the column names file, one name per line")
	f.StringVar(&opts.output, "output", "", "path to save the processed CSV file")
	f.IntVar(&opts.components, "components", decomposition.DefaultComponents, "number of principal components to append")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", string(log.FormatJSON), "log format: json or console")
	f.StringVar(&opts.variancePlot, "variance-plot", "", "write an explained variance chart to this path (png, svg, pdf)")
	for _, name := range []string{"input", "columns", "output"} {
		_ = cmd.MarkFlagRequired(name)
	}

	cmd.SetErr(stderr)
	return cmd
}

func run(args []string, stderr io.Writer) int {
	log.SetupLogger(stderr, log.LevelError)

	cmd := newRootCmd(stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		slog.Error("trajprep failed", log.ErrAttr(err))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
