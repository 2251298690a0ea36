// xcor computes the time-lagged cross-correlation between two packet
// arrival traces.
//
// Each trace records packet arrival times in milliseconds, one per line
// (mahimahi's trace format); gzip-, bzip2-, and xz-compressed traces
// and pcap/pcapng captures are accepted too. The traces are first
// converted to throughput series (packets per bin), then the normalized
// correlation of the two series is printed for every lag within the
// window, one minute to each side by default:
//
//	xcor 100 trace1 trace2
//	xcor --window 5000 --format csv 20 before.pcap.gz after.pcap.gz
//	xcor stats 100 trace1
//
// Passing the same trace twice gives its autocorrelation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/keithw/crosscorrelate/xcor"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "xcor: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := xcor.DefaultRunOptions()
	configPath := ""
	outputPath := ""

	rootCmd := &cobra.Command{
		Use:   "xcor BIN_DURATION TRACE1 TRACE2",
		Short: "Cross-correlate two packet arrival traces",
		Long: `xcor bins two packet arrival traces (milliseconds, one per line) into
throughput series and prints their normalized cross-correlation at every
lag within the window. A peak at a positive lag means the second trace
trails the first by that many milliseconds.

Traces may also be gzip-, bzip2-, or xz-compressed, or pcap/pcapng
captures; the format is detected from the file contents.`,
		Version:       version,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			binDuration, err := xcor.ParseBinDuration(args[0])
			if err != nil {
				return err
			}
			opts.BinDurationMS = binDuration
			opts.TracePath1 = args[1]
			opts.TracePath2 = args[2]

			if err := applyConfig(cmd, configPath, &opts); err != nil {
				return err
			}

			printer, closePrinter, err := newPrinter(outputPath)
			if err != nil {
				return err
			}

			runErr := xcor.RunAndPrint(printer, opts)
			if err := closePrinter(); err != nil && runErr == nil {
				runErr = errors.Wrap(err, "closing output")
			}
			return runErr
		},
	}

	rootCmd.Flags().IntVarP(&opts.LagWindowMS, "window", "w", opts.LagWindowMS, "lag window in milliseconds on each side of zero")
	rootCmd.Flags().StringVarP(&opts.Format, "format", "f", opts.Format, "output format: text, csv, json, or yaml")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write results to a file instead of standard output")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with default options")

	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "stats BIN_DURATION TRACE",
		Short:         "Show binned throughput statistics for a single trace",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			binDuration, err := xcor.ParseBinDuration(args[0])
			if err != nil {
				return err
			}
			return xcor.RunStatsAndPrint(log.New(os.Stdout, "", 0), binDuration, args[1])
		},
	}
}

// applyConfig overlays file-based defaults onto opts for every option
// the user did not set with an explicit flag.
func applyConfig(cmd *cobra.Command, path string, opts *xcor.RunOptions) error {
	if path == "" {
		return nil
	}

	config, err := xcor.LoadConfig(path)
	if err != nil {
		return err
	}
	if config.LagWindowMS != 0 && !cmd.Flags().Changed("window") {
		opts.LagWindowMS = config.LagWindowMS
	}
	if config.Format != "" && !cmd.Flags().Changed("format") {
		opts.Format = config.Format
	}

	return nil
}

// newPrinter builds the result printer, targeting stdout unless
// --output names a file.
func newPrinter(path string) (*log.Logger, func() error, error) {
	if path == "" || path == "-" {
		return log.New(os.Stdout, "", 0), func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't create output file")
	}
	return log.New(file, "", 0), file.Close, nil
}
