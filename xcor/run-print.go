package xcor

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RunAndPrint loads the two traces, bins both into throughput series,
// cross-correlates the series over the configured lag window, and
// renders the resulting curve through printer.
func RunAndPrint(printer *log.Logger, opts RunOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	arrivalTimes1, err := LoadTrace(opts.TracePath1)
	if err != nil {
		return errors.Wrapf(err, "trace %s", opts.TracePath1)
	}
	arrivalTimes2, err := LoadTrace(opts.TracePath2)
	if err != nil {
		return errors.Wrapf(err, "trace %s", opts.TracePath2)
	}

	series1, err := Aggregate(arrivalTimes1, opts.BinDurationMS)
	if err != nil {
		return errors.Wrapf(err, "binning %s", opts.TracePath1)
	}
	series2, err := Aggregate(arrivalTimes2, opts.BinDurationMS)
	if err != nil {
		return errors.Wrapf(err, "binning %s", opts.TracePath2)
	}

	curve, err := Crosscorrelate(series1, series2, opts.LagWindowMS/opts.BinDurationMS)
	if err != nil {
		return errors.Wrap(err, "cross-correlation failed")
	}

	return printCorrelation(printer, curve, opts)
}

// RunStatsAndPrint bins a single trace and prints summary statistics of
// the resulting throughput series.
func RunStatsAndPrint(printer *log.Logger, binDurationMS int, tracePath string) error {
	if binDurationMS <= 0 {
		return errors.Errorf("bin duration must be a positive number of milliseconds, got %d", binDurationMS)
	}

	arrivalTimes, err := LoadTrace(tracePath)
	if err != nil {
		return errors.Wrapf(err, "trace %s", tracePath)
	}

	series, err := Aggregate(arrivalTimes, binDurationMS)
	if err != nil {
		return errors.Wrapf(err, "binning %s", tracePath)
	}

	stats, err := Statistics(series)
	if err != nil {
		return errors.Wrap(err, "statistics failed")
	}

	peakIndex, peakCount := peakBin(series)

	printer.Printf("Packets-n: %d\n", len(arrivalTimes))
	printer.Printf("Span: %d ms\n", arrivalTimes[len(arrivalTimes)-1])
	printer.Printf("Bins-n: %d\n", stats.NSamples)
	printer.Printf("Throughput-mean: %.3f packets/bin\n", stats.Mean)
	printer.Printf("Throughput-stddev: %.3f packets/bin\n", math.Sqrt(stats.Variance))
	printer.Printf("Throughput-variance: %.3f\n", stats.Variance)
	printer.Printf("Throughput-peak: %d packets (bin %d, at %d ms)\n", peakCount, peakIndex, peakIndex*binDurationMS)

	return nil
}

// peakBin locates the busiest bin, preferring the earliest on ties.
func peakBin(series []int) (int, int) {
	peakIndex := 0
	peakCount := series[0]
	for index, count := range series {
		if count > peakCount {
			peakIndex = index
			peakCount = count
		}
	}
	return peakIndex, peakCount
}

func (opts RunOptions) validate() error {
	if opts.BinDurationMS <= 0 {
		return errors.Errorf("bin duration must be a positive number of milliseconds, got %d", opts.BinDurationMS)
	}
	if opts.LagWindowMS < 0 {
		return errors.Errorf("lag window must be non-negative, got %d", opts.LagWindowMS)
	}
	switch opts.Format {
	case FormatText, FormatCSV, FormatJSON, FormatYAML:
		return nil
	default:
		return errors.Errorf("unknown output format %q", opts.Format)
	}
}

func printCorrelation(printer *log.Logger, curve []LagCorrelation, opts RunOptions) error {
	switch opts.Format {
	case FormatCSV:
		return printCSV(printer, curve, opts.BinDurationMS)
	case FormatJSON:
		return printJSON(printer, newReport(curve, opts))
	case FormatYAML:
		return printYAML(printer, newReport(curve, opts))
	default:
		for _, point := range curve {
			printer.Printf("%d: %g\n", point.Lag*opts.BinDurationMS, point.Correlation)
		}
		return nil
	}
}

func newReport(curve []LagCorrelation, opts RunOptions) CorrelationReport {
	points := make([]CorrelationPoint, 0, len(curve))
	for _, point := range curve {
		points = append(points, CorrelationPoint{
			LagMS:       point.Lag * opts.BinDurationMS,
			Correlation: point.Correlation,
		})
	}

	return CorrelationReport{
		BinDurationMS: opts.BinDurationMS,
		LagWindowMS:   opts.LagWindowMS,
		MaxLag:        opts.LagWindowMS / opts.BinDurationMS,
		Points:        points,
	}
}

func printCSV(printer *log.Logger, curve []LagCorrelation, binDurationMS int) error {
	writer := csv.NewWriter(printer.Writer())
	if err := writer.Write([]string{"lag_ms", "correlation"}); err != nil {
		return err
	}
	for _, point := range curve {
		record := []string{
			strconv.Itoa(point.Lag * binDurationMS),
			strconv.FormatFloat(point.Correlation, 'g', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func printJSON(printer *log.Logger, report CorrelationReport) error {
	encoder := json.NewEncoder(printer.Writer())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func printYAML(printer *log.Logger, report CorrelationReport) error {
	contents, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	printer.Print(string(contents))
	return nil
}

// MarshalJSON renders non-finite correlations as null; JSON has no NaN
// or infinity literals.
func (p CorrelationPoint) MarshalJSON() ([]byte, error) {
	if math.IsNaN(p.Correlation) || math.IsInf(p.Correlation, 0) {
		return []byte(fmt.Sprintf(`{"lag_ms":%d,"correlation":null}`, p.LagMS)), nil
	}

	type plainPoint CorrelationPoint
	return json.Marshal(plainPoint(p))
}
