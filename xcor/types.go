// Package xcor converts packet arrival traces into binned throughput
// series and computes their time-lagged cross-correlation.
package xcor

// Stats holds the sample mean and unbiased sample variance of a
// throughput series.
type Stats struct {
	NSamples int
	Mean     float64
	Variance float64
}

// LagCorrelation is one point of a correlation curve: the normalized
// cross-correlation of two throughput series at an integer bin offset.
// Lag is in bins; scaling to milliseconds is the render layer's job.
type LagCorrelation struct {
	Lag         int
	Correlation float64
}

// Output formats accepted by RunOptions.Format.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RunOptions parameterizes one correlation run.
type RunOptions struct {
	BinDurationMS int
	LagWindowMS   int
	TracePath1    string
	TracePath2    string
	Format        string
}

// DefaultRunOptions returns the standard knobs: one minute of lag on
// each side of zero, plain-text output.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		LagWindowMS: 60000,
		Format:      FormatText,
	}
}

// CorrelationPoint is one entry of a rendered correlation curve, with
// the lag scaled into milliseconds.
type CorrelationPoint struct {
	LagMS       int     `json:"lag_ms" yaml:"lag_ms"`
	Correlation float64 `json:"correlation" yaml:"correlation"`
}

// CorrelationReport is the machine-readable form of a correlation run.
type CorrelationReport struct {
	BinDurationMS int                `json:"bin_duration_ms" yaml:"bin_duration_ms"`
	LagWindowMS   int                `json:"lag_window_ms" yaml:"lag_window_ms"`
	MaxLag        int                `json:"max_lag" yaml:"max_lag"`
	Points        []CorrelationPoint `json:"points" yaml:"points"`
}
