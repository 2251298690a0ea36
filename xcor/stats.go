package xcor

import "github.com/pkg/errors"

// Statistics returns the sample mean and unbiased sample variance of a
// binned throughput series.
//
// The variance comes from a single accumulation pass that tracks both
// the running sum of (value - mean) and of (value - mean)^2; the final
// totalDifference^2/n term absorbs the floating-point rounding of the
// mean. This corrected form must not be simplified to the textbook
// two-pass formula: the exact operation order is what keeps results
// reproducible bit for bit.
//
// A single-element series yields a NaN variance (zero over zero from
// the n-1 denominator). Degenerate values propagate through later
// arithmetic per IEEE 754 instead of failing the run.
func Statistics(series []int) (*Stats, error) {
	if len(series) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "can't calculate statistics")
	}

	sum := 0
	for _, value := range series {
		sum += value
	}

	nSamplesF64 := float64(len(series))
	mean := float64(sum) / nSamplesF64

	totalDifference := float64(0)
	totalVariance := float64(0)
	for _, value := range series {
		difference := float64(value) - mean
		totalDifference += difference
		totalVariance += difference * difference
	}

	return &Stats{
		NSamples: len(series),
		Mean:     mean,
		Variance: (totalVariance - totalDifference*totalDifference/nSamplesF64) / (nSamplesF64 - 1),
	}, nil
}
