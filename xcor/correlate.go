package xcor

import (
	"math"

	"github.com/pkg/errors"
)

// Crosscorrelate computes the normalized cross-correlation between two
// throughput series at every integer lag in [-maxLag, +maxLag]. A
// positive lag compares series1[i] against series2[i+lag], so a peak at
// a positive lag means series2 trails series1. Results are ordered by
// ascending lag with lag zero at the midpoint.
//
// Each lag averages the products of deviations from the series means
// over the indices where the shifted series overlap, then normalizes by
// the product of the two standard deviations. A lag with no overlap at
// all divides zero by zero and yields NaN, as does a constant series
// whose variance is zero; both propagate per IEEE 754.
func Crosscorrelate(series1, series2 []int, maxLag int) ([]LagCorrelation, error) {
	if maxLag < 0 {
		return nil, errors.Errorf("lag window must be non-negative, got %d", maxLag)
	}
	// The curve holds 2*maxLag+1 points, so the bin-count bound on an
	// aggregated series applies to the window as well.
	if maxLag > maxBinCount/2 {
		return nil, errors.Errorf("lag window must span at most %d bins, got %d", maxBinCount/2, maxLag)
	}

	stats1, err := Statistics(series1)
	if err != nil {
		return nil, err
	}
	stats2, err := Statistics(series2)
	if err != nil {
		return nil, err
	}

	normalizer := math.Sqrt(stats1.Variance) * math.Sqrt(stats2.Variance)

	curve := make([]LagCorrelation, 0, 2*maxLag+1)
	for lag := -maxLag; lag <= maxLag; lag++ {
		sum := float64(0)
		count := 0
		for index1 := 0; index1 < len(series1); index1++ {
			index2 := index1 + lag
			if index2 >= 0 && index2 < len(series2) {
				sum += (float64(series1[index1]) - stats1.Mean) * (float64(series2[index2]) - stats2.Mean)
				count++
			}
		}

		curve = append(curve, LagCorrelation{
			Lag:         lag,
			Correlation: (sum / float64(count)) / normalizer,
		})
	}

	return curve, nil
}
