package xcor

import (
	"math"

	"github.com/pkg/errors"
)

// maxBinCount bounds the length of an aggregated series; traces
// spanning more bins are rejected rather than allocated.
const maxBinCount = math.MaxInt32

// Aggregate bins a sequence of packet arrival times (milliseconds) into
// event counts per binDuration-wide interval: entry i counts the events
// whose timestamp falls in [i*binDuration, (i+1)*binDuration). The last
// event determines the number of bins, so callers must supply arrival
// times in non-decreasing order for the series to cover the whole
// trace; ordering is otherwise not verified.
func Aggregate(events []int, binDuration int) ([]int, error) {
	if len(events) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "can't bin events")
	}
	if binDuration < 1 {
		return nil, errors.Errorf("bin duration must be a positive number of milliseconds, got %d", binDuration)
	}

	last := events[len(events)-1]
	if last < 0 {
		return nil, errors.Errorf("last event at %d ms precedes the trace start", last)
	}
	if last/binDuration >= maxBinCount {
		return nil, errors.Errorf("last event at %d ms needs more than %d bins of %d ms", last, maxBinCount, binDuration)
	}

	counts := make([]int, last/binDuration+1)
	for _, eventTime := range events {
		index := eventTime / binDuration
		if index < 0 || index >= len(counts) {
			return nil, errors.Errorf("event at %d ms falls outside the trace's %d bins", eventTime, len(counts))
		}
		counts[index]++
	}

	return counts, nil
}
