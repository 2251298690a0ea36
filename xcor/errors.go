package xcor

import "github.com/pkg/errors"

// Error kinds surfaced by the correlation pipeline. Every error is
// fatal to the whole run; callers match kinds with errors.Is.
var (
	// ErrEmptyInput reports an empty event sequence where a non-empty
	// one is required.
	ErrEmptyInput = errors.New("empty input sequence")

	// ErrInvalidInteger reports a token that does not round-trip
	// through canonical decimal formatting.
	ErrInvalidInteger = errors.New("invalid integer")
)
