package schedule

import "errors"

// Sentinel error kinds for schedule computations.
var (
	ErrMalformedTime = errors.New("malformed time value")
)
