package seed

import "errors"

// ErrInvalidConfig is returned for negative sizes or an out of range ratio.
var ErrInvalidConfig = errors.New("invalid seed config")
