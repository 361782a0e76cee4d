package repository

import "errors"

// Sentinel error kinds for the attendance store.
var (
	ErrUnsupportedDriver   = errors.New("unsupported database driver")
	ErrConnect             = errors.New("database connection failed")
	ErrQuery               = errors.New("query failed")
	ErrScan                = errors.New("scan failed")
	ErrMissingCalendarDate = errors.New("missing school calendar date")
)
