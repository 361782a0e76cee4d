package calendar

import "errors"

// Sentinel error kinds for calendar windows.
var (
	ErrInvalidWindow = errors.New("invalid calendar window")
)
