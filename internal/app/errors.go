package service

import "errors"

// Sentinel errors for a snapshot run.
var (
	ErrBuild     = errors.New("snapshot build failed")
	ErrNoSource  = errors.New("snapshot source not configured")
	ErrNoPublish = errors.New("snapshot publisher not configured")
)
