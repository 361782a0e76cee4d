package blob

import "errors"

// Sentinel errors for snapshot publishing.
var (
	ErrEncode  = errors.New("snapshot encoding failed")
	ErrPublish = errors.New("snapshot upload failed")
	ErrClient  = errors.New("object storage client setup failed")
)
