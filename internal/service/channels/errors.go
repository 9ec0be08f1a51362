package channels

import "errors"

// Sentinel errors for the channels service layer.
var (
	ErrNotFound        = errors.New("channel record not found")
	ErrUnknownPlatform = errors.New("unknown platform")
)
