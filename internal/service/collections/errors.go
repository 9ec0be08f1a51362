package collections

import "errors"

// Sentinel errors for the collections service layer.
var (
	ErrNotFound = errors.New("item not found")
)
