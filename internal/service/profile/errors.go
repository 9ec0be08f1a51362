package profile

import "errors"

// Sentinel errors for the profile service layer.
var (
	// ErrNotFound means the requested row does not exist. Repositories must
	// return it (not a driver error) so callers can tell absence from a
	// transport failure.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means an insert hit the one-row-per-company unique
	// constraint. Load resolves it by re-fetching; it never reaches users.
	ErrConflict = errors.New("record already exists")

	// ErrUnknownField means a generated-content merge referenced a field
	// the target sub-record doesn't have.
	ErrUnknownField = errors.New("unknown profile field")
)
