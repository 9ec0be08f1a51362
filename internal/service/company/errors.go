package company

import "errors"

// Sentinel errors for the company service layer.
var (
	// ErrNoCompany means the user has no resolvable company. This is a
	// legitimate terminal state (user hasn't finished onboarding), not a
	// transport failure, and callers must treat it as such.
	ErrNoCompany = errors.New("user has no company")

	// ErrProfileNotFound means the user profile row does not exist.
	ErrProfileNotFound = errors.New("user profile not found")
)
