// Package company resolves which company a user is editing and owns the
// session context that carries the answer through the rest of the system.
//
// Resolution degrades through increasingly weak signals: the user profile's
// primary company, then a membership flagged primary, then the oldest
// membership. A user with no memberships is not an error case; callers get
// ErrNoCompany and route the user to onboarding.
//
// Repository implementations live in repository/postgres/.
package company
