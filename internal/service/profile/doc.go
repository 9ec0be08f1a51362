// Package profile loads and updates the editable company aggregate: the
// company row, its four singleton sub-records, and its three collections.
//
// Load fans out every independent fetch concurrently and degrades per slice
// on failure instead of aborting the whole snapshot. Singleton sub-records
// that don't exist yet are created on first load; a lost create race is
// resolved by re-fetching the winner's row, never surfaced to the user.
//
// Repository implementations live in repository/postgres/.
package profile
