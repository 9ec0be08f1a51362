// Package collections implements create/update/delete for the many-per-company
// entities the profile editor manages: objectives, products, and competitors.
//
// Unlike the singleton sub-records in service/profile, these rows are created
// and destroyed freely by the user. The optimistic list protocol (temporary
// ids, queued patches) lives in internal/editor; this package is the remote
// side it talks to.
//
// Repository implementations live in repository/postgres/.
package collections
