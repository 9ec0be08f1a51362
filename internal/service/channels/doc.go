// Package channels presents one editable row per platform while the row's
// fields are physically owned by three independent sub-resources: platform
// config, posting schedule, and communication style.
//
// The sub-resources share nothing but the platform key, and none of them
// knows the other two exist. Reads merge field-by-field with defaults for
// missing rows; writes route each changed field to the sub-resource that
// owns it, so one row edit fans out into at most three independent writes.
//
// Repository implementations live in repository/postgres/.
package channels
