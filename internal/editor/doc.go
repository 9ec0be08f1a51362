// Package editor implements the optimistic edit protocol between the profile
// UI and the remote store.
//
// A Session owns one company's in-flight edit state: one FieldBuffer per
// scalar field and one Collection per entity list. Buffers commit on blur
// and only when the value actually changed; collections insert and patch
// optimistically under client-side temporary ids that are reconciled in
// place once the store assigns real ids.
//
// Nothing in this package renders anything: outcomes are reported through
// the Notifier so the caller can show transient saved/error indicators.
package editor
