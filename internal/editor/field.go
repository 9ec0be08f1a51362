package editor

import (
	"context"
	"fmt"
	"sync"
)

// FieldState is the explicit state of a FieldBuffer.
type FieldState string

const (
	// FieldClean: local value equals the last committed value.
	FieldClean FieldState = "clean"
	// FieldDirty: local value differs and has not been sent.
	FieldDirty FieldState = "dirty"
	// FieldSaving: a commit is in flight.
	FieldSaving FieldState = "saving"
)

// CommitFunc persists a field value to the remote store.
type CommitFunc func(ctx context.Context, value string) error

// FieldBuffer wraps a single scalar field with the save-on-blur protocol:
// edits accumulate locally, Commit sends the value only if it differs from
// the last committed value, and a failed commit restores dirty state with
// the local value intact so the user can retry.
//
// The buffer is never the source of truth; Rebind resets it whenever the
// bound record changes (company switch, fresh snapshot) and invalidates any
// commit still in flight for the previous binding.
type FieldBuffer struct {
	mu        sync.Mutex
	scope     string
	value     string
	committed string
	state     FieldState
	gen       uint64
	commit    CommitFunc
	notify    Notifier
}

// NewFieldBuffer creates a buffer bound to base, the value last seen from
// the remote store.
func NewFieldBuffer(scope, base string, commit CommitFunc, notify Notifier) *FieldBuffer {
	return &FieldBuffer{
		scope:     scope,
		value:     base,
		committed: base,
		state:     FieldClean,
		commit:    commit,
		notify:    notify,
	}
}

// Value returns the current local value.
func (b *FieldBuffer) Value() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// State returns the buffer's current state.
func (b *FieldBuffer) State() FieldState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// SetLocal records a local edit. The buffer goes dirty only if v differs
// from the last committed value; typing back the original leaves it clean.
func (b *FieldBuffer) SetLocal(v string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = v
	if b.state == FieldSaving {
		// In-flight commit settles this; resolution re-checks the value.
		return
	}
	if v == b.committed {
		b.state = FieldClean
	} else {
		b.state = FieldDirty
	}
}

// Commit sends the local value if it changed since the last commit. It is
// a no-op on a clean buffer: an unchanged value is never re-sent. On
// failure the buffer returns to dirty with the value preserved.
func (b *FieldBuffer) Commit(ctx context.Context) error {
	b.mu.Lock()
	if b.state != FieldDirty {
		b.mu.Unlock()
		return nil
	}
	b.state = FieldSaving
	v := b.value
	gen := b.gen
	b.mu.Unlock()

	err := b.commit(ctx, v)

	b.mu.Lock()
	if b.gen != gen {
		// Rebound while saving: the result belongs to a stale binding.
		b.mu.Unlock()
		return err
	}
	if err != nil {
		b.state = FieldDirty
		b.mu.Unlock()
		b.notify.failed(b.scope, err)
		return fmt.Errorf("commit %s: %w", b.scope, err)
	}
	b.committed = v
	if b.value == v {
		b.state = FieldClean
	} else {
		// User kept typing during the save.
		b.state = FieldDirty
	}
	b.mu.Unlock()
	b.notify.saved(b.scope)
	return nil
}

// Rebind points the buffer at a new externally-supplied base value and
// discards any dirty state from the previous record. Commits still in
// flight for the old binding are ignored when they settle.
func (b *FieldBuffer) Rebind(base string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	b.value = base
	b.committed = base
	b.state = FieldClean
}
