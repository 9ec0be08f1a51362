package editor

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrUnknownItem means the targeted item is not in the local list (already
// removed, or never existed).
var ErrUnknownItem = errors.New("unknown item")

// TempIDPrefix marks client-assigned placeholder ids. Server ids are plain
// UUIDs, so the prefix can never collide with one.
const TempIDPrefix = "tmp-"

// IsTempID reports whether id is a client-side placeholder.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Remote is the store-side contract a Collection synchronizes against.
// Create returns the row with its server-assigned id.
type Remote[T any, P any] struct {
	Create func(ctx context.Context, draft T) (*T, error)
	Update func(ctx context.Context, id string, patch P) error
	Delete func(ctx context.Context, id string) error
}

// Collection keeps an ordered in-memory list in sync with the remote store
// using optimistic writes.
//
// Add appends immediately under a temporary id and reconciles it in place
// when the create resolves. Update patches the local entry immediately;
// patches are queued per entity and drained in order, and never target a
// temporary id remotely. Remove drops the entry immediately; an entry whose
// create is still unresolved is tombstoned so the eventual server row is
// cleaned up instead of leaking.
//
// Background failures are reported through the Notifier, never retried.
type Collection[T any, P any] struct {
	mu    sync.Mutex
	name  string
	items []T

	id     func(T) string
	setID  func(*T, string)
	apply  func(*T, P)
	remote Remote[T, P]
	notify Notifier

	pending    map[string][]P
	draining   map[string]bool
	tombstones map[string]bool

	gen      uint64
	inflight sync.WaitGroup
}

// NewCollection creates a collection named for notification scopes, seeded
// with the server-provided items. The accessor funcs read/write the item's
// id and apply a patch to an item.
func NewCollection[T any, P any](
	name string,
	seed []T,
	id func(T) string,
	setID func(*T, string),
	apply func(*T, P),
	remote Remote[T, P],
	notify Notifier,
) *Collection[T, P] {
	return &Collection[T, P]{
		name:       name,
		items:      append([]T(nil), seed...),
		id:         id,
		setID:      setID,
		apply:      apply,
		remote:     remote,
		notify:     notify,
		pending:    make(map[string][]P),
		draining:   make(map[string]bool),
		tombstones: make(map[string]bool),
	}
}

// Items returns a snapshot of the local list in order.
func (c *Collection[T, P]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Add appends the draft under a temporary id, visible immediately, and
// issues the create in the background. Returns the temporary id; the entry
// is reconciled to the server id in place once the create resolves.
func (c *Collection[T, P]) Add(ctx context.Context, draft T) string {
	tempID := TempIDPrefix + uuid.New().String()
	c.setID(&draft, tempID)

	c.mu.Lock()
	c.items = append(c.items, draft)
	gen := c.gen
	c.inflight.Add(1)
	c.mu.Unlock()

	go c.resolveCreate(ctx, gen, tempID, draft)
	return tempID
}

func (c *Collection[T, P]) resolveCreate(ctx context.Context, gen uint64, tempID string, draft T) {
	defer c.inflight.Done()

	created, err := c.remote.Create(ctx, draft)

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return
	}

	if err != nil {
		// Roll back the optimistic insert; no ghost entries may remain.
		c.removeLocalLocked(tempID)
		delete(c.pending, tempID)
		delete(c.tombstones, tempID)
		c.mu.Unlock()
		c.notify.failed(c.name+"/"+tempID, err)
		return
	}

	serverID := c.id(*created)

	if c.tombstones[tempID] {
		// Removed while the create was in flight: clean up the server row.
		delete(c.tombstones, tempID)
		delete(c.pending, tempID)
		c.mu.Unlock()
		if derr := c.remote.Delete(ctx, serverID); derr != nil {
			c.notify.failed(c.name+"/"+serverID, derr)
		}
		return
	}

	// Swap the id in place. Local optimistic patches stay; queued patches
	// move to the real id and drain in order.
	for i := range c.items {
		if c.id(c.items[i]) == tempID {
			c.setID(&c.items[i], serverID)
			break
		}
	}
	if queued := c.pending[tempID]; len(queued) > 0 {
		c.pending[serverID] = append(queued, c.pending[serverID]...)
	}
	delete(c.pending, tempID)
	c.startDrainLocked(ctx, gen, serverID)
	c.mu.Unlock()

	c.notify.reconciled(c.name+"/"+serverID, tempID)
}

// Update applies the patch to the local entry immediately. Patches against
// an unresolved temporary id are queued until the create settles; real ids
// drain in the order the user triggered them.
func (c *Collection[T, P]) Update(ctx context.Context, id string, patch P) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrUnknownItem
	}
	c.apply(&c.items[idx], patch)
	c.pending[id] = append(c.pending[id], patch)
	if !IsTempID(id) {
		c.startDrainLocked(ctx, c.gen, id)
	}
	c.mu.Unlock()
	return nil
}

// Remove drops the entry immediately. An entry still under a temporary id
// issues no remote call now: either the create fails (nothing to delete) or
// the tombstone triggers a delete when it resolves.
func (c *Collection[T, P]) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrUnknownItem
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	delete(c.pending, id)

	if IsTempID(id) {
		c.tombstones[id] = true
		c.mu.Unlock()
		return nil
	}

	gen := c.gen
	c.inflight.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.inflight.Done()
		err := c.remote.Delete(ctx, id)
		c.mu.Lock()
		stale := c.gen != gen
		c.mu.Unlock()
		if stale {
			return
		}
		if err != nil {
			c.notify.failed(c.name+"/"+id, err)
			return
		}
		c.notify.saved(c.name + "/" + id)
	}()
	return nil
}

// Rebind replaces the local list with fresh server state and invalidates
// every in-flight completion for the previous binding.
func (c *Collection[T, P]) Rebind(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.items = append([]T(nil), items...)
	c.pending = make(map[string][]P)
	c.draining = make(map[string]bool)
	c.tombstones = make(map[string]bool)
}

// Flush blocks until every background create/update/delete has settled.
// Used by tests and graceful shutdown.
func (c *Collection[T, P]) Flush() {
	c.inflight.Wait()
}

func (c *Collection[T, P]) indexLocked(id string) int {
	for i := range c.items {
		if c.id(c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T, P]) removeLocalLocked(id string) {
	if idx := c.indexLocked(id); idx >= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	}
}

// startDrainLocked launches the per-entity patch drainer if one isn't
// already running. Caller must hold c.mu. One drainer per id keeps patches
// for the same entity ordered; distinct entities drain independently.
func (c *Collection[T, P]) startDrainLocked(ctx context.Context, gen uint64, id string) {
	if c.draining[id] || len(c.pending[id]) == 0 {
		return
	}
	c.draining[id] = true
	c.inflight.Add(1)
	go c.drain(ctx, gen, id)
}

func (c *Collection[T, P]) drain(ctx context.Context, gen uint64, id string) {
	defer c.inflight.Done()
	for {
		c.mu.Lock()
		if c.gen != gen {
			// Rebound while a send was in flight: the queues now belong to
			// the new binding and may hold its patches.
			c.mu.Unlock()
			return
		}
		if len(c.pending[id]) == 0 {
			c.draining[id] = false
			delete(c.pending, id)
			c.mu.Unlock()
			return
		}
		patch := c.pending[id][0]
		c.pending[id] = c.pending[id][1:]
		c.mu.Unlock()

		if err := c.remote.Update(ctx, id, patch); err != nil {
			c.notify.failed(c.name+"/"+id, err)
			continue
		}
		c.notify.saved(c.name + "/" + id)
	}
}
