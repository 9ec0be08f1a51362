package editor_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ignite/brandhub/internal/editor"
)

// countingCommit records commit attempts and can be made to fail.
type countingCommit struct {
	mu    sync.Mutex
	calls []string
	fail  error
	block chan struct{} // when set, commit waits on it
}

func (c *countingCommit) fn(ctx context.Context, v string) error {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.calls = append(c.calls, v)
	return nil
}

func (c *countingCommit) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type eventLog struct {
	mu     sync.Mutex
	events []editor.Event
}

func (l *eventLog) notify(e editor.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) kinds() []editor.EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]editor.EventKind, len(l.events))
	for i, e := range l.events {
		out[i] = e.Kind
	}
	return out
}

func TestCommitCleanIsNoop(t *testing.T) {
	c := &countingCommit{}
	b := editor.NewFieldBuffer("strategy.mission", "grow", c.fn, nil)

	if err := b.Commit(context.Background()); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if c.count() != 0 {
		t.Errorf("clean commit issued %d remote calls, want 0", c.count())
	}
}

func TestCommitChangedIssuesOneCall(t *testing.T) {
	c := &countingCommit{}
	log := &eventLog{}
	b := editor.NewFieldBuffer("strategy.mission", "grow", c.fn, log.notify)

	b.SetLocal("grow faster")
	if b.State() != editor.FieldDirty {
		t.Fatalf("state = %s, want dirty", b.State())
	}
	if err := b.Commit(context.Background()); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if c.count() != 1 {
		t.Errorf("remote calls = %d, want 1", c.count())
	}
	if b.State() != editor.FieldClean {
		t.Errorf("state = %s, want clean", b.State())
	}

	// Committing again without edits must not re-send.
	if err := b.Commit(context.Background()); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if c.count() != 1 {
		t.Errorf("unchanged re-commit issued a call: %d", c.count())
	}
	if got := log.kinds(); len(got) != 1 || got[0] != editor.EventSaved {
		t.Errorf("events = %v, want one saved", got)
	}
}

func TestTypingBackOriginalStaysClean(t *testing.T) {
	c := &countingCommit{}
	b := editor.NewFieldBuffer("branding.tagline", "just do it", c.fn, nil)

	b.SetLocal("just do it now")
	b.SetLocal("just do it")
	if b.State() != editor.FieldClean {
		t.Fatalf("state = %s, want clean after reverting edit", b.State())
	}
	if err := b.Commit(context.Background()); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if c.count() != 0 {
		t.Errorf("reverted edit issued %d calls, want 0", c.count())
	}
}

func TestCommitFailureRestoresDirty(t *testing.T) {
	c := &countingCommit{fail: errors.New("timeout")}
	log := &eventLog{}
	b := editor.NewFieldBuffer("voice.tone", "warm", c.fn, log.notify)

	b.SetLocal("bold")
	if err := b.Commit(context.Background()); err == nil {
		t.Fatal("Commit should fail")
	}
	if b.State() != editor.FieldDirty {
		t.Errorf("state = %s, want dirty after failure", b.State())
	}
	if b.Value() != "bold" {
		t.Errorf("value = %q, local edit must be preserved", b.Value())
	}
	if got := log.kinds(); len(got) != 1 || got[0] != editor.EventError {
		t.Errorf("events = %v, want one error", got)
	}

	// Retry after the transient failure succeeds.
	c.mu.Lock()
	c.fail = nil
	c.mu.Unlock()
	if err := b.Commit(context.Background()); err != nil {
		t.Fatalf("retry Commit: %v", err)
	}
	if b.State() != editor.FieldClean {
		t.Errorf("state = %s, want clean after retry", b.State())
	}
}

func TestRebindDiscardsDirtyState(t *testing.T) {
	c := &countingCommit{}
	b := editor.NewFieldBuffer("strategy.mission", "alpha mission", c.fn, nil)

	b.SetLocal("edited but never saved")
	b.Rebind("beta mission")

	if b.Value() != "beta mission" || b.State() != editor.FieldClean {
		t.Errorf("after rebind: value=%q state=%s", b.Value(), b.State())
	}
	if err := b.Commit(context.Background()); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if c.count() != 0 {
		t.Errorf("stale dirty state leaked into a commit: %d calls", c.count())
	}
}

func TestRebindDuringSaveDropsStaleResult(t *testing.T) {
	c := &countingCommit{block: make(chan struct{})}
	b := editor.NewFieldBuffer("strategy.mission", "old", c.fn, nil)

	b.SetLocal("old edit")
	done := make(chan error, 1)
	go func() { done <- b.Commit(context.Background()) }()

	// Switch records while the commit is in flight.
	b.Rebind("new base")
	close(c.block)
	<-done

	if b.Value() != "new base" || b.State() != editor.FieldClean {
		t.Errorf("stale commit mutated rebound buffer: value=%q state=%s", b.Value(), b.State())
	}
}
