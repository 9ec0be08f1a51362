package api

import (
	"context"
	"sync"

	"github.com/ignite/brandhub/internal/editor"
	"github.com/ignite/brandhub/internal/service/collections"
	"github.com/ignite/brandhub/internal/service/company"
	"github.com/ignite/brandhub/internal/service/profile"
)

// maxBufferedEvents bounds the per-session event backlog. Clients poll; if
// they fall further behind than this the oldest events are dropped.
const maxBufferedEvents = 256

// SessionManager owns the server-held edit sessions. One session per open
// editor; sessions do not survive a restart.
type SessionManager struct {
	companies *company.Service
	profiles  *profile.Service
	colls     *collections.Service

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session *editor.Session

	mu     sync.Mutex
	events []editor.Event
}

// NewSessionManager creates an empty session registry.
func NewSessionManager(companies *company.Service, profiles *profile.Service, colls *collections.Service) *SessionManager {
	return &SessionManager{
		companies: companies,
		profiles:  profiles,
		colls:     colls,
		sessions:  make(map[string]*sessionEntry),
	}
}

// Open resolves the user's company, loads the aggregate and starts an edit
// session over it. Save events accumulate on the entry until polled.
func (m *SessionManager) Open(ctx context.Context, userID string) (*editor.Session, *profile.Snapshot, error) {
	companyID, err := m.companies.Resolve(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	snap, err := m.profiles.Load(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}

	entry := &sessionEntry{}
	entry.session = editor.NewSession(userID, companyID, snap, m.profiles, m.colls, entry.record)

	m.mu.Lock()
	m.sessions[entry.session.ID] = entry
	m.mu.Unlock()

	return entry.session, snap, nil
}

// Get returns the session by id, or nil.
func (m *SessionManager) Get(id string) *editor.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		return e.session
	}
	return nil
}

// Close discards a session. Unknown ids are a no-op.
func (m *SessionManager) Close(id string) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		e.session.Close()
	}
}

// CloseAll tears down every session, waiting for background writes. Used on
// shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	entries := make([]*sessionEntry, 0, len(m.sessions))
	for _, e := range m.sessions {
		entries = append(entries, e)
	}
	m.sessions = make(map[string]*sessionEntry)
	m.mu.Unlock()

	for _, e := range entries {
		e.session.Flush()
		e.session.Close()
	}
}

// DrainEvents returns and clears the buffered save events for a session.
func (m *SessionManager) DrainEvents(id string) []editor.Event {
	m.mu.Lock()
	e, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.events
	e.events = nil
	return out
}

func (e *sessionEntry) record(ev editor.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	if len(e.events) > maxBufferedEvents {
		e.events = e.events[len(e.events)-maxBufferedEvents:]
	}
}
