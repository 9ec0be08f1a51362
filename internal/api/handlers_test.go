package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/generation"
	"github.com/ignite/brandhub/internal/service/channels"
	"github.com/ignite/brandhub/internal/service/collections"
	"github.com/ignite/brandhub/internal/service/company"
	"github.com/ignite/brandhub/internal/service/profile"
)

// memStore is an in-memory backend implementing every repository interface
// the handlers need.
type memStore struct {
	mu sync.Mutex

	userProfile *domain.UserProfile
	members     []domain.CompanyMember

	company  *domain.Company
	strategy *domain.Strategy
	branding *domain.Branding
	voice    *domain.BrandVoice
	email    *domain.EmailSettings

	objectives  map[string]*domain.Objective
	products    map[string]*domain.Product
	competitors map[string]*domain.Competitor

	configs   map[domain.Platform]*domain.ChannelConfig
	schedules map[domain.Platform]*domain.PostingSchedule
	styles    map[domain.Platform]*domain.CommunicationStyle

	strategyUpdates int
}

func newMemStore() *memStore {
	companyID := "c1"
	return &memStore{
		userProfile: &domain.UserProfile{UserID: "u1", PrimaryCompanyID: &companyID},
		company:     &domain.Company{ID: companyID, Name: "Acme Coffee", Industry: "Food & Beverage"},
		objectives:  make(map[string]*domain.Objective),
		products:    make(map[string]*domain.Product),
		competitors: make(map[string]*domain.Competitor),
		configs:     make(map[domain.Platform]*domain.ChannelConfig),
		schedules:   make(map[domain.Platform]*domain.PostingSchedule),
		styles:      make(map[domain.Platform]*domain.CommunicationStyle),
	}
}

// company.Repository

func (m *memStore) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userProfile == nil || m.userProfile.UserID != userID {
		return nil, company.ErrProfileNotFound
	}
	p := *m.userProfile
	return &p, nil
}

func (m *memStore) ListMemberships(ctx context.Context, userID string) ([]domain.CompanyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CompanyMember(nil), m.members...), nil
}

// profile.Repository

func (m *memStore) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.company == nil || m.company.ID != companyID {
		return nil, profile.ErrNotFound
	}
	c := *m.company
	return &c, nil
}

func (m *memStore) UpdateCompany(ctx context.Context, companyID string, p profile.CompanyPatch) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.company == nil {
		return nil, profile.ErrNotFound
	}
	if p.Name != nil {
		m.company.Name = *p.Name
	}
	if p.Website != nil {
		m.company.Website = *p.Website
	}
	if p.Industry != nil {
		m.company.Industry = *p.Industry
	}
	if p.Description != nil {
		m.company.Description = *p.Description
	}
	c := *m.company
	return &c, nil
}

func (m *memStore) GetStrategy(ctx context.Context, companyID string) (*domain.Strategy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.strategy == nil {
		return nil, profile.ErrNotFound
	}
	s := *m.strategy
	return &s, nil
}

func (m *memStore) CreateStrategy(ctx context.Context, s *domain.Strategy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.strategy != nil {
		return profile.ErrConflict
	}
	cp := *s
	m.strategy = &cp
	return nil
}

func (m *memStore) UpdateStrategy(ctx context.Context, companyID string, p profile.StrategyPatch) (*domain.Strategy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.strategy == nil {
		return nil, profile.ErrNotFound
	}
	m.strategyUpdates++
	if p.Mission != nil {
		m.strategy.Mission = *p.Mission
	}
	if p.TargetAudience != nil {
		m.strategy.TargetAudience = *p.TargetAudience
	}
	if p.ValueProp != nil {
		m.strategy.ValueProp = *p.ValueProp
	}
	if p.Differentiators != nil {
		m.strategy.Differentiators = *p.Differentiators
	}
	s := *m.strategy
	return &s, nil
}

func (m *memStore) GetBranding(ctx context.Context, companyID string) (*domain.Branding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.branding == nil {
		return nil, profile.ErrNotFound
	}
	b := *m.branding
	return &b, nil
}

func (m *memStore) CreateBranding(ctx context.Context, b *domain.Branding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.branding != nil {
		return profile.ErrConflict
	}
	cp := *b
	m.branding = &cp
	return nil
}

func (m *memStore) UpdateBranding(ctx context.Context, companyID string, p profile.BrandingPatch) (*domain.Branding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.branding == nil {
		return nil, profile.ErrNotFound
	}
	if p.Tagline != nil {
		m.branding.Tagline = *p.Tagline
	}
	if p.LogoURL != nil {
		m.branding.LogoURL = *p.LogoURL
	}
	if p.PrimaryColor != nil {
		m.branding.PrimaryColor = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		m.branding.SecondaryColor = *p.SecondaryColor
	}
	if p.FontFamily != nil {
		m.branding.FontFamily = *p.FontFamily
	}
	b := *m.branding
	return &b, nil
}

func (m *memStore) GetVoice(ctx context.Context, companyID string) (*domain.BrandVoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.voice == nil {
		return nil, profile.ErrNotFound
	}
	v := *m.voice
	return &v, nil
}

func (m *memStore) CreateVoice(ctx context.Context, v *domain.BrandVoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.voice != nil {
		return profile.ErrConflict
	}
	cp := *v
	m.voice = &cp
	return nil
}

func (m *memStore) UpdateVoice(ctx context.Context, companyID string, p profile.VoicePatch) (*domain.BrandVoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.voice == nil {
		return nil, profile.ErrNotFound
	}
	if p.Tone != nil {
		m.voice.Tone = *p.Tone
	}
	if p.Personality != nil {
		m.voice.Personality = *p.Personality
	}
	if p.Guidelines != nil {
		m.voice.Guidelines = *p.Guidelines
	}
	if p.Keywords != nil {
		m.voice.Keywords = *p.Keywords
	}
	v := *m.voice
	return &v, nil
}

func (m *memStore) GetEmailSettings(ctx context.Context, companyID string) (*domain.EmailSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.email == nil {
		return nil, profile.ErrNotFound
	}
	e := *m.email
	return &e, nil
}

func (m *memStore) CreateEmailSettings(ctx context.Context, e *domain.EmailSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.email != nil {
		return profile.ErrConflict
	}
	cp := *e
	m.email = &cp
	return nil
}

func (m *memStore) UpdateEmailSettings(ctx context.Context, companyID string, p profile.EmailPatch) (*domain.EmailSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.email == nil {
		return nil, profile.ErrNotFound
	}
	if p.SenderName != nil {
		m.email.SenderName = *p.SenderName
	}
	if p.SenderEmail != nil {
		m.email.SenderEmail = *p.SenderEmail
	}
	if p.ReplyTo != nil {
		m.email.ReplyTo = *p.ReplyTo
	}
	if p.Footer != nil {
		m.email.Footer = *p.Footer
	}
	e := *m.email
	return &e, nil
}

func (m *memStore) ListObjectives(ctx context.Context, companyID string) ([]domain.Objective, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Objective, 0, len(m.objectives))
	for _, o := range m.objectives {
		out = append(out, *o)
	}
	return out, nil
}

func (m *memStore) ListProducts(ctx context.Context, companyID string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memStore) ListCompetitors(ctx context.Context, companyID string) ([]domain.Competitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Competitor, 0, len(m.competitors))
	for _, c := range m.competitors {
		out = append(out, *c)
	}
	return out, nil
}

// collections.Repository

func (m *memStore) CreateObjective(ctx context.Context, o *domain.Objective) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.objectives[o.ID] = &cp
	return nil
}

func (m *memStore) UpdateObjective(ctx context.Context, companyID, id string, p collections.ObjectivePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objectives[id]
	if !ok {
		return collections.ErrNotFound
	}
	if p.Title != nil {
		o.Title = *p.Title
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	return nil
}

func (m *memStore) DeleteObjective(ctx context.Context, companyID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objectives[id]; !ok {
		return collections.ErrNotFound
	}
	delete(m.objectives, id)
	return nil
}

func (m *memStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memStore) UpdateProduct(ctx context.Context, companyID, id string, p collections.ProductPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pr, ok := m.products[id]
	if !ok {
		return collections.ErrNotFound
	}
	if p.Name != nil {
		pr.Name = *p.Name
	}
	return nil
}

func (m *memStore) DeleteProduct(ctx context.Context, companyID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return collections.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memStore) CreateCompetitor(ctx context.Context, c *domain.Competitor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.competitors[c.ID] = &cp
	return nil
}

func (m *memStore) UpdateCompetitor(ctx context.Context, companyID, id string, p collections.CompetitorPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.competitors[id]
	if !ok {
		return collections.ErrNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	return nil
}

func (m *memStore) DeleteCompetitor(ctx context.Context, companyID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.competitors[id]; !ok {
		return collections.ErrNotFound
	}
	delete(m.competitors, id)
	return nil
}

// channels.Repository

func (m *memStore) ListConfigs(ctx context.Context, companyID string) ([]domain.ChannelConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ChannelConfig, 0, len(m.configs))
	for _, c := range m.configs {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memStore) GetConfig(ctx context.Context, companyID string, platform domain.Platform) (*domain.ChannelConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.configs[platform]
	if !ok {
		return nil, channels.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) SaveConfig(ctx context.Context, c *domain.ChannelConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.configs[c.Platform] = &cp
	return nil
}

func (m *memStore) ListSchedules(ctx context.Context, companyID string) ([]domain.PostingSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PostingSchedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memStore) GetSchedule(ctx context.Context, companyID string, platform domain.Platform) (*domain.PostingSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[platform]
	if !ok {
		return nil, channels.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) SaveSchedule(ctx context.Context, s *domain.PostingSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.schedules[s.Platform] = &cp
	return nil
}

func (m *memStore) ListStyles(ctx context.Context, companyID string) ([]domain.CommunicationStyle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CommunicationStyle, 0, len(m.styles))
	for _, s := range m.styles {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memStore) GetStyle(ctx context.Context, companyID string, platform domain.Platform) (*domain.CommunicationStyle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.styles[platform]
	if !ok {
		return nil, channels.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) SaveStyle(ctx context.Context, s *domain.CommunicationStyle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.styles[s.Platform] = &cp
	return nil
}

type fakeGenerator struct {
	fields map[string]string
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, brief generation.Brief, kind domain.ProfileKind) (map[string]string, error) {
	return f.fields, f.err
}

func setupTestServer(t *testing.T) (*httptest.Server, *memStore, *Handlers) {
	t.Helper()
	store := newMemStore()

	h := NewHandlers(
		company.NewService(store, nil),
		profile.NewService(store, nil),
		collections.NewService(store),
		channels.NewService(store),
	)

	srv := httptest.NewServer(SetupRoutes(h))
	t.Cleanup(srv.Close)
	return srv, store, h
}

func doRequest(t *testing.T, method, url string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var parsed map[string]json.RawMessage
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

func TestHealthCheck(t *testing.T) {
	srv, _, _ := setupTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"ok"`, string(body["status"]))
}

func TestResolveCompany(t *testing.T) {
	srv, store, _ := setupTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/company/resolve", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"c1"`, string(body["company_id"]))

	// No profile and no memberships: 404.
	store.mu.Lock()
	store.userProfile = nil
	store.mu.Unlock()

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/company/resolve", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetProfile_LazyCreatesSingletons(t *testing.T) {
	srv, store, _ := setupTestServer(t)

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/api/profile", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotNil(t, store.strategy, "strategy should be lazily created on first load")
	assert.NotNil(t, store.branding)
	assert.NotNil(t, store.voice)
	assert.NotNil(t, store.email)
}

func TestPatchProfile(t *testing.T) {
	srv, store, _ := setupTestServer(t)

	// Load first so the singleton rows exist.
	doRequest(t, http.MethodGet, srv.URL+"/api/profile", nil)

	resp, body := doRequest(t, http.MethodPatch, srv.URL+"/api/profile/strategy",
		map[string]string{"mission": "Roast better coffee"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"Roast better coffee"`, string(body["mission"]))

	store.mu.Lock()
	assert.Equal(t, "Roast better coffee", store.strategy.Mission)
	store.mu.Unlock()

	resp, _ = doRequest(t, http.MethodPatch, srv.URL+"/api/profile/nonsense", map[string]string{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCollectionCRUD(t *testing.T) {
	srv, store, _ := setupTestServer(t)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/collections/objectives",
		map[string]interface{}{"title": "Grow subscribers"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var id string
	require.NoError(t, json.Unmarshal(body["id"], &id))
	require.NotEmpty(t, id)

	resp, _ = doRequest(t, http.MethodPatch, srv.URL+"/api/collections/objectives/"+id,
		map[string]string{"title": "Grow newsletter"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	store.mu.Lock()
	assert.Equal(t, "Grow newsletter", store.objectives[id].Title)
	store.mu.Unlock()

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/collections/objectives/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/collections/objectives/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetChannels_ReturnsAllPlatforms(t *testing.T) {
	srv, _, _ := setupTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/channels", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []domain.ChannelRow
	require.NoError(t, json.Unmarshal(body["rows"], &rows))
	assert.Len(t, rows, len(domain.Platforms))
}

func TestPatchChannel_RoutesByOwner(t *testing.T) {
	srv, store, _ := setupTestServer(t)

	tone := "playful"
	freq := "daily"
	resp, _ := doRequest(t, http.MethodPatch, srv.URL+"/api/channels/instagram",
		channels.RowPatch{Tone: &tone, Frequency: &freq})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	store.mu.Lock()
	require.NotNil(t, store.styles[domain.PlatformInstagram])
	assert.Equal(t, "playful", store.styles[domain.PlatformInstagram].Tone)
	require.NotNil(t, store.schedules[domain.PlatformInstagram])
	assert.Equal(t, "daily", store.schedules[domain.PlatformInstagram].Frequency)
	assert.Nil(t, store.configs[domain.PlatformInstagram], "config had no changed fields")
	store.mu.Unlock()

	resp, _ = doRequest(t, http.MethodPatch, srv.URL+"/api/channels/myspace",
		channels.RowPatch{Tone: &tone})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGenerateProfile_AppliesChangedFields(t *testing.T) {
	srv, store, h := setupTestServer(t)

	// Seed current values; load creates the singleton rows.
	doRequest(t, http.MethodGet, srv.URL+"/api/profile", nil)
	store.mu.Lock()
	store.strategy.Mission = "Roast better coffee"
	store.strategyUpdates = 0
	store.mu.Unlock()

	h.SetGenerator(&fakeGenerator{fields: map[string]string{
		"mission":         "Roast better coffee", // unchanged, must not write
		"target_audience": "Home brewers",
	}})

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/profile/strategy/generate", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `1`, string(body["applied"]))

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, "Home brewers", store.strategy.TargetAudience)
	assert.Equal(t, 1, store.strategyUpdates, "unchanged suggestion must not produce a write")
}

func TestGenerateProfile_Unavailable(t *testing.T) {
	srv, _, h := setupTestServer(t)
	doRequest(t, http.MethodGet, srv.URL+"/api/profile", nil)

	h.SetGenerator(&fakeGenerator{err: fmt.Errorf("%w: model timeout", generation.ErrUnavailable)})

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/api/profile/strategy/generate", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSessionFieldLifecycle(t *testing.T) {
	srv, store, _ := setupTestServer(t)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sessionID string
	require.NoError(t, json.Unmarshal(body["session_id"], &sessionID))
	base := srv.URL + "/api/sessions/" + sessionID

	// Stage an edit, then commit on blur.
	resp, body = doRequest(t, http.MethodPost, base+"/fields",
		fieldRequest{Kind: "strategy", Field: "mission", Value: "Roast better coffee"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"dirty"`, string(body["state"]))

	resp, body = doRequest(t, http.MethodPost, base+"/fields/commit",
		fieldRequest{Kind: "strategy", Field: "mission"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"clean"`, string(body["state"]))

	store.mu.Lock()
	assert.Equal(t, "Roast better coffee", store.strategy.Mission)
	store.mu.Unlock()

	// Save event is observable via polling.
	resp, body = doRequest(t, http.MethodGet, base+"/events", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []map[string]string
	require.NoError(t, json.Unmarshal(body["events"], &events))
	require.NotEmpty(t, events)
	assert.Equal(t, "saved", events[0]["kind"])

	// Unknown field is rejected before any buffer exists.
	resp, _ = doRequest(t, http.MethodPost, base+"/fields",
		fieldRequest{Kind: "strategy", Field: "budget", Value: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionCollectionAdd_ReconcilesTempID(t *testing.T) {
	srv, store, h := setupTestServer(t)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sessionID string
	require.NoError(t, json.Unmarshal(body["session_id"], &sessionID))
	base := srv.URL + "/api/sessions/" + sessionID

	resp, body = doRequest(t, http.MethodPost, base+"/collections/products",
		map[string]string{"name": "Espresso Blend"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var tempID string
	require.NoError(t, json.Unmarshal(body["id"], &tempID))
	assert.True(t, len(tempID) > 4 && tempID[:4] == "tmp-", "expected temp id, got %s", tempID)

	// Wait for the background create to resolve.
	h.sessions.Get(sessionID).Flush()

	// The saved event carries the temp id, so a client that only knows the
	// id it got back from the add can match the event to its entry.
	resp, body = doRequest(t, http.MethodGet, base+"/events", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []map[string]string
	require.NoError(t, json.Unmarshal(body["events"], &events))
	require.NotEmpty(t, events)
	assert.Equal(t, "saved", events[0]["kind"])
	assert.Equal(t, tempID, events[0]["ref"])

	resp, body = doRequest(t, http.MethodGet, base+"/collections/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []domain.Product
	require.NoError(t, json.Unmarshal(body["items"], &items))
	require.Len(t, items, 1)
	assert.NotEqual(t, tempID, items[0].ID, "temp id should be reconciled in place")

	store.mu.Lock()
	assert.Len(t, store.products, 1)
	store.mu.Unlock()
}

func TestSessionClose(t *testing.T) {
	srv, _, _ := setupTestServer(t)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sessionID string
	require.NoError(t, json.Unmarshal(body["session_id"], &sessionID))

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/sessions/"+sessionID+"/events", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
