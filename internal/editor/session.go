package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/service/collections"
	"github.com/ignite/brandhub/internal/service/profile"
)

// KindCompany scopes field buffers bound to the company row itself, next to
// the domain.ProfileKind values for the singleton sub-records.
const KindCompany = "company"

// Session owns one user's in-flight edit state for one company. It is
// created per login/company switch and discarded on logout/switch; its
// background writes use the session's own context, not the triggering
// request's, so a finished HTTP request doesn't cancel a pending save.
type Session struct {
	ID        string
	UserID    string
	CompanyID string
	StartedAt time.Time

	mu     sync.Mutex
	fields map[string]*FieldBuffer
	snap   *profile.Snapshot

	Objectives  *Collection[domain.Objective, collections.ObjectivePatch]
	Products    *Collection[domain.Product, collections.ProductPatch]
	Competitors *Collection[domain.Competitor, collections.CompetitorPatch]

	profiles *profile.Service
	notify   Notifier

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession opens an edit session over a freshly loaded snapshot.
func NewSession(userID, companyID string, snap *profile.Snapshot, profiles *profile.Service, colls *collections.Service, notify Notifier) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CompanyID: companyID,
		StartedAt: time.Now(),
		fields:    make(map[string]*FieldBuffer),
		snap:      snap,
		profiles:  profiles,
		notify:    notify,
		ctx:       ctx,
		cancel:    cancel,
	}

	s.Objectives = NewCollection(
		"objectives", snap.Objectives,
		func(o domain.Objective) string { return o.ID },
		func(o *domain.Objective, id string) { o.ID = id },
		applyObjectivePatch,
		Remote[domain.Objective, collections.ObjectivePatch]{
			Create: func(ctx context.Context, draft domain.Objective) (*domain.Objective, error) {
				return colls.AddObjective(ctx, companyID, draft)
			},
			Update: func(ctx context.Context, id string, p collections.ObjectivePatch) error {
				return colls.UpdateObjective(ctx, companyID, id, p)
			},
			Delete: func(ctx context.Context, id string) error {
				return colls.RemoveObjective(ctx, companyID, id)
			},
		},
		notify,
	)
	s.Products = NewCollection(
		"products", snap.Products,
		func(p domain.Product) string { return p.ID },
		func(p *domain.Product, id string) { p.ID = id },
		applyProductPatch,
		Remote[domain.Product, collections.ProductPatch]{
			Create: func(ctx context.Context, draft domain.Product) (*domain.Product, error) {
				return colls.AddProduct(ctx, companyID, draft)
			},
			Update: func(ctx context.Context, id string, p collections.ProductPatch) error {
				return colls.UpdateProduct(ctx, companyID, id, p)
			},
			Delete: func(ctx context.Context, id string) error {
				return colls.RemoveProduct(ctx, companyID, id)
			},
		},
		notify,
	)
	s.Competitors = NewCollection(
		"competitors", snap.Competitors,
		func(c domain.Competitor) string { return c.ID },
		func(c *domain.Competitor, id string) { c.ID = id },
		applyCompetitorPatch,
		Remote[domain.Competitor, collections.CompetitorPatch]{
			Create: func(ctx context.Context, draft domain.Competitor) (*domain.Competitor, error) {
				return colls.AddCompetitor(ctx, companyID, draft)
			},
			Update: func(ctx context.Context, id string, p collections.CompetitorPatch) error {
				return colls.UpdateCompetitor(ctx, companyID, id, p)
			},
			Delete: func(ctx context.Context, id string) error {
				return colls.RemoveCompetitor(ctx, companyID, id)
			},
		},
		notify,
	)
	return s
}

// Context returns the session-lifetime context for background writes.
func (s *Session) Context() context.Context { return s.ctx }

// Close discards the session and cancels its context, aborting any
// background write still running on it. Callers that want pending writes
// to land first call Flush before Close.
func (s *Session) Close() {
	s.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.fields {
		b.Rebind(b.Value())
	}
}

// Refresh rebinds every buffer and collection to a fresh snapshot,
// discarding stale dirty state from the previous aggregate instance.
func (s *Session) Refresh(snap *profile.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	for scope, b := range s.fields {
		kind, field, _ := splitScope(scope)
		b.Rebind(baseValue(snap, kind, field))
	}
	s.mu.Unlock()

	s.Objectives.Rebind(snap.Objectives)
	s.Products.Rebind(snap.Products)
	s.Competitors.Rebind(snap.Competitors)
}

// Field returns the buffer for kind.field, creating it on first use bound
// to the snapshot's value. kind is KindCompany or a domain.ProfileKind.
func (s *Session) Field(kind, field string) (*FieldBuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scope := kind + "." + field
	if b, ok := s.fields[scope]; ok {
		return b, nil
	}

	commit, err := s.commitFunc(kind, field)
	if err != nil {
		return nil, err
	}
	b := NewFieldBuffer(scope, baseValue(s.snap, kind, field), commit, s.notify)
	s.fields[scope] = b
	return b, nil
}

// SetField records a local edit on kind.field.
func (s *Session) SetField(kind, field, value string) error {
	b, err := s.Field(kind, field)
	if err != nil {
		return err
	}
	b.SetLocal(value)
	return nil
}

// CommitField commits kind.field if it changed (the blur boundary).
func (s *Session) CommitField(ctx context.Context, kind, field string) error {
	b, err := s.Field(kind, field)
	if err != nil {
		return err
	}
	return b.Commit(ctx)
}

// Flush waits for all background collection writes. Tests and shutdown only.
func (s *Session) Flush() {
	s.Objectives.Flush()
	s.Products.Flush()
	s.Competitors.Flush()
}

func splitScope(scope string) (kind, field string, ok bool) {
	for i := 0; i < len(scope); i++ {
		if scope[i] == '.' {
			return scope[:i], scope[i+1:], true
		}
	}
	return "", "", false
}

// commitFunc routes a single-field commit to the sub-record that owns it.
func (s *Session) commitFunc(kind, field string) (CommitFunc, error) {
	companyID := s.CompanyID
	switch kind {
	case KindCompany:
		switch field {
		case "name", "website", "industry", "description":
		default:
			return nil, fmt.Errorf("%w: %s.%s", profile.ErrUnknownField, kind, field)
		}
		return func(ctx context.Context, v string) error {
			var p profile.CompanyPatch
			switch field {
			case "name":
				p.Name = &v
			case "website":
				p.Website = &v
			case "industry":
				p.Industry = &v
			case "description":
				p.Description = &v
			}
			_, err := s.profiles.UpdateCompany(ctx, companyID, p)
			return err
		}, nil

	case string(domain.KindStrategy):
		switch field {
		case "mission", "target_audience", "value_proposition", "differentiators":
		default:
			return nil, fmt.Errorf("%w: %s.%s", profile.ErrUnknownField, kind, field)
		}
		return func(ctx context.Context, v string) error {
			var p profile.StrategyPatch
			switch field {
			case "mission":
				p.Mission = &v
			case "target_audience":
				p.TargetAudience = &v
			case "value_proposition":
				p.ValueProp = &v
			case "differentiators":
				p.Differentiators = &v
			}
			_, err := s.profiles.UpdateStrategy(ctx, companyID, p)
			return err
		}, nil

	case string(domain.KindBranding):
		switch field {
		case "logo_url", "primary_color", "secondary_color", "font_family", "tagline":
		default:
			return nil, fmt.Errorf("%w: %s.%s", profile.ErrUnknownField, kind, field)
		}
		return func(ctx context.Context, v string) error {
			var p profile.BrandingPatch
			switch field {
			case "logo_url":
				p.LogoURL = &v
			case "primary_color":
				p.PrimaryColor = &v
			case "secondary_color":
				p.SecondaryColor = &v
			case "font_family":
				p.FontFamily = &v
			case "tagline":
				p.Tagline = &v
			}
			_, err := s.profiles.UpdateBranding(ctx, companyID, p)
			return err
		}, nil

	case string(domain.KindVoice):
		switch field {
		case "tone", "personality", "guidelines", "keywords":
		default:
			return nil, fmt.Errorf("%w: %s.%s", profile.ErrUnknownField, kind, field)
		}
		return func(ctx context.Context, v string) error {
			var p profile.VoicePatch
			switch field {
			case "tone":
				p.Tone = &v
			case "personality":
				p.Personality = &v
			case "guidelines":
				p.Guidelines = &v
			case "keywords":
				p.Keywords = &v
			}
			_, err := s.profiles.UpdateVoice(ctx, companyID, p)
			return err
		}, nil

	case string(domain.KindEmailSettings):
		switch field {
		case "sender_name", "sender_email", "reply_to", "footer":
		default:
			return nil, fmt.Errorf("%w: %s.%s", profile.ErrUnknownField, kind, field)
		}
		return func(ctx context.Context, v string) error {
			var p profile.EmailPatch
			switch field {
			case "sender_name":
				p.SenderName = &v
			case "sender_email":
				p.SenderEmail = &v
			case "reply_to":
				p.ReplyTo = &v
			case "footer":
				p.Footer = &v
			}
			_, err := s.profiles.UpdateEmailSettings(ctx, companyID, p)
			return err
		}, nil
	}
	return nil, fmt.Errorf("%w: kind %q", profile.ErrUnknownField, kind)
}

// baseValue reads the snapshot value for kind.field. Missing slices (failed
// load) contribute empty strings; the buffer still works and the first
// commit writes the user's value.
func baseValue(snap *profile.Snapshot, kind, field string) string {
	if snap == nil {
		return ""
	}
	switch kind {
	case KindCompany:
		if snap.Company == nil {
			return ""
		}
		switch field {
		case "name":
			return snap.Company.Name
		case "website":
			return snap.Company.Website
		case "industry":
			return snap.Company.Industry
		case "description":
			return snap.Company.Description
		}
	case string(domain.KindStrategy):
		if snap.Strategy == nil {
			return ""
		}
		switch field {
		case "mission":
			return snap.Strategy.Mission
		case "target_audience":
			return snap.Strategy.TargetAudience
		case "value_proposition":
			return snap.Strategy.ValueProp
		case "differentiators":
			return snap.Strategy.Differentiators
		}
	case string(domain.KindBranding):
		if snap.Branding == nil {
			return ""
		}
		switch field {
		case "logo_url":
			return snap.Branding.LogoURL
		case "primary_color":
			return snap.Branding.PrimaryColor
		case "secondary_color":
			return snap.Branding.SecondaryColor
		case "font_family":
			return snap.Branding.FontFamily
		case "tagline":
			return snap.Branding.Tagline
		}
	case string(domain.KindVoice):
		if snap.Voice == nil {
			return ""
		}
		switch field {
		case "tone":
			return snap.Voice.Tone
		case "personality":
			return snap.Voice.Personality
		case "guidelines":
			return snap.Voice.Guidelines
		case "keywords":
			return snap.Voice.Keywords
		}
	case string(domain.KindEmailSettings):
		if snap.Email == nil {
			return ""
		}
		switch field {
		case "sender_name":
			return snap.Email.SenderName
		case "sender_email":
			return snap.Email.SenderEmail
		case "reply_to":
			return snap.Email.ReplyTo
		case "footer":
			return snap.Email.Footer
		}
	}
	return ""
}

func applyObjectivePatch(o *domain.Objective, p collections.ObjectivePatch) {
	if p.Title != nil {
		o.Title = *p.Title
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Metric != nil {
		o.Metric = *p.Metric
	}
	if p.TargetValue != nil {
		o.TargetValue = *p.TargetValue
	}
	if p.DueDate != nil {
		d := *p.DueDate
		o.DueDate = &d
	}
	if p.Position != nil {
		o.Position = *p.Position
	}
}

func applyProductPatch(pr *domain.Product, p collections.ProductPatch) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.URL != nil {
		pr.URL = *p.URL
	}
	if p.Price != nil {
		v := *p.Price
		pr.Price = &v
	}
	if p.Position != nil {
		pr.Position = *p.Position
	}
}

func applyCompetitorPatch(c *domain.Competitor, p collections.CompetitorPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Website != nil {
		c.Website = *p.Website
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Position != nil {
		c.Position = *p.Position
	}
}
