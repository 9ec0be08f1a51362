package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/ignite/brandhub/internal/domain"
)

// Snapshot slice names, used as keys in Snapshot.Errs.
const (
	SliceCompany     = "company"
	SliceStrategy    = "strategy"
	SliceBranding    = "branding"
	SliceVoice       = "voice"
	SliceEmail       = "email"
	SliceObjectives  = "objectives"
	SliceProducts    = "products"
	SliceCompetitors = "competitors"
)

// Snapshot bundles everything the profile editor renders for one company.
// A slice that failed to load is left at its zero value and recorded in
// Errs; the other slices are still usable.
type Snapshot struct {
	Company     *domain.Company       `json:"company"`
	Strategy    *domain.Strategy      `json:"strategy"`
	Branding    *domain.Branding      `json:"branding"`
	Voice       *domain.BrandVoice    `json:"voice"`
	Email       *domain.EmailSettings `json:"email"`
	Objectives  []domain.Objective    `json:"objectives"`
	Products    []domain.Product      `json:"products"`
	Competitors []domain.Competitor   `json:"competitors"`

	// Errs maps slice name -> failure description for slices that could
	// not be loaded. Empty when the load was clean.
	Errs map[string]string `json:"errors,omitempty"`
}

// Failed reports whether the named slice failed to load.
func (s *Snapshot) Failed(slice string) bool {
	_, ok := s.Errs[slice]
	return ok
}

// IdentityChecker reports the verification state of a sending address.
// Implementations live in internal/emailidentity; nil disables the check.
type IdentityChecker interface {
	VerificationStatus(ctx context.Context, email string) (domain.EmailVerification, error)
}

// Service implements aggregate load and per-sub-record commit logic.
// All public methods are safe for concurrent use if the underlying
// repository is concurrency-safe.
type Service struct {
	repo     Repository
	identity IdentityChecker
}

// NewService creates a profile service backed by the given repository.
// identity may be nil.
func NewService(repo Repository, identity IdentityChecker) *Service {
	return &Service{repo: repo, identity: identity}
}

// Load fetches the full aggregate for a company. Every slice is fetched
// concurrently; a failed slice is recorded in Snapshot.Errs instead of
// failing the load. Missing singleton sub-records are created empty.
func (s *Service) Load(ctx context.Context, companyID string) (*Snapshot, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company id is required")
	}

	snap := &Snapshot{Errs: make(map[string]string)}
	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(slice string, err error) {
		log.Printf("[profile.Service] load %s for company %s: %v", slice, companyID, err)
		mu.Lock()
		snap.Errs[slice] = err.Error()
		mu.Unlock()
	}

	run := func(slice string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				fail(slice, err)
			}
		}()
	}

	run(SliceCompany, func() error {
		c, err := s.repo.GetCompany(ctx, companyID)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Company = c
		mu.Unlock()
		return nil
	})
	run(SliceStrategy, func() error {
		st, err := s.ensureStrategy(ctx, companyID)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Strategy = st
		mu.Unlock()
		return nil
	})
	run(SliceBranding, func() error {
		b, err := s.ensureBranding(ctx, companyID)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Branding = b
		mu.Unlock()
		return nil
	})
	run(SliceVoice, func() error {
		v, err := s.ensureVoice(ctx, companyID)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Voice = v
		mu.Unlock()
		return nil
	})
	run(SliceEmail, func() error {
		e, err := s.ensureEmailSettings(ctx, companyID)
		if err != nil {
			return err
		}
		s.attachVerification(ctx, e)
		mu.Lock()
		snap.Email = e
		mu.Unlock()
		return nil
	})
	run(SliceObjectives, func() error {
		objs, err := s.repo.ListObjectives(ctx, companyID)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Objectives = objs
		mu.Unlock()
		return nil
	})
	run(SliceProducts, func() error {
		prods, err := s.repo.ListProducts(ctx, companyID)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Products = prods
		mu.Unlock()
		return nil
	})
	run(SliceCompetitors, func() error {
		comps, err := s.repo.ListCompetitors(ctx, companyID)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Competitors = comps
		mu.Unlock()
		return nil
	})

	wg.Wait()
	if len(snap.Errs) == 0 {
		snap.Errs = nil
	}
	return snap, nil
}

// ensureStrategy returns the company's strategy row, creating an empty one
// if none exists. Losing the create race is fine: the winner's row is
// re-fetched instead of surfacing the conflict.
func (s *Service) ensureStrategy(ctx context.Context, companyID string) (*domain.Strategy, error) {
	st, err := s.repo.GetStrategy(ctx, companyID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	st = &domain.Strategy{ID: uuid.New().String(), CompanyID: companyID}
	switch err := s.repo.CreateStrategy(ctx, st); {
	case err == nil:
		return st, nil
	case errors.Is(err, ErrConflict):
		return s.repo.GetStrategy(ctx, companyID)
	default:
		return nil, err
	}
}

func (s *Service) ensureBranding(ctx context.Context, companyID string) (*domain.Branding, error) {
	b, err := s.repo.GetBranding(ctx, companyID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	b = &domain.Branding{ID: uuid.New().String(), CompanyID: companyID}
	switch err := s.repo.CreateBranding(ctx, b); {
	case err == nil:
		return b, nil
	case errors.Is(err, ErrConflict):
		return s.repo.GetBranding(ctx, companyID)
	default:
		return nil, err
	}
}

func (s *Service) ensureVoice(ctx context.Context, companyID string) (*domain.BrandVoice, error) {
	v, err := s.repo.GetVoice(ctx, companyID)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	v = &domain.BrandVoice{ID: uuid.New().String(), CompanyID: companyID}
	switch err := s.repo.CreateVoice(ctx, v); {
	case err == nil:
		return v, nil
	case errors.Is(err, ErrConflict):
		return s.repo.GetVoice(ctx, companyID)
	default:
		return nil, err
	}
}

func (s *Service) ensureEmailSettings(ctx context.Context, companyID string) (*domain.EmailSettings, error) {
	e, err := s.repo.GetEmailSettings(ctx, companyID)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	e = &domain.EmailSettings{ID: uuid.New().String(), CompanyID: companyID}
	switch err := s.repo.CreateEmailSettings(ctx, e); {
	case err == nil:
		return e, nil
	case errors.Is(err, ErrConflict):
		return s.repo.GetEmailSettings(ctx, companyID)
	default:
		return nil, err
	}
}

// attachVerification fills in the SES verification status for the sending
// address. Lookup failures downgrade to "unknown" rather than failing the
// email slice; deliverability status is advisory.
func (s *Service) attachVerification(ctx context.Context, e *domain.EmailSettings) {
	if e == nil {
		return
	}
	if s.identity == nil || e.SenderEmail == "" {
		e.VerificationStatus = domain.EmailUnknown
		return
	}
	status, err := s.identity.VerificationStatus(ctx, e.SenderEmail)
	if err != nil {
		log.Printf("[profile.Service] identity check for %s: %v", e.SenderEmail, err)
		e.VerificationStatus = domain.EmailUnknown
		return
	}
	e.VerificationStatus = status
}

// UpdateCompany commits changed company fields.
func (s *Service) UpdateCompany(ctx context.Context, companyID string, p CompanyPatch) (*domain.Company, error) {
	return s.repo.UpdateCompany(ctx, companyID, p)
}

// UpdateStrategy commits changed strategy fields.
func (s *Service) UpdateStrategy(ctx context.Context, companyID string, p StrategyPatch) (*domain.Strategy, error) {
	return s.repo.UpdateStrategy(ctx, companyID, p)
}

// UpdateBranding commits changed branding fields.
func (s *Service) UpdateBranding(ctx context.Context, companyID string, p BrandingPatch) (*domain.Branding, error) {
	return s.repo.UpdateBranding(ctx, companyID, p)
}

// UpdateVoice commits changed brand-voice fields.
func (s *Service) UpdateVoice(ctx context.Context, companyID string, p VoicePatch) (*domain.BrandVoice, error) {
	return s.repo.UpdateVoice(ctx, companyID, p)
}

// UpdateEmailSettings commits changed email fields and refreshes the
// verification status for the (possibly new) sending address.
func (s *Service) UpdateEmailSettings(ctx context.Context, companyID string, p EmailPatch) (*domain.EmailSettings, error) {
	e, err := s.repo.UpdateEmailSettings(ctx, companyID, p)
	if err != nil {
		return nil, err
	}
	s.attachVerification(ctx, e)
	return e, nil
}

// ApplyGenerated merges generated content into a singleton sub-record
// through the same change-only path as a user edit: fields whose value
// already matches the stored row are skipped, and if nothing differs no
// write is issued at all. Returns the number of fields actually written.
func (s *Service) ApplyGenerated(ctx context.Context, companyID string, kind domain.ProfileKind, fields map[string]string) (int, error) {
	switch kind {
	case domain.KindStrategy:
		return s.mergeStrategy(ctx, companyID, fields)
	case domain.KindBranding:
		return s.mergeBranding(ctx, companyID, fields)
	case domain.KindVoice:
		return s.mergeVoice(ctx, companyID, fields)
	case domain.KindEmailSettings:
		return s.mergeEmail(ctx, companyID, fields)
	default:
		return 0, fmt.Errorf("%w: kind %q", ErrUnknownField, kind)
	}
}

// changed returns a patch pointer when v differs from current, nil otherwise.
func changed(current, v string) *string {
	if v == current {
		return nil
	}
	return &v
}

func (s *Service) mergeStrategy(ctx context.Context, companyID string, fields map[string]string) (int, error) {
	cur, err := s.ensureStrategy(ctx, companyID)
	if err != nil {
		return 0, err
	}
	var p StrategyPatch
	n := 0
	for key, v := range fields {
		var dst *string
		switch key {
		case "mission":
			dst = changed(cur.Mission, v)
			p.Mission = dst
		case "target_audience":
			dst = changed(cur.TargetAudience, v)
			p.TargetAudience = dst
		case "value_proposition":
			dst = changed(cur.ValueProp, v)
			p.ValueProp = dst
		case "differentiators":
			dst = changed(cur.Differentiators, v)
			p.Differentiators = dst
		default:
			return 0, fmt.Errorf("%w: strategy.%s", ErrUnknownField, key)
		}
		if dst != nil {
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if _, err := s.repo.UpdateStrategy(ctx, companyID, p); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Service) mergeBranding(ctx context.Context, companyID string, fields map[string]string) (int, error) {
	cur, err := s.ensureBranding(ctx, companyID)
	if err != nil {
		return 0, err
	}
	var p BrandingPatch
	n := 0
	for key, v := range fields {
		var dst *string
		switch key {
		case "logo_url":
			dst = changed(cur.LogoURL, v)
			p.LogoURL = dst
		case "primary_color":
			dst = changed(cur.PrimaryColor, v)
			p.PrimaryColor = dst
		case "secondary_color":
			dst = changed(cur.SecondaryColor, v)
			p.SecondaryColor = dst
		case "font_family":
			dst = changed(cur.FontFamily, v)
			p.FontFamily = dst
		case "tagline":
			dst = changed(cur.Tagline, v)
			p.Tagline = dst
		default:
			return 0, fmt.Errorf("%w: branding.%s", ErrUnknownField, key)
		}
		if dst != nil {
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if _, err := s.repo.UpdateBranding(ctx, companyID, p); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Service) mergeVoice(ctx context.Context, companyID string, fields map[string]string) (int, error) {
	cur, err := s.ensureVoice(ctx, companyID)
	if err != nil {
		return 0, err
	}
	var p VoicePatch
	n := 0
	for key, v := range fields {
		var dst *string
		switch key {
		case "tone":
			dst = changed(cur.Tone, v)
			p.Tone = dst
		case "personality":
			dst = changed(cur.Personality, v)
			p.Personality = dst
		case "guidelines":
			dst = changed(cur.Guidelines, v)
			p.Guidelines = dst
		case "keywords":
			dst = changed(cur.Keywords, v)
			p.Keywords = dst
		default:
			return 0, fmt.Errorf("%w: voice.%s", ErrUnknownField, key)
		}
		if dst != nil {
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if _, err := s.repo.UpdateVoice(ctx, companyID, p); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Service) mergeEmail(ctx context.Context, companyID string, fields map[string]string) (int, error) {
	cur, err := s.ensureEmailSettings(ctx, companyID)
	if err != nil {
		return 0, err
	}
	var p EmailPatch
	n := 0
	for key, v := range fields {
		var dst *string
		switch key {
		case "sender_name":
			dst = changed(cur.SenderName, v)
			p.SenderName = dst
		case "sender_email":
			dst = changed(cur.SenderEmail, v)
			p.SenderEmail = dst
		case "reply_to":
			dst = changed(cur.ReplyTo, v)
			p.ReplyTo = dst
		case "footer":
			dst = changed(cur.Footer, v)
			p.Footer = dst
		default:
			return 0, fmt.Errorf("%w: email.%s", ErrUnknownField, key)
		}
		if dst != nil {
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if _, err := s.repo.UpdateEmailSettings(ctx, companyID, p); err != nil {
		return 0, err
	}
	return n, nil
}
