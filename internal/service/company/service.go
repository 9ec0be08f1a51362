package company

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ResolutionCache caches userID -> companyID lookups. Implementations live
// in internal/cache; a nil cache disables caching.
type ResolutionCache interface {
	GetCompany(ctx context.Context, userID string) (string, bool, error)
	SetCompany(ctx context.Context, userID, companyID string) error
	InvalidateCompany(ctx context.Context, userID string) error
}

// Service resolves the acting user's company. All public methods are safe
// for concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo  Repository
	cache ResolutionCache
}

// NewService creates a company service backed by the given repository.
// cache may be nil.
func NewService(repo Repository, cache ResolutionCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Resolve returns the company id the user should be editing, falling back
// through profile primary -> primary membership -> oldest membership.
// Returns ErrNoCompany when the user has no memberships at all.
func (s *Service) Resolve(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}

	if s.cache != nil {
		if id, ok, err := s.cache.GetCompany(ctx, userID); err != nil {
			log.Printf("[company.Service] cache read failed for user %s: %v", userID, err)
		} else if ok {
			return id, nil
		}
	}

	id, err := s.resolve(ctx, userID)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.SetCompany(ctx, userID, id); err != nil {
			log.Printf("[company.Service] cache write failed for user %s: %v", userID, err)
		}
	}
	return id, nil
}

func (s *Service) resolve(ctx context.Context, userID string) (string, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return "", fmt.Errorf("load user profile: %w", err)
	}
	if profile != nil && profile.PrimaryCompanyID != nil && *profile.PrimaryCompanyID != "" {
		return *profile.PrimaryCompanyID, nil
	}

	// Users predating the primary-company column fall through to memberships.
	members, err := s.repo.ListMemberships(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list memberships: %w", err)
	}
	if len(members) == 0 {
		return "", ErrNoCompany
	}

	for _, m := range members {
		if m.IsPrimary {
			return m.CompanyID, nil
		}
	}

	// No primary flag anywhere; the repository orders by joined_at so the
	// first entry is the oldest membership.
	return members[0].CompanyID, nil
}

// SwitchCompany invalidates any cached resolution for the user. Call it
// when the user changes which company they are editing.
func (s *Service) SwitchCompany(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.InvalidateCompany(ctx, userID); err != nil {
		return fmt.Errorf("invalidate cached company: %w", err)
	}
	return nil
}

// Session binds a user to the company they are editing. It is created on
// login or company switch and discarded on logout or switch; components
// downstream take it explicitly instead of consulting ambient state.
type Session struct {
	UserID    string
	CompanyID string
	StartedAt time.Time
}

// NewSession resolves the user's company and opens an editing session for it.
func (s *Service) NewSession(ctx context.Context, userID string) (*Session, error) {
	companyID, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: userID, CompanyID: companyID, StartedAt: time.Now()}, nil
}
