package company

import (
	"context"

	"github.com/ignite/brandhub/internal/domain"
)

// Repository defines the data access contract for resolution.
// Implementations must be safe for concurrent use.
type Repository interface {
	// GetProfile returns the user's profile. Returns ErrProfileNotFound if
	// no row exists; any other error is a transport failure.
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)

	// ListMemberships returns every membership for the user, ordered by
	// joined_at ASC then company_id ASC so resolution is deterministic.
	ListMemberships(ctx context.Context, userID string) ([]domain.CompanyMember, error)
}
