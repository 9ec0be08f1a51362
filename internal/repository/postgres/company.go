package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/service/company"
)

// ResolverRepo implements company.Repository against PostgreSQL.
type ResolverRepo struct{ db *sql.DB }

// NewResolverRepo creates a Postgres-backed resolution repository.
func NewResolverRepo(db *sql.DB) *ResolverRepo { return &ResolverRepo{db: db} }

func (r *ResolverRepo) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p := &domain.UserProfile{}
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, COALESCE(email,''), COALESCE(display_name,''), primary_company_id
		FROM user_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Email, &p.DisplayName, &p.PrimaryCompanyID)
	if err == sql.ErrNoRows {
		return nil, company.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return p, nil
}

// ListMemberships orders by joined_at then company_id so resolution of a
// user with no primary flag is deterministic.
func (r *ResolverRepo) ListMemberships(ctx context.Context, userID string) ([]domain.CompanyMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, company_id, COALESCE(role,'member'), is_primary, joined_at
		FROM company_members
		WHERE user_id = $1
		ORDER BY joined_at ASC, company_id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var out []domain.CompanyMember
	for rows.Next() {
		var m domain.CompanyMember
		if err := rows.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.IsPrimary, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	return out, nil
}
