package domain

import (
	"time"
)

// Company is the aggregate root for everything a user edits in the brand hub.
// Companies are created by the onboarding flow, never by this service.
type Company struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Website     string    `json:"website" db:"website"`
	Industry    string    `json:"industry" db:"industry"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CompanyMember relates a user to a company with a role. A user may belong
// to any number of companies; at most one membership should carry IsPrimary.
type CompanyMember struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CompanyID string    `json:"company_id" db:"company_id"`
	Role      string    `json:"role" db:"role"`
	IsPrimary bool      `json:"is_primary" db:"is_primary"`
	JoinedAt  time.Time `json:"joined_at" db:"joined_at"`
}

// UserProfile carries the per-user fields the resolver consults. Users that
// predate the primary-company column have a nil PrimaryCompanyID.
type UserProfile struct {
	UserID           string  `json:"user_id" db:"user_id"`
	Email            string  `json:"email" db:"email"`
	DisplayName      string  `json:"display_name" db:"display_name"`
	PrimaryCompanyID *string `json:"primary_company_id" db:"primary_company_id"`
}
