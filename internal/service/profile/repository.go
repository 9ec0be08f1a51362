package profile

import (
	"context"

	"github.com/ignite/brandhub/internal/domain"
)

// Repository defines the data access contract for the company aggregate.
// Get methods return ErrNotFound for missing rows; Create methods return
// ErrConflict when the one-row-per-company constraint is violated.
// Implementations must be safe for concurrent use.
type Repository interface {
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	UpdateCompany(ctx context.Context, companyID string, p CompanyPatch) (*domain.Company, error)

	GetStrategy(ctx context.Context, companyID string) (*domain.Strategy, error)
	CreateStrategy(ctx context.Context, s *domain.Strategy) error
	UpdateStrategy(ctx context.Context, companyID string, p StrategyPatch) (*domain.Strategy, error)

	GetBranding(ctx context.Context, companyID string) (*domain.Branding, error)
	CreateBranding(ctx context.Context, b *domain.Branding) error
	UpdateBranding(ctx context.Context, companyID string, p BrandingPatch) (*domain.Branding, error)

	GetVoice(ctx context.Context, companyID string) (*domain.BrandVoice, error)
	CreateVoice(ctx context.Context, v *domain.BrandVoice) error
	UpdateVoice(ctx context.Context, companyID string, p VoicePatch) (*domain.BrandVoice, error)

	GetEmailSettings(ctx context.Context, companyID string) (*domain.EmailSettings, error)
	CreateEmailSettings(ctx context.Context, e *domain.EmailSettings) error
	UpdateEmailSettings(ctx context.Context, companyID string, p EmailPatch) (*domain.EmailSettings, error)

	ListObjectives(ctx context.Context, companyID string) ([]domain.Objective, error)
	ListProducts(ctx context.Context, companyID string) ([]domain.Product, error)
	ListCompetitors(ctx context.Context, companyID string) ([]domain.Competitor, error)
}

// CompanyPatch holds the mutable company fields. Nil fields are not applied.
type CompanyPatch struct {
	Name        *string `json:"name"`
	Website     *string `json:"website"`
	Industry    *string `json:"industry"`
	Description *string `json:"description"`
}

// StrategyPatch holds the mutable strategy fields. Nil fields are not applied.
type StrategyPatch struct {
	Mission         *string `json:"mission"`
	TargetAudience  *string `json:"target_audience"`
	ValueProp       *string `json:"value_proposition"`
	Differentiators *string `json:"differentiators"`
}

// BrandingPatch holds the mutable branding fields. Nil fields are not applied.
type BrandingPatch struct {
	LogoURL        *string `json:"logo_url"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	FontFamily     *string `json:"font_family"`
	Tagline        *string `json:"tagline"`
}

// VoicePatch holds the mutable brand-voice fields. Nil fields are not applied.
type VoicePatch struct {
	Tone        *string `json:"tone"`
	Personality *string `json:"personality"`
	Guidelines  *string `json:"guidelines"`
	Keywords    *string `json:"keywords"`
}

// EmailPatch holds the mutable email-settings fields. Nil fields are not applied.
type EmailPatch struct {
	SenderName  *string `json:"sender_name"`
	SenderEmail *string `json:"sender_email"`
	ReplyTo     *string `json:"reply_to"`
	Footer      *string `json:"footer"`
}
