package collections

import (
	"context"
	"time"

	"github.com/ignite/brandhub/internal/domain"
)

// Repository defines the data access contract for collection entities.
// Update and Delete return ErrNotFound for missing rows. Implementations
// must be safe for concurrent use.
type Repository interface {
	CreateObjective(ctx context.Context, o *domain.Objective) error
	UpdateObjective(ctx context.Context, companyID, id string, p ObjectivePatch) error
	DeleteObjective(ctx context.Context, companyID, id string) error

	CreateProduct(ctx context.Context, pr *domain.Product) error
	UpdateProduct(ctx context.Context, companyID, id string, p ProductPatch) error
	DeleteProduct(ctx context.Context, companyID, id string) error

	CreateCompetitor(ctx context.Context, c *domain.Competitor) error
	UpdateCompetitor(ctx context.Context, companyID, id string, p CompetitorPatch) error
	DeleteCompetitor(ctx context.Context, companyID, id string) error
}

// ObjectivePatch holds mutable objective fields. Nil fields are not applied.
type ObjectivePatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Metric      *string    `json:"metric"`
	TargetValue *float64   `json:"target_value"`
	DueDate     *time.Time `json:"due_date"`
	Position    *int       `json:"position"`
}

// ProductPatch holds mutable product fields. Nil fields are not applied.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	URL         *string  `json:"url"`
	Price       *float64 `json:"price"`
	Position    *int     `json:"position"`
}

// CompetitorPatch holds mutable competitor fields. Nil fields are not applied.
type CompetitorPatch struct {
	Name     *string `json:"name"`
	Website  *string `json:"website"`
	Notes    *string `json:"notes"`
	Position *int    `json:"position"`
}
