package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/brandhub/internal/domain"
)

// Service implements collection business logic. All public methods are safe
// for concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a collections service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddObjective validates and persists a new objective, returning the row
// with its server-assigned id.
func (s *Service) AddObjective(ctx context.Context, companyID string, o domain.Objective) (*domain.Objective, error) {
	if o.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	o.ID = uuid.New().String()
	o.CompanyID = companyID
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	if err := s.repo.CreateObjective(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateObjective applies a patch to an objective.
func (s *Service) UpdateObjective(ctx context.Context, companyID, id string, p ObjectivePatch) error {
	return s.repo.UpdateObjective(ctx, companyID, id, p)
}

// RemoveObjective deletes an objective. Deletion is assumed to be confirmed
// by the caller; there is no soft delete.
func (s *Service) RemoveObjective(ctx context.Context, companyID, id string) error {
	return s.repo.DeleteObjective(ctx, companyID, id)
}

// AddProduct validates and persists a new product.
func (s *Service) AddProduct(ctx context.Context, companyID string, pr domain.Product) (*domain.Product, error) {
	if pr.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	pr.ID = uuid.New().String()
	pr.CompanyID = companyID
	pr.CreatedAt = time.Now()
	pr.UpdatedAt = pr.CreatedAt
	if err := s.repo.CreateProduct(ctx, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// UpdateProduct applies a patch to a product.
func (s *Service) UpdateProduct(ctx context.Context, companyID, id string, p ProductPatch) error {
	return s.repo.UpdateProduct(ctx, companyID, id, p)
}

// RemoveProduct deletes a product.
func (s *Service) RemoveProduct(ctx context.Context, companyID, id string) error {
	return s.repo.DeleteProduct(ctx, companyID, id)
}

// AddCompetitor validates and persists a new competitor.
func (s *Service) AddCompetitor(ctx context.Context, companyID string, c domain.Competitor) (*domain.Competitor, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	c.ID = uuid.New().String()
	c.CompanyID = companyID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	if err := s.repo.CreateCompetitor(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCompetitor applies a patch to a competitor.
func (s *Service) UpdateCompetitor(ctx context.Context, companyID, id string, p CompetitorPatch) error {
	return s.repo.UpdateCompetitor(ctx, companyID, id, p)
}

// RemoveCompetitor deletes a competitor.
func (s *Service) RemoveCompetitor(ctx context.Context, companyID, id string) error {
	return s.repo.DeleteCompetitor(ctx, companyID, id)
}
