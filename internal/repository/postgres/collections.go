package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/service/collections"
)

// CollectionsRepo implements collections.Repository against PostgreSQL.
type CollectionsRepo struct{ db *sql.DB }

// NewCollectionsRepo creates a Postgres-backed collections repository.
func NewCollectionsRepo(db *sql.DB) *CollectionsRepo { return &CollectionsRepo{db: db} }

func (r *CollectionsRepo) CreateObjective(ctx context.Context, o *domain.Objective) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_objectives (id, company_id, title, description, metric,
		                                target_value, due_date, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
		        COALESCE((SELECT MAX(position)+1 FROM company_objectives WHERE company_id = $2), 0),
		        NOW(), NOW())
	`, o.ID, o.CompanyID, o.Title, o.Description, o.Metric, o.TargetValue, o.DueDate)
	if err != nil {
		return fmt.Errorf("create objective: %w", err)
	}
	return nil
}

func (r *CollectionsRepo) UpdateObjective(ctx context.Context, companyID, id string, p collections.ObjectivePatch) error {
	set, args := patchSet(map[string]interface{}{
		"title":        strOrNil(p.Title),
		"description":  strOrNil(p.Description),
		"metric":       strOrNil(p.Metric),
		"target_value": f64OrNil(p.TargetValue),
		"due_date":     timeOrNil(p.DueDate),
		"position":     intOrNil(p.Position),
	})
	if len(set) == 0 {
		return nil
	}
	args = append(args, id, companyID)
	q := fmt.Sprintf(`UPDATE company_objectives SET %s, updated_at = NOW() WHERE id = $%d AND company_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args))
	return r.execOwned(ctx, "update objective", q, args...)
}

func (r *CollectionsRepo) DeleteObjective(ctx context.Context, companyID, id string) error {
	return r.execOwned(ctx, "delete objective",
		`DELETE FROM company_objectives WHERE id = $1 AND company_id = $2`, id, companyID)
}

func (r *CollectionsRepo) CreateProduct(ctx context.Context, pr *domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_products (id, company_id, name, description, url, price,
		                              position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6,
		        COALESCE((SELECT MAX(position)+1 FROM company_products WHERE company_id = $2), 0),
		        NOW(), NOW())
	`, pr.ID, pr.CompanyID, pr.Name, pr.Description, pr.URL, pr.Price)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *CollectionsRepo) UpdateProduct(ctx context.Context, companyID, id string, p collections.ProductPatch) error {
	set, args := patchSet(map[string]interface{}{
		"name":        strOrNil(p.Name),
		"description": strOrNil(p.Description),
		"url":         strOrNil(p.URL),
		"price":       f64OrNil(p.Price),
		"position":    intOrNil(p.Position),
	})
	if len(set) == 0 {
		return nil
	}
	args = append(args, id, companyID)
	q := fmt.Sprintf(`UPDATE company_products SET %s, updated_at = NOW() WHERE id = $%d AND company_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args))
	return r.execOwned(ctx, "update product", q, args...)
}

func (r *CollectionsRepo) DeleteProduct(ctx context.Context, companyID, id string) error {
	return r.execOwned(ctx, "delete product",
		`DELETE FROM company_products WHERE id = $1 AND company_id = $2`, id, companyID)
}

func (r *CollectionsRepo) CreateCompetitor(ctx context.Context, c *domain.Competitor) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_competitors (id, company_id, name, website, notes,
		                                 position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5,
		        COALESCE((SELECT MAX(position)+1 FROM company_competitors WHERE company_id = $2), 0),
		        NOW(), NOW())
	`, c.ID, c.CompanyID, c.Name, c.Website, c.Notes)
	if err != nil {
		return fmt.Errorf("create competitor: %w", err)
	}
	return nil
}

func (r *CollectionsRepo) UpdateCompetitor(ctx context.Context, companyID, id string, p collections.CompetitorPatch) error {
	set, args := patchSet(map[string]interface{}{
		"name":     strOrNil(p.Name),
		"website":  strOrNil(p.Website),
		"notes":    strOrNil(p.Notes),
		"position": intOrNil(p.Position),
	})
	if len(set) == 0 {
		return nil
	}
	args = append(args, id, companyID)
	q := fmt.Sprintf(`UPDATE company_competitors SET %s, updated_at = NOW() WHERE id = $%d AND company_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args))
	return r.execOwned(ctx, "update competitor", q, args...)
}

func (r *CollectionsRepo) DeleteCompetitor(ctx context.Context, companyID, id string) error {
	return r.execOwned(ctx, "delete competitor",
		`DELETE FROM company_competitors WHERE id = $1 AND company_id = $2`, id, companyID)
}

// execOwned runs a write scoped by company ownership and maps zero affected
// rows to ErrNotFound.
func (r *CollectionsRepo) execOwned(ctx context.Context, op, q string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return collections.ErrNotFound
	}
	return nil
}

func f64OrNil(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func intOrNil(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func timeOrNil(p *time.Time) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
