package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/service/profile"
)

// ProfileRepo implements profile.Repository against PostgreSQL.
type ProfileRepo struct{ db *sql.DB }

// NewProfileRepo creates a Postgres-backed aggregate repository.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	c := &domain.Company{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(website,''), COALESCE(industry,''), COALESCE(description,''),
		       created_at, updated_at
		FROM companies
		WHERE id = $1
	`, companyID).Scan(&c.ID, &c.Name, &c.Website, &c.Industry, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

func (r *ProfileRepo) UpdateCompany(ctx context.Context, companyID string, p profile.CompanyPatch) (*domain.Company, error) {
	set, args := patchSet(map[string]interface{}{
		"name":        strOrNil(p.Name),
		"website":     strOrNil(p.Website),
		"industry":    strOrNil(p.Industry),
		"description": strOrNil(p.Description),
	})
	if len(set) == 0 {
		return r.GetCompany(ctx, companyID)
	}
	args = append(args, companyID)
	q := fmt.Sprintf(`UPDATE companies SET %s, updated_at = NOW() WHERE id = $%d`,
		strings.Join(set, ", "), len(args))
	if err := r.execExpectingRow(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	return r.GetCompany(ctx, companyID)
}

func (r *ProfileRepo) GetStrategy(ctx context.Context, companyID string) (*domain.Strategy, error) {
	s := &domain.Strategy{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, COALESCE(mission,''), COALESCE(target_audience,''),
		       COALESCE(value_proposition,''), COALESCE(differentiators,''), created_at, updated_at
		FROM company_strategies
		WHERE company_id = $1
	`, companyID).Scan(&s.ID, &s.CompanyID, &s.Mission, &s.TargetAudience,
		&s.ValueProp, &s.Differentiators, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get strategy: %w", err)
	}
	return s, nil
}

func (r *ProfileRepo) CreateStrategy(ctx context.Context, s *domain.Strategy) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_strategies (id, company_id, mission, target_audience,
		                                value_proposition, differentiators, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, s.ID, s.CompanyID, s.Mission, s.TargetAudience, s.ValueProp, s.Differentiators)
	if isUniqueViolation(err) {
		return profile.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create strategy: %w", err)
	}
	return nil
}

func (r *ProfileRepo) UpdateStrategy(ctx context.Context, companyID string, p profile.StrategyPatch) (*domain.Strategy, error) {
	set, args := patchSet(map[string]interface{}{
		"mission":           strOrNil(p.Mission),
		"target_audience":   strOrNil(p.TargetAudience),
		"value_proposition": strOrNil(p.ValueProp),
		"differentiators":   strOrNil(p.Differentiators),
	})
	if len(set) == 0 {
		return r.GetStrategy(ctx, companyID)
	}
	args = append(args, companyID)
	q := fmt.Sprintf(`UPDATE company_strategies SET %s, updated_at = NOW() WHERE company_id = $%d`,
		strings.Join(set, ", "), len(args))
	if err := r.execExpectingRow(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("update strategy: %w", err)
	}
	return r.GetStrategy(ctx, companyID)
}

func (r *ProfileRepo) GetBranding(ctx context.Context, companyID string) (*domain.Branding, error) {
	b := &domain.Branding{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, COALESCE(logo_url,''), COALESCE(primary_color,''),
		       COALESCE(secondary_color,''), COALESCE(font_family,''), COALESCE(tagline,''),
		       created_at, updated_at
		FROM company_brandings
		WHERE company_id = $1
	`, companyID).Scan(&b.ID, &b.CompanyID, &b.LogoURL, &b.PrimaryColor,
		&b.SecondaryColor, &b.FontFamily, &b.Tagline, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get branding: %w", err)
	}
	return b, nil
}

func (r *ProfileRepo) CreateBranding(ctx context.Context, b *domain.Branding) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_brandings (id, company_id, logo_url, primary_color,
		                               secondary_color, font_family, tagline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`, b.ID, b.CompanyID, b.LogoURL, b.PrimaryColor, b.SecondaryColor, b.FontFamily, b.Tagline)
	if isUniqueViolation(err) {
		return profile.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create branding: %w", err)
	}
	return nil
}

func (r *ProfileRepo) UpdateBranding(ctx context.Context, companyID string, p profile.BrandingPatch) (*domain.Branding, error) {
	set, args := patchSet(map[string]interface{}{
		"logo_url":        strOrNil(p.LogoURL),
		"primary_color":   strOrNil(p.PrimaryColor),
		"secondary_color": strOrNil(p.SecondaryColor),
		"font_family":     strOrNil(p.FontFamily),
		"tagline":         strOrNil(p.Tagline),
	})
	if len(set) == 0 {
		return r.GetBranding(ctx, companyID)
	}
	args = append(args, companyID)
	q := fmt.Sprintf(`UPDATE company_brandings SET %s, updated_at = NOW() WHERE company_id = $%d`,
		strings.Join(set, ", "), len(args))
	if err := r.execExpectingRow(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("update branding: %w", err)
	}
	return r.GetBranding(ctx, companyID)
}

func (r *ProfileRepo) GetVoice(ctx context.Context, companyID string) (*domain.BrandVoice, error) {
	v := &domain.BrandVoice{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, COALESCE(tone,''), COALESCE(personality,''),
		       COALESCE(guidelines,''), COALESCE(keywords,''), created_at, updated_at
		FROM company_voices
		WHERE company_id = $1
	`, companyID).Scan(&v.ID, &v.CompanyID, &v.Tone, &v.Personality,
		&v.Guidelines, &v.Keywords, &v.CreatedAt, &v.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get voice: %w", err)
	}
	return v, nil
}

func (r *ProfileRepo) CreateVoice(ctx context.Context, v *domain.BrandVoice) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_voices (id, company_id, tone, personality, guidelines, keywords,
		                            created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, v.ID, v.CompanyID, v.Tone, v.Personality, v.Guidelines, v.Keywords)
	if isUniqueViolation(err) {
		return profile.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create voice: %w", err)
	}
	return nil
}

func (r *ProfileRepo) UpdateVoice(ctx context.Context, companyID string, p profile.VoicePatch) (*domain.BrandVoice, error) {
	set, args := patchSet(map[string]interface{}{
		"tone":        strOrNil(p.Tone),
		"personality": strOrNil(p.Personality),
		"guidelines":  strOrNil(p.Guidelines),
		"keywords":    strOrNil(p.Keywords),
	})
	if len(set) == 0 {
		return r.GetVoice(ctx, companyID)
	}
	args = append(args, companyID)
	q := fmt.Sprintf(`UPDATE company_voices SET %s, updated_at = NOW() WHERE company_id = $%d`,
		strings.Join(set, ", "), len(args))
	if err := r.execExpectingRow(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("update voice: %w", err)
	}
	return r.GetVoice(ctx, companyID)
}

func (r *ProfileRepo) GetEmailSettings(ctx context.Context, companyID string) (*domain.EmailSettings, error) {
	e := &domain.EmailSettings{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, COALESCE(sender_name,''), COALESCE(sender_email,''),
		       COALESCE(reply_to,''), COALESCE(footer,''), created_at, updated_at
		FROM company_email_settings
		WHERE company_id = $1
	`, companyID).Scan(&e.ID, &e.CompanyID, &e.SenderName, &e.SenderEmail,
		&e.ReplyTo, &e.Footer, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get email settings: %w", err)
	}
	return e, nil
}

func (r *ProfileRepo) CreateEmailSettings(ctx context.Context, e *domain.EmailSettings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_email_settings (id, company_id, sender_name, sender_email,
		                                    reply_to, footer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, e.ID, e.CompanyID, e.SenderName, e.SenderEmail, e.ReplyTo, e.Footer)
	if isUniqueViolation(err) {
		return profile.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create email settings: %w", err)
	}
	return nil
}

func (r *ProfileRepo) UpdateEmailSettings(ctx context.Context, companyID string, p profile.EmailPatch) (*domain.EmailSettings, error) {
	set, args := patchSet(map[string]interface{}{
		"sender_name":  strOrNil(p.SenderName),
		"sender_email": strOrNil(p.SenderEmail),
		"reply_to":     strOrNil(p.ReplyTo),
		"footer":       strOrNil(p.Footer),
	})
	if len(set) == 0 {
		return r.GetEmailSettings(ctx, companyID)
	}
	args = append(args, companyID)
	q := fmt.Sprintf(`UPDATE company_email_settings SET %s, updated_at = NOW() WHERE company_id = $%d`,
		strings.Join(set, ", "), len(args))
	if err := r.execExpectingRow(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("update email settings: %w", err)
	}
	return r.GetEmailSettings(ctx, companyID)
}

func (r *ProfileRepo) ListObjectives(ctx context.Context, companyID string) ([]domain.Objective, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, title, COALESCE(description,''), COALESCE(metric,''),
		       COALESCE(target_value,0), due_date, position, created_at, updated_at
		FROM company_objectives
		WHERE company_id = $1
		ORDER BY position ASC, created_at ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list objectives: %w", err)
	}
	defer rows.Close()

	var out []domain.Objective
	for rows.Next() {
		var o domain.Objective
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.Title, &o.Description, &o.Metric,
			&o.TargetValue, &o.DueDate, &o.Position, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan objective: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *ProfileRepo) ListProducts(ctx context.Context, companyID string) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, name, COALESCE(description,''), COALESCE(url,''),
		       price, position, created_at, updated_at
		FROM company_products
		WHERE company_id = $1
		ORDER BY position ASC, created_at ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.URL,
			&p.Price, &p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepo) ListCompetitors(ctx context.Context, companyID string) ([]domain.Competitor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, name, COALESCE(website,''), COALESCE(notes,''),
		       position, created_at, updated_at
		FROM company_competitors
		WHERE company_id = $1
		ORDER BY position ASC, created_at ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list competitors: %w", err)
	}
	defer rows.Close()

	var out []domain.Competitor
	for rows.Next() {
		var c domain.Competitor
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Website, &c.Notes,
			&c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan competitor: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// execExpectingRow runs an UPDATE and maps zero affected rows to ErrNotFound.
func (r *ProfileRepo) execExpectingRow(ctx context.Context, q string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

// patchSet builds "col = $n" fragments for the non-nil values, in a stable
// column order so generated SQL is reproducible.
func patchSet(cols map[string]interface{}) ([]string, []interface{}) {
	names := make([]string, 0, len(cols))
	for name, v := range cols {
		if v != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	set := make([]string, 0, len(names))
	args := make([]interface{}, 0, len(names))
	for i, name := range names {
		set = append(set, fmt.Sprintf("%s = $%d", name, i+1))
		args = append(args, cols[name])
	}
	return set, args
}

func strOrNil(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
