package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/service/channels"
)

// ChannelsRepo implements channels.Repository against PostgreSQL. Each
// sub-resource has its own table with a (company_id, platform) unique key;
// saves are upserts so a first write creates the row.
type ChannelsRepo struct{ db *sql.DB }

// NewChannelsRepo creates a Postgres-backed channels repository.
func NewChannelsRepo(db *sql.DB) *ChannelsRepo { return &ChannelsRepo{db: db} }

func (r *ChannelsRepo) ListConfigs(ctx context.Context, companyID string) ([]domain.ChannelConfig, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, platform, enabled, COALESCE(handle,''), COALESCE(audience,''),
		       created_at, updated_at
		FROM channel_configs
		WHERE company_id = $1
		ORDER BY platform ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list channel configs: %w", err)
	}
	defer rows.Close()

	var out []domain.ChannelConfig
	for rows.Next() {
		var c domain.ChannelConfig
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Platform, &c.Enabled, &c.Handle,
			&c.Audience, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan channel config: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ChannelsRepo) GetConfig(ctx context.Context, companyID string, platform domain.Platform) (*domain.ChannelConfig, error) {
	c := &domain.ChannelConfig{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, platform, enabled, COALESCE(handle,''), COALESCE(audience,''),
		       created_at, updated_at
		FROM channel_configs
		WHERE company_id = $1 AND platform = $2
	`, companyID, platform).Scan(&c.ID, &c.CompanyID, &c.Platform, &c.Enabled,
		&c.Handle, &c.Audience, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, channels.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get channel config: %w", err)
	}
	return c, nil
}

func (r *ChannelsRepo) SaveConfig(ctx context.Context, c *domain.ChannelConfig) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO channel_configs (id, company_id, platform, enabled, handle, audience,
		                             created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (company_id, platform)
		DO UPDATE SET enabled = $4, handle = $5, audience = $6, updated_at = NOW()
	`, c.ID, c.CompanyID, c.Platform, c.Enabled, c.Handle, c.Audience)
	if err != nil {
		return fmt.Errorf("save channel config: %w", err)
	}
	return nil
}

func (r *ChannelsRepo) ListSchedules(ctx context.Context, companyID string) ([]domain.PostingSchedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, platform, COALESCE(frequency,''), COALESCE(days,''),
		       COALESCE(time_of_day,''), COALESCE(timezone,''), created_at, updated_at
		FROM posting_schedules
		WHERE company_id = $1
		ORDER BY platform ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list posting schedules: %w", err)
	}
	defer rows.Close()

	var out []domain.PostingSchedule
	for rows.Next() {
		var s domain.PostingSchedule
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Platform, &s.Frequency, &s.Days,
			&s.TimeOfDay, &s.Timezone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan posting schedule: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ChannelsRepo) GetSchedule(ctx context.Context, companyID string, platform domain.Platform) (*domain.PostingSchedule, error) {
	s := &domain.PostingSchedule{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, platform, COALESCE(frequency,''), COALESCE(days,''),
		       COALESCE(time_of_day,''), COALESCE(timezone,''), created_at, updated_at
		FROM posting_schedules
		WHERE company_id = $1 AND platform = $2
	`, companyID, platform).Scan(&s.ID, &s.CompanyID, &s.Platform, &s.Frequency,
		&s.Days, &s.TimeOfDay, &s.Timezone, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, channels.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get posting schedule: %w", err)
	}
	return s, nil
}

func (r *ChannelsRepo) SaveSchedule(ctx context.Context, s *domain.PostingSchedule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posting_schedules (id, company_id, platform, frequency, days,
		                               time_of_day, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (company_id, platform)
		DO UPDATE SET frequency = $4, days = $5, time_of_day = $6, timezone = $7, updated_at = NOW()
	`, s.ID, s.CompanyID, s.Platform, s.Frequency, s.Days, s.TimeOfDay, s.Timezone)
	if err != nil {
		return fmt.Errorf("save posting schedule: %w", err)
	}
	return nil
}

func (r *ChannelsRepo) ListStyles(ctx context.Context, companyID string) ([]domain.CommunicationStyle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, platform, COALESCE(tone,''), use_emojis,
		       COALESCE(hashtag_style,''), COALESCE(language,''), created_at, updated_at
		FROM communication_styles
		WHERE company_id = $1
		ORDER BY platform ASC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list communication styles: %w", err)
	}
	defer rows.Close()

	var out []domain.CommunicationStyle
	for rows.Next() {
		var s domain.CommunicationStyle
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Platform, &s.Tone, &s.UseEmojis,
			&s.HashtagStyle, &s.Language, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan communication style: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ChannelsRepo) GetStyle(ctx context.Context, companyID string, platform domain.Platform) (*domain.CommunicationStyle, error) {
	s := &domain.CommunicationStyle{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, platform, COALESCE(tone,''), use_emojis,
		       COALESCE(hashtag_style,''), COALESCE(language,''), created_at, updated_at
		FROM communication_styles
		WHERE company_id = $1 AND platform = $2
	`, companyID, platform).Scan(&s.ID, &s.CompanyID, &s.Platform, &s.Tone,
		&s.UseEmojis, &s.HashtagStyle, &s.Language, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, channels.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get communication style: %w", err)
	}
	return s, nil
}

func (r *ChannelsRepo) SaveStyle(ctx context.Context, s *domain.CommunicationStyle) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO communication_styles (id, company_id, platform, tone, use_emojis,
		                                  hashtag_style, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (company_id, platform)
		DO UPDATE SET tone = $4, use_emojis = $5, hashtag_style = $6, language = $7, updated_at = NOW()
	`, s.ID, s.CompanyID, s.Platform, s.Tone, s.UseEmojis, s.HashtagStyle, s.Language)
	if err != nil {
		return fmt.Errorf("save communication style: %w", err)
	}
	return nil
}
