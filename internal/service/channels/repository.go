package channels

import (
	"context"

	"github.com/ignite/brandhub/internal/domain"
)

// Repository defines the data access contract for the three channel
// sub-resources. Get methods return ErrNotFound for missing rows; Save
// methods upsert on (company_id, platform). Implementations must be safe
// for concurrent use.
type Repository interface {
	ListConfigs(ctx context.Context, companyID string) ([]domain.ChannelConfig, error)
	GetConfig(ctx context.Context, companyID string, platform domain.Platform) (*domain.ChannelConfig, error)
	SaveConfig(ctx context.Context, c *domain.ChannelConfig) error

	ListSchedules(ctx context.Context, companyID string) ([]domain.PostingSchedule, error)
	GetSchedule(ctx context.Context, companyID string, platform domain.Platform) (*domain.PostingSchedule, error)
	SaveSchedule(ctx context.Context, s *domain.PostingSchedule) error

	ListStyles(ctx context.Context, companyID string) ([]domain.CommunicationStyle, error)
	GetStyle(ctx context.Context, companyID string, platform domain.Platform) (*domain.CommunicationStyle, error)
	SaveStyle(ctx context.Context, s *domain.CommunicationStyle) error
}
