package domain

import (
	"time"
)

// Platform identifies a marketing channel. It is the join dimension between
// the three channel sub-resources; nothing else relates them.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformX         Platform = "x"
	PlatformTikTok    Platform = "tiktok"
)

// Platforms lists every supported platform, in display order.
var Platforms = []Platform{
	PlatformFacebook, PlatformInstagram, PlatformLinkedIn, PlatformX, PlatformTikTok,
}

// Valid reports whether p names a supported platform.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// ChannelConfig holds platform account settings. At most one row per
// (company, platform). It knows nothing about schedules or styles.
type ChannelConfig struct {
	ID        string    `json:"id" db:"id"`
	CompanyID string    `json:"company_id" db:"company_id"`
	Platform  Platform  `json:"platform" db:"platform"`
	Enabled   bool      `json:"enabled" db:"enabled"`
	Handle    string    `json:"handle" db:"handle"`
	Audience  string    `json:"audience" db:"audience"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PostingSchedule holds posting cadence for one platform. At most one row
// per (company, platform).
type PostingSchedule struct {
	ID        string    `json:"id" db:"id"`
	CompanyID string    `json:"company_id" db:"company_id"`
	Platform  Platform  `json:"platform" db:"platform"`
	Frequency string    `json:"frequency" db:"frequency"`
	Days      string    `json:"days" db:"days"`
	TimeOfDay string    `json:"time_of_day" db:"time_of_day"`
	Timezone  string    `json:"timezone" db:"timezone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CommunicationStyle holds per-platform tone overrides. At most one row per
// (company, platform).
type CommunicationStyle struct {
	ID           string    `json:"id" db:"id"`
	CompanyID    string    `json:"company_id" db:"company_id"`
	Platform     Platform  `json:"platform" db:"platform"`
	Tone         string    `json:"tone" db:"tone"`
	UseEmojis    bool      `json:"use_emojis" db:"use_emojis"`
	HashtagStyle string    `json:"hashtag_style" db:"hashtag_style"`
	Language     string    `json:"language" db:"language"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ChannelRow is the merged per-platform view the editor renders. Each field
// is owned by exactly one of the three sub-resources above; the channels
// service routes writes accordingly. This is a read model, never persisted.
type ChannelRow struct {
	Platform Platform `json:"platform"`

	// Owned by ChannelConfig.
	Enabled  bool   `json:"enabled"`
	Handle   string `json:"handle"`
	Audience string `json:"audience"`

	// Owned by PostingSchedule.
	Frequency string `json:"frequency"`
	Days      string `json:"days"`
	TimeOfDay string `json:"time_of_day"`
	Timezone  string `json:"timezone"`

	// Owned by CommunicationStyle.
	Tone         string `json:"tone"`
	UseEmojis    bool   `json:"use_emojis"`
	HashtagStyle string `json:"hashtag_style"`
	Language     string `json:"language"`
}
