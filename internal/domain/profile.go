package domain

import (
	"time"
)

// ProfileKind enumerates the singleton sub-records a company owns.
// Each kind has at most one row per company, created lazily on first load.
type ProfileKind string

const (
	KindStrategy      ProfileKind = "strategy"
	KindBranding      ProfileKind = "branding"
	KindVoice         ProfileKind = "voice"
	KindEmailSettings ProfileKind = "email"
)

// ProfileKinds lists every singleton kind, in snapshot order.
var ProfileKinds = []ProfileKind{KindStrategy, KindBranding, KindVoice, KindEmailSettings}

// Valid reports whether k names a known singleton kind.
func (k ProfileKind) Valid() bool {
	switch k {
	case KindStrategy, KindBranding, KindVoice, KindEmailSettings:
		return true
	}
	return false
}

// Strategy holds a company's marketing strategy. One row per company.
type Strategy struct {
	ID              string    `json:"id" db:"id"`
	CompanyID       string    `json:"company_id" db:"company_id"`
	Mission         string    `json:"mission" db:"mission"`
	TargetAudience  string    `json:"target_audience" db:"target_audience"`
	ValueProp       string    `json:"value_proposition" db:"value_proposition"`
	Differentiators string    `json:"differentiators" db:"differentiators"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Branding holds a company's visual identity. One row per company.
type Branding struct {
	ID             string    `json:"id" db:"id"`
	CompanyID      string    `json:"company_id" db:"company_id"`
	LogoURL        string    `json:"logo_url" db:"logo_url"`
	PrimaryColor   string    `json:"primary_color" db:"primary_color"`
	SecondaryColor string    `json:"secondary_color" db:"secondary_color"`
	FontFamily     string    `json:"font_family" db:"font_family"`
	Tagline        string    `json:"tagline" db:"tagline"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// BrandVoice holds company-wide communication rules. One row per company.
// Per-platform tone overrides live in CommunicationStyle, not here.
type BrandVoice struct {
	ID         string    `json:"id" db:"id"`
	CompanyID  string    `json:"company_id" db:"company_id"`
	Tone       string    `json:"tone" db:"tone"`
	Personality string   `json:"personality" db:"personality"`
	Guidelines string    `json:"guidelines" db:"guidelines"`
	Keywords   string    `json:"keywords" db:"keywords"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// EmailVerification enumerates SES identity verification states surfaced on
// EmailSettings reads. The value is never persisted by this service.
type EmailVerification string

const (
	EmailVerified   EmailVerification = "verified"
	EmailPending    EmailVerification = "pending"
	EmailUnverified EmailVerification = "unverified"
	EmailUnknown    EmailVerification = "unknown"
)

// EmailSettings holds a company's outbound email configuration. One row per
// company. VerificationStatus is populated from the email identity provider
// at read time and ignored on writes.
type EmailSettings struct {
	ID                 string            `json:"id" db:"id"`
	CompanyID          string            `json:"company_id" db:"company_id"`
	SenderName         string            `json:"sender_name" db:"sender_name"`
	SenderEmail        string            `json:"sender_email" db:"sender_email"`
	ReplyTo            string            `json:"reply_to" db:"reply_to"`
	Footer             string            `json:"footer" db:"footer"`
	VerificationStatus EmailVerification `json:"verification_status" db:"-"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at" db:"updated_at"`
}
