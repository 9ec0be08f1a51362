package domain

import (
	"time"
)

// CollectionKind enumerates the many-per-company entity types the user
// creates and deletes freely from the profile editor.
type CollectionKind string

const (
	KindObjectives  CollectionKind = "objectives"
	KindProducts    CollectionKind = "products"
	KindCompetitors CollectionKind = "competitors"
)

// Valid reports whether k names a known collection kind.
func (k CollectionKind) Valid() bool {
	switch k {
	case KindObjectives, KindProducts, KindCompetitors:
		return true
	}
	return false
}

// Objective is a marketing objective owned by a company.
type Objective struct {
	ID          string     `json:"id" db:"id"`
	CompanyID   string     `json:"company_id" db:"company_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Metric      string     `json:"metric" db:"metric"`
	TargetValue float64    `json:"target_value" db:"target_value"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	Position    int        `json:"position" db:"position"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Product is a product or service a company markets.
type Product struct {
	ID          string    `json:"id" db:"id"`
	CompanyID   string    `json:"company_id" db:"company_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	URL         string    `json:"url" db:"url"`
	Price       *float64  `json:"price" db:"price"`
	Position    int       `json:"position" db:"position"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Competitor is a competitor a company tracks.
type Competitor struct {
	ID        string    `json:"id" db:"id"`
	CompanyID string    `json:"company_id" db:"company_id"`
	Name      string    `json:"name" db:"name"`
	Website   string    `json:"website" db:"website"`
	Notes     string    `json:"notes" db:"notes"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
