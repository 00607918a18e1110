package sop

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft   = "draft"
	StatusActive  = "active"
	StatusRetired = "retired"
)

// SOP maps to the sop table. Code is the document identifier shown to
// auditors ("SOP-ICU-12"), unique per hospital.
type SOP struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Code          string     `db:"code" json:"code"`
	Title         string     `db:"title" json:"title"`
	Department    string     `db:"department" json:"department"`
	Category      string     `db:"category" json:"category,omitempty"`
	Content       string     `db:"content" json:"content,omitempty"`
	Version       int        `db:"version" json:"version"`
	Status        string     `db:"status" json:"status"`
	EffectiveDate *time.Time `db:"effective_date" json:"effective_date,omitempty"`
	ReviewDate    *time.Time `db:"review_date" json:"review_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
