package hospital

import (
	"time"

	"github.com/google/uuid"
)

// Hospital maps to the hospital table.
type Hospital struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	NABHAccred   *string   `db:"nabh_accreditation" json:"nabh_accreditation,omitempty"`
	AddressLine1 *string   `db:"address_line1" json:"address_line1,omitempty"`
	AddressLine2 *string   `db:"address_line2" json:"address_line2,omitempty"`
	City         *string   `db:"city" json:"city,omitempty"`
	State        *string   `db:"state" json:"state,omitempty"`
	PostalCode   *string   `db:"postal_code" json:"postal_code,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// User roles. Admin can do everything, quality manages accreditation
// content, viewer is read-only.
const (
	RoleAdmin   = "admin"
	RoleQuality = "quality"
	RoleViewer  = "viewer"
)

const (
	UserActive   = "active"
	UserDisabled = "disabled"
)

// User maps to the app_user table. Identity lives in the external OIDC
// provider; this row carries the app-side role and hospital binding.
type User struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Subject    string     `db:"subject" json:"subject"`
	Username   string     `db:"username" json:"username"`
	Email      string     `db:"email" json:"email"`
	Role       string     `db:"role" json:"role"`
	Status     string     `db:"status" json:"status"`
	HospitalID *uuid.UUID `db:"hospital_id" json:"hospital_id,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleQuality, RoleViewer:
		return true
	}
	return false
}
