package emergency

import (
	"time"

	"github.com/google/uuid"
)

// Code maps to the emergency_code table. One row per hospital emergency
// code ("Code Blue", "Code Red", ...), carrying the response documentation
// NABH assessors ask for.
type Code struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	Name              string     `db:"name" json:"name"`
	Color             string     `db:"color" json:"color"`
	Description       string     `db:"description" json:"description,omitempty"`
	ResponseProcedure string     `db:"response_procedure" json:"response_procedure,omitempty"`
	TeamRoles         []string   `db:"team_roles" json:"team_roles,omitempty"`
	DocumentID        *uuid.UUID `db:"document_id" json:"document_id,omitempty"`
	Active            bool       `db:"active" json:"active"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}
