package patient

import (
	"time"

	"github.com/google/uuid"
)

// Status is mostly derived: a discharge date forces Discharged no matter
// what the caller claimed. Transferred survives only while there is no
// discharge date; anything else normalizes to Active.
const (
	StatusActive      = "Active"
	StatusDischarged  = "Discharged"
	StatusTransferred = "Transferred"
)

// Patient maps to the patient table. VisitID is the business key: one row
// per hospital visit, upserts conflict on it.
type Patient struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	SrNo          int        `db:"sr_no" json:"sr_no"`
	VisitID       string     `db:"visit_id" json:"visit_id"`
	Name          string     `db:"name" json:"name"`
	Diagnosis     string     `db:"diagnosis" json:"diagnosis,omitempty"`
	AdmissionDate *time.Time `db:"admission_date" json:"admission_date,omitempty"`
	DischargeDate *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// DeriveStatus recomputes Status from the discharge date.
func (p *Patient) DeriveStatus() {
	switch {
	case p.DischargeDate != nil:
		p.Status = StatusDischarged
	case p.Status == StatusTransferred:
		// explicit transfer sticks until a discharge date arrives
	default:
		p.Status = StatusActive
	}
}
