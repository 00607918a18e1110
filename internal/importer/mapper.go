package importer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoValidRows is returned when a sheet yields zero mappable patient rows.
var ErrNoValidRows = errors.New("importer: no valid patient rows found in file")

// Patient is the normalized import record. It is transient: the pipeline
// hands slices of these to a Sink and keeps nothing.
type Patient struct {
	SrNo          int    `json:"sr_no"`
	VisitID       string `json:"visit_id"`
	Name          string `json:"name"`
	Diagnosis     string `json:"diagnosis"`
	AdmissionDate string `json:"admission_date,omitempty"`
	DischargeDate string `json:"discharge_date,omitempty"`
	Status        string `json:"status"`
}

const (
	StatusActive     = "Active"
	StatusDischarged = "Discharged"
)

// missingVisitPrefix marks rows that carried no usable visit identifier.
// Synthesized IDs are filtered out before dedup so junk rows never reach
// the sink.
const missingVisitPrefix = "ROW-NOVISIT-"

var (
	srNoAliases      = []string{"Sr No", "Sr.No", "Sr. No", "SrNo", "S.No", "S No", "Serial No", "Sl No"}
	visitIDAliases   = []string{"Visit ID", "VisitID", "visit_id", "Visit No", "IPD No", "UHID"}
	nameAliases      = []string{"Patient Name", "PatientName", "Name", "Name of Patient"}
	diagnosisAliases = []string{"Diagnosis", "Provisional Diagnosis", "Final Diagnosis"}
	admissionAliases = []string{"Admission Date", "AdmissionDate", "Date of Admission", "DOA", "Admitted On"}
	dischargeAliases = []string{"Discharge Date", "DischargeDate", "Date of Discharge", "DOD", "Discharged On"}
)

// MapResult carries the mapped records plus the row accounting the caller
// reports back to the user.
type MapResult struct {
	Patients   []Patient
	Skipped    int
	Duplicates int
}

// MapRows converts raw sheet rows into normalized Patients: field
// resolution with fallbacks, date recovery, dedup by visit ID with
// last-occurrence-wins. Rows with no visit ID and no name are skipped.
func MapRows(rows []Row) (MapResult, error) {
	var res MapResult

	seen := make(map[string]int)
	for i, row := range rows {
		p, ok := mapRow(row, i)
		if !ok {
			res.Skipped++
			continue
		}
		if prev, dup := seen[p.VisitID]; dup {
			res.Patients[prev] = p
			res.Duplicates++
			continue
		}
		seen[p.VisitID] = len(res.Patients)
		res.Patients = append(res.Patients, p)
	}

	if len(res.Patients) == 0 {
		return res, ErrNoValidRows
	}
	return res, nil
}

func mapRow(row Row, index int) (Patient, bool) {
	visitID, ok := ResolveString(row, visitIDAliases...)
	if !ok {
		visitID = fmt.Sprintf("%s%d", missingVisitPrefix, index+1)
	}
	// Rows that never carried a real visit identifier are dropped, synthetic
	// placeholders included. A missing name is not a rejection criterion.
	if visitID == "" || strings.HasPrefix(visitID, missingVisitPrefix) {
		return Patient{}, false
	}

	name, ok := ResolveString(row, nameAliases...)
	if !ok {
		name = "Unknown"
	}

	p := Patient{
		VisitID: visitID,
		Name:    name,
	}
	if s, ok := ResolveString(row, srNoAliases...); ok {
		fmt.Sscanf(s, "%d", &p.SrNo)
	}
	if p.SrNo == 0 {
		p.SrNo = index + 1
	}
	p.Diagnosis, _ = ResolveString(row, diagnosisAliases...)

	if v, ok := ResolveField(row, admissionAliases...); ok {
		if d, ok := RecoverDate(v); ok {
			p.AdmissionDate = d
		}
	}
	if v, ok := ResolveField(row, dischargeAliases...); ok {
		if d, ok := RecoverDate(v); ok {
			p.DischargeDate = d
		}
	}

	if p.DischargeDate != "" {
		p.Status = StatusDischarged
	} else {
		p.Status = StatusActive
	}
	return p, true
}
