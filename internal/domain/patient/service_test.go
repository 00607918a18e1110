package patient

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nabh/nabh/internal/importer"
)

// -- Mock Repository --

type mockRepo struct {
	records    map[uuid.UUID]*Patient
	deletedAll bool
	upserts    [][]importer.Patient
	upsertErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.records[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) GetByVisitID(_ context.Context, visitID string) (*Patient, error) {
	for _, p := range m.records {
		if p.VisitID == visitID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.records[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.records {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.records {
		if v, ok := params["status"]; ok && p.Status != v {
			continue
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) BulkUpsert(_ context.Context, patients []importer.Patient) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, patients)
	return nil
}

func (m *mockRepo) DeleteAll(_ context.Context) error {
	m.deletedAll = true
	m.records = make(map[uuid.UUID]*Patient)
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, zerolog.Nop()), repo
}

// -- Tests --

func TestService_Create(t *testing.T) {
	svc, _ := newTestService()
	p := &Patient{VisitID: "V-100", Name: "Asha Rao"}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if p.Status != StatusActive {
		t.Errorf("status = %q, want %q", p.Status, StatusActive)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.Create(context.Background(), &Patient{Name: "No Visit"}); err == nil {
		t.Error("expected error for missing visit_id")
	}
	if err := svc.Create(context.Background(), &Patient{VisitID: "V-1"}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestService_Create_DischargeForcesStatus(t *testing.T) {
	svc, _ := newTestService()
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p := &Patient{VisitID: "V-1", Name: "A", DischargeDate: &d, Status: "Active"}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusDischarged {
		t.Errorf("status = %q, want %q", p.Status, StatusDischarged)
	}
}

func TestService_Create_TransferredKeptWithoutDischarge(t *testing.T) {
	svc, _ := newTestService()
	p := &Patient{VisitID: "V-1", Name: "A", Status: StatusTransferred}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusTransferred {
		t.Errorf("status = %q, want %q", p.Status, StatusTransferred)
	}

	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p.DischargeDate = &d
	if err := svc.Update(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusDischarged {
		t.Errorf("status = %q, want %q after discharge", p.Status, StatusDischarged)
	}
}

func TestService_Update_DerivesStatus(t *testing.T) {
	svc, repo := newTestService()
	p := &Patient{VisitID: "V-1", Name: "A"}
	svc.Create(context.Background(), p)

	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p.DischargeDate = &d
	p.Status = "Active"
	if err := svc.Update(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.records[p.ID].Status != StatusDischarged {
		t.Errorf("status = %q, want %q", repo.records[p.ID].Status, StatusDischarged)
	}
}

func TestService_Import(t *testing.T) {
	svc, repo := newTestService()

	csvData := "Visit ID,Patient Name,Admission Date\nV-1,Asha,\"Jan 2, 2025\"\nV-2,Ravi,\n"
	res, err := svc.Import(context.Background(), strings.NewReader(csvData), "register.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.deletedAll {
		t.Error("import must clear the existing patient set")
	}
	if res.Imported != 2 || !res.Success {
		t.Errorf("res = %+v", res)
	}
	if len(repo.upserts) != 1 || repo.upserts[0][0].AdmissionDate != "2025-01-02" {
		t.Errorf("upserts = %+v", repo.upserts)
	}
}

func TestService_Import_NoValidRows(t *testing.T) {
	svc, _ := newTestService()
	csvData := "Patient Name\nOnly Names Here\n"
	if _, err := svc.Import(context.Background(), strings.NewReader(csvData), "r.csv"); err == nil {
		t.Error("expected error when no row carries a visit id")
	}
}
