package hospital

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockHospitalRepo struct {
	records map[uuid.UUID]*Hospital
}

func newMockHospitalRepo() *mockHospitalRepo {
	return &mockHospitalRepo{records: make(map[uuid.UUID]*Hospital)}
}

func (m *mockHospitalRepo) Create(_ context.Context, h *Hospital) error {
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	h.UpdatedAt = time.Now()
	m.records[h.ID] = h
	return nil
}

func (m *mockHospitalRepo) GetByID(_ context.Context, id uuid.UUID) (*Hospital, error) {
	h, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return h, nil
}

func (m *mockHospitalRepo) Update(_ context.Context, h *Hospital) error {
	m.records[h.ID] = h
	return nil
}

func (m *mockHospitalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockHospitalRepo) List(_ context.Context, limit, offset int) ([]*Hospital, int, error) {
	var result []*Hospital
	for _, h := range m.records {
		result = append(result, h)
	}
	return result, len(result), nil
}

type mockUserRepo struct {
	records map[uuid.UUID]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{records: make(map[uuid.UUID]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	m.records[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetBySubject(_ context.Context, subject string) (*User, error) {
	for _, u := range m.records {
		if u.Subject == subject {
			return u, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockUserRepo) Update(_ context.Context, u *User) error {
	m.records[u.ID] = u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]*User, int, error) {
	var result []*User
	for _, u := range m.records {
		result = append(result, u)
	}
	return result, len(result), nil
}

func (m *mockUserRepo) ListByHospital(_ context.Context, hospitalID uuid.UUID, limit, offset int) ([]*User, int, error) {
	var result []*User
	for _, u := range m.records {
		if u.HospitalID != nil && *u.HospitalID == hospitalID {
			result = append(result, u)
		}
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockHospitalRepo, *mockUserRepo) {
	hr := newMockHospitalRepo()
	ur := newMockUserRepo()
	return NewService(hr, ur), hr, ur
}

func TestService_CreateHospital(t *testing.T) {
	svc, _, _ := newTestService()
	h := &Hospital{Name: "City Care Hospital"}
	if err := svc.CreateHospital(context.Background(), h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if err := svc.CreateHospital(context.Background(), &Hospital{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestService_CreateUser_Defaults(t *testing.T) {
	svc, _, _ := newTestService()
	u := &User{Subject: "oidc|123", Username: "asha", Email: "asha@example.org"}
	if err := svc.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != RoleViewer {
		t.Errorf("role = %q, want viewer default", u.Role)
	}
	if u.Status != UserActive {
		t.Errorf("status = %q, want active default", u.Status)
	}
}

func TestService_CreateUser_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	cases := []*User{
		{Username: "no-subject", Email: "a@b.c"},
		{Subject: "s", Email: "a@b.c"},
		{Subject: "s", Username: "u", Email: "not-an-email"},
		{Subject: "s", Username: "u", Email: "a@b.c", Role: "superuser"},
	}
	for i, u := range cases {
		if err := svc.CreateUser(context.Background(), u); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestService_AssignRole(t *testing.T) {
	svc, _, users := newTestService()
	u := &User{Subject: "s", Username: "asha", Email: "a@b.c"}
	svc.CreateUser(context.Background(), u)

	got, err := svc.AssignRole(context.Background(), u.ID, RoleQuality)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Role != RoleQuality || users.records[u.ID].Role != RoleQuality {
		t.Errorf("role = %q, want quality", got.Role)
	}

	if _, err := svc.AssignRole(context.Background(), u.ID, "root"); err == nil {
		t.Error("expected error for invalid role")
	}
	if _, err := svc.AssignRole(context.Background(), uuid.New(), RoleAdmin); err == nil {
		t.Error("expected error for unknown user")
	}
}
