package sop

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	records map[uuid.UUID]*SOP
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*SOP)}
}

func (m *mockRepo) Create(_ context.Context, s *SOP) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	m.records[s.ID] = s
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*SOP, error) {
	s, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return s, nil
}

func (m *mockRepo) GetByCode(_ context.Context, code string) (*SOP, error) {
	for _, s := range m.records {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, s *SOP) error {
	m.records[s.ID] = s
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*SOP, int, error) {
	var result []*SOP
	for _, s := range m.records {
		result = append(result, s)
	}
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*SOP, int, error) {
	var result []*SOP
	for _, s := range m.records {
		if v, ok := params["department"]; ok && s.Department != v {
			continue
		}
		result = append(result, s)
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService()
	doc := &SOP{Code: "SOP-ICU-1", Title: "Hand Hygiene", Department: "ICU"}
	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Status != StatusDraft {
		t.Errorf("status = %q, want draft default", doc.Status)
	}
	if doc.Version != 1 {
		t.Errorf("version = %d, want 1", doc.Version)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()
	cases := []*SOP{
		{Title: "No Code", Department: "ICU"},
		{Code: "SOP-1", Department: "ICU"},
		{Code: "SOP-1", Title: "No Dept"},
		{Code: "SOP-1", Title: "Bad Status", Department: "ICU", Status: "published"},
	}
	for i, doc := range cases {
		if err := svc.Create(context.Background(), doc); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestService_Update_BumpsVersionOnContentChange(t *testing.T) {
	svc, _ := newTestService()
	doc := &SOP{Code: "SOP-1", Title: "T", Department: "ICU", Content: "v1"}
	svc.Create(context.Background(), doc)

	upd := &SOP{ID: doc.ID, Title: "T", Department: "ICU", Content: "v2", Status: StatusActive}
	if err := svc.Update(context.Background(), upd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upd.Version != 2 {
		t.Errorf("version = %d, want 2 after content change", upd.Version)
	}
	if upd.Code != "SOP-1" {
		t.Errorf("code mutated to %q", upd.Code)
	}

	same := &SOP{ID: doc.ID, Title: "T", Department: "ICU", Content: "v2"}
	if err := svc.Update(context.Background(), same); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if same.Version != 2 {
		t.Errorf("version = %d, want unchanged without content change", same.Version)
	}
}

func TestService_List_NaturalOrder(t *testing.T) {
	svc, _ := newTestService()
	for _, code := range []string{"SOP-10", "SOP-2", "SOP-1"} {
		svc.Create(context.Background(), &SOP{Code: code, Title: "T", Department: "ICU"})
	}

	items, total, err := svc.List(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d", total)
	}
	want := []string{"SOP-1", "SOP-2", "SOP-10"}
	for i, w := range want {
		if items[i].Code != w {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Code, w)
		}
	}
}
