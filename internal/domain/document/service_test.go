package document

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	records map[uuid.UUID]*Node
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*Node)}
}

func (m *mockRepo) Create(_ context.Context, n *Node) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	n.UpdatedAt = time.Now()
	m.records[n.ID] = n
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Node, error) {
	n, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return n, nil
}

func (m *mockRepo) GetByCode(_ context.Context, code string) (*Node, error) {
	for _, n := range m.records {
		if n.Code == code {
			return n, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, n *Node) error {
	m.records[n.ID] = n
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockRepo) ListChildren(_ context.Context, parentID uuid.UUID) ([]*Node, error) {
	var result []*Node
	for _, n := range m.records {
		if n.ParentID != nil && *n.ParentID == parentID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockRepo) ListAll(_ context.Context) ([]*Node, error) {
	var result []*Node
	for _, n := range m.records {
		result = append(result, n)
	}
	return result, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func mustCreate(t *testing.T, svc *Service, n *Node) *Node {
	t.Helper()
	if err := svc.Create(context.Background(), n); err != nil {
		t.Fatalf("create %s: %v", n.Code, err)
	}
	return n
}

func TestService_Create_Hierarchy(t *testing.T) {
	svc, _ := newTestService()

	ch := mustCreate(t, svc, &Node{Code: "AAC", Title: "Access and Continuity", Kind: KindChapter})
	st := mustCreate(t, svc, &Node{Code: "AAC.1", Title: "Standard 1", Kind: KindStandard, ParentID: &ch.ID})
	mustCreate(t, svc, &Node{Code: "AAC.1.2", Title: "OE 2", Kind: KindObjectiveElement, ParentID: &st.ID})
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()
	ch := mustCreate(t, svc, &Node{Code: "AAC", Title: "Chapter", Kind: KindChapter})

	cases := []struct {
		name string
		node *Node
	}{
		{"missing code", &Node{Title: "T", Kind: KindChapter}},
		{"missing title", &Node{Code: "COP", Kind: KindChapter}},
		{"bad kind", &Node{Code: "COP", Title: "T", Kind: "section"}},
		{"chapter with parent", &Node{Code: "COP", Title: "T", Kind: KindChapter, ParentID: &ch.ID}},
		{"standard without parent", &Node{Code: "AAC.1", Title: "T", Kind: KindStandard}},
		{"oe under chapter", &Node{Code: "AAC.1", Title: "T", Kind: KindObjectiveElement, ParentID: &ch.ID}},
		{"code not extending parent", &Node{Code: "COP.1", Title: "T", Kind: KindStandard, ParentID: &ch.ID}},
	}
	for _, tc := range cases {
		if err := svc.Create(context.Background(), tc.node); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestService_Delete_RefusesWithChildren(t *testing.T) {
	svc, _ := newTestService()
	ch := mustCreate(t, svc, &Node{Code: "AAC", Title: "Chapter", Kind: KindChapter})
	st := mustCreate(t, svc, &Node{Code: "AAC.1", Title: "Standard", Kind: KindStandard, ParentID: &ch.ID})

	if err := svc.Delete(context.Background(), ch.ID); err == nil {
		t.Error("expected error deleting a node with children")
	}
	if err := svc.Delete(context.Background(), st.ID); err != nil {
		t.Errorf("leaf delete: %v", err)
	}
	if err := svc.Delete(context.Background(), ch.ID); err != nil {
		t.Errorf("delete after children removed: %v", err)
	}
}

func TestService_Tree_NaturalOrder(t *testing.T) {
	svc, _ := newTestService()
	ch := mustCreate(t, svc, &Node{Code: "AAC", Title: "Chapter", Kind: KindChapter})
	for _, code := range []string{"AAC.10", "AAC.2", "AAC.1"} {
		mustCreate(t, svc, &Node{Code: code, Title: "S", Kind: KindStandard, ParentID: &ch.ID})
	}

	roots, err := svc.Tree(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roots) != 1 || roots[0].Code != "AAC" {
		t.Fatalf("roots = %v", roots)
	}
	want := []string{"AAC.1", "AAC.2", "AAC.10"}
	if len(roots[0].Children) != 3 {
		t.Fatalf("children = %d", len(roots[0].Children))
	}
	for i, w := range want {
		if roots[0].Children[i].Code != w {
			t.Errorf("children[%d] = %q, want %q", i, roots[0].Children[i].Code, w)
		}
	}
}

func TestService_Update_StructureFrozen(t *testing.T) {
	svc, repo := newTestService()
	ch := mustCreate(t, svc, &Node{Code: "AAC", Title: "Chapter", Kind: KindChapter})

	upd := &Node{ID: ch.ID, Code: "HACKED", Title: "Renamed", Kind: KindStandard}
	if err := svc.Update(context.Background(), upd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.records[ch.ID]
	if got.Code != "AAC" || got.Kind != KindChapter {
		t.Errorf("structure mutated: %+v", got)
	}
	if got.Title != "Renamed" {
		t.Errorf("title = %q", got.Title)
	}
}
