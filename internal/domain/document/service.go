package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nabh/nabh/pkg/natsort"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, n *Node) error {
	if n.Code == "" {
		return fmt.Errorf("code is required")
	}
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !validKind(n.Kind) {
		return fmt.Errorf("invalid kind %q", n.Kind)
	}
	if n.Kind == KindChapter && n.ParentID != nil {
		return fmt.Errorf("chapters cannot have a parent")
	}
	if n.Kind != KindChapter {
		if n.ParentID == nil {
			return fmt.Errorf("%s requires a parent", n.Kind)
		}
		parent, err := s.repo.GetByID(ctx, *n.ParentID)
		if err != nil {
			return fmt.Errorf("parent not found")
		}
		if expected := childKind(parent.Kind); expected != n.Kind {
			return fmt.Errorf("a %s cannot contain a %s", parent.Kind, n.Kind)
		}
		if !strings.HasPrefix(n.Code, parent.Code+".") {
			return fmt.Errorf("code %q must extend parent code %q", n.Code, parent.Code)
		}
	}
	return s.repo.Create(ctx, n)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Node, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Node, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) Update(ctx context.Context, n *Node) error {
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	current, err := s.repo.GetByID(ctx, n.ID)
	if err != nil {
		return err
	}
	// Structure is fixed after creation; only content fields move.
	n.Code = current.Code
	n.Kind = current.Kind
	n.ParentID = current.ParentID
	return s.repo.Update(ctx, n)
}

// Delete refuses to orphan children.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	children, err := s.repo.ListChildren(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return fmt.Errorf("node has %d children, delete them first", len(children))
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Node, error) {
	items, err := s.repo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	sortByCode(items)
	return items, nil
}

// Tree assembles the full hierarchy with children in natural code order,
// so "AAC.2" sorts before "AAC.10".
func (s *Service) Tree(ctx context.Context) ([]*Node, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*Node, len(all))
	for _, n := range all {
		n.Children = nil
		byID[n.ID] = n
	}

	var roots []*Node
	for _, n := range all {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := byID[*n.ParentID]
		if !ok {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	sortByCode(roots)
	for _, n := range all {
		sortByCode(n.Children)
	}
	return roots, nil
}

func sortByCode(items []*Node) {
	natsort.SortBy(len(items),
		func(i int) string { return items[i].Code },
		func(i, j int) { items[i], items[j] = items[j], items[i] })
}

func validKind(k string) bool {
	switch k {
	case KindChapter, KindStandard, KindObjectiveElement:
		return true
	}
	return false
}

func childKind(parentKind string) string {
	switch parentKind {
	case KindChapter:
		return KindStandard
	case KindStandard:
		return KindObjectiveElement
	}
	return ""
}
