package sop

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nabh/nabh/pkg/natsort"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, doc *SOP) error {
	if doc.Code == "" {
		return fmt.Errorf("code is required")
	}
	if doc.Title == "" {
		return fmt.Errorf("title is required")
	}
	if doc.Department == "" {
		return fmt.Errorf("department is required")
	}
	if doc.Status == "" {
		doc.Status = StatusDraft
	}
	if !validStatus(doc.Status) {
		return fmt.Errorf("invalid status %q", doc.Status)
	}
	if doc.Version == 0 {
		doc.Version = 1
	}
	return s.repo.Create(ctx, doc)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SOP, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*SOP, error) {
	return s.repo.GetByCode(ctx, code)
}

// Update bumps the version on every content revision.
func (s *Service) Update(ctx context.Context, doc *SOP) error {
	if doc.Title == "" {
		return fmt.Errorf("title is required")
	}
	if doc.Status != "" && !validStatus(doc.Status) {
		return fmt.Errorf("invalid status %q", doc.Status)
	}
	current, err := s.repo.GetByID(ctx, doc.ID)
	if err != nil {
		return err
	}
	doc.Code = current.Code
	doc.Version = current.Version
	if doc.Content != current.Content {
		doc.Version++
	}
	return s.repo.Update(ctx, doc)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// List returns SOPs in natural code order, so "SOP-2" sorts before
// "SOP-10".
func (s *Service) List(ctx context.Context, limit, offset int) ([]*SOP, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	sortByCode(items)
	return items, total, nil
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*SOP, int, error) {
	items, total, err := s.repo.Search(ctx, params, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	sortByCode(items)
	return items, total, nil
}

func sortByCode(items []*SOP) {
	natsort.SortBy(len(items),
		func(i int) string { return items[i].Code },
		func(i, j int) { items[i], items[j] = items[j], items[i] })
}

func validStatus(s string) bool {
	switch s {
	case StatusDraft, StatusActive, StatusRetired:
		return true
	}
	return false
}
