package emergency

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, c *Code) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Color == "" {
		return fmt.Errorf("color is required")
	}
	c.Name = canonicalName(c.Name)
	return s.repo.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Code, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (*Code, error) {
	return s.repo.GetByName(ctx, canonicalName(name))
}

func (s *Service) Update(ctx context.Context, c *Code) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	c.Name = canonicalName(c.Name)
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Code, error) {
	return s.repo.List(ctx, activeOnly)
}

// canonicalName normalizes spacing and casing so "code blue" and
// "Code Blue" are the same code.
func canonicalName(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + strings.ToLower(f[1:])
	}
	return strings.Join(fields, " ")
}
