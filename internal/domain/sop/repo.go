package sop

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *SOP) error
	GetByID(ctx context.Context, id uuid.UUID) (*SOP, error)
	GetByCode(ctx context.Context, code string) (*SOP, error)
	Update(ctx context.Context, s *SOP) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*SOP, int, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*SOP, int, error)
}
