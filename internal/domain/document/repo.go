package document

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Node) error
	GetByID(ctx context.Context, id uuid.UUID) (*Node, error)
	GetByCode(ctx context.Context, code string) (*Node, error)
	Update(ctx context.Context, n *Node) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Node, error)
	ListAll(ctx context.Context) ([]*Node, error)
}
