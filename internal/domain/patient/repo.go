package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/nabh/nabh/internal/importer"
)

// Repository is the persistence boundary for patients. BulkUpsert and
// DeleteAll double as the import pipeline's sink.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByVisitID(ctx context.Context, visitID string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error)

	BulkUpsert(ctx context.Context, patients []importer.Patient) error
	DeleteAll(ctx context.Context) error
}
