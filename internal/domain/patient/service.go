package patient

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nabh/nabh/internal/importer"
)

type Service struct {
	repo     Repository
	pipeline *importer.Pipeline
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		pipeline: importer.NewPipeline(repo, logger),
	}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.VisitID == "" {
		return fmt.Errorf("visit_id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	p.DeriveStatus()
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByVisitID(ctx context.Context, visitID string) (*Patient, error) {
	return s.repo.GetByVisitID(ctx, visitID)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	p.DeriveStatus()
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// Import replaces the whole patient set from an uploaded register file.
func (s *Service) Import(ctx context.Context, r io.Reader, filename string) (importer.Result, error) {
	return s.pipeline.Run(ctx, r, filename)
}
