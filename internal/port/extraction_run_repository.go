package port

import (
	"context"

	"github.com/google/uuid"

	"docfill/internal/domain"
)

// ExtractionRunRepository persists the audit trail of extraction runs.
type ExtractionRunRepository interface {
	Create(ctx context.Context, run *domain.ExtractionRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error)
	ListRecent(ctx context.Context, docType domain.DocumentType, limit int) ([]domain.ExtractionRun, error)
}
