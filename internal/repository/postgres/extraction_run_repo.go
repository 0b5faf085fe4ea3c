package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docfill/internal/domain"
	"docfill/internal/port"
)

type extractionRunRepo struct {
	db *sqlx.DB
}

// NewExtractionRunRepo creates a new PostgreSQL-backed ExtractionRunRepository.
func NewExtractionRunRepo(db *sqlx.DB) port.ExtractionRunRepository {
	return &extractionRunRepo{db: db}
}

func (r *extractionRunRepo) Create(ctx context.Context, run *domain.ExtractionRun) error {
	query := `INSERT INTO extraction_runs
		(id, document_type, file_name, storage_key, status, method, confidence,
		 field_count, total_errors, total_warnings, duration_ms, created_at)
		VALUES (:id, :document_type, :file_name, :storage_key, :status, :method, :confidence,
		 :field_count, :total_errors, :total_warnings, :duration_ms, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("extractionRunRepo.Create: %w", err)
	}
	return nil
}

func (r *extractionRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error) {
	var run domain.ExtractionRun
	err := r.db.GetContext(ctx, &run, "SELECT * FROM extraction_runs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("extractionRunRepo.GetByID: %w", err)
	}
	return &run, nil
}

// ListRecent returns the newest runs first. An empty docType lists all types.
func (r *extractionRunRepo) ListRecent(ctx context.Context, docType domain.DocumentType, limit int) ([]domain.ExtractionRun, error) {
	runs := []domain.ExtractionRun{}
	err := r.db.SelectContext(ctx, &runs,
		`SELECT * FROM extraction_runs
		 WHERE ($1 = '' OR document_type = $1)
		 ORDER BY created_at DESC LIMIT $2`,
		string(docType), limit)
	if err != nil {
		return nil, fmt.Errorf("extractionRunRepo.ListRecent: %w", err)
	}
	return runs, nil
}
