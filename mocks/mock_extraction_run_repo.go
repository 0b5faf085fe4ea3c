package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docfill/internal/domain"
)

// MockExtractionRunRepository is a mock implementation of port.ExtractionRunRepository.
type MockExtractionRunRepository struct {
	mock.Mock
}

func (m *MockExtractionRunRepository) Create(ctx context.Context, run *domain.ExtractionRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockExtractionRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionRun), args.Error(1)
}

func (m *MockExtractionRunRepository) ListRecent(ctx context.Context, docType domain.DocumentType, limit int) ([]domain.ExtractionRun, error) {
	args := m.Called(ctx, docType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractionRun), args.Error(1)
}
