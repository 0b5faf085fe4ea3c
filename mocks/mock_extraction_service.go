package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docfill/internal/domain"
	"docfill/internal/ocr"
	"docfill/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, docType domain.DocumentType, doc ocr.Document) (*domain.DocumentResult, error) {
	args := m.Called(ctx, docType, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentResult), args.Error(1)
}

func (m *MockExtractionService) GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionRun), args.Error(1)
}

func (m *MockExtractionService) ListRuns(ctx context.Context, docType domain.DocumentType, limit int) ([]domain.ExtractionRun, error) {
	args := m.Called(ctx, docType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractionRun), args.Error(1)
}

// MockFillService is a mock implementation of service.FillService.
type MockFillService struct {
	mock.Mock
}

func (m *MockFillService) Fill(ctx context.Context, input service.FillInput) (*domain.FillResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FillResult), args.Error(1)
}
