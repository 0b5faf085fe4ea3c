package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docfill/internal/domain"
)

// MockFormFiller is a mock implementation of port.FormFiller.
type MockFormFiller struct {
	mock.Mock
}

func (m *MockFormFiller) Fill(ctx context.Context, formURL string, fields domain.FormFieldMap) (*domain.FillReport, error) {
	args := m.Called(ctx, formURL, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FillReport), args.Error(1)
}
