package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docverify/internal/domain"
)

// MockComparisonEngine is a mock implementation of port.ComparisonEngine.
type MockComparisonEngine struct {
	mock.Mock
}

func (m *MockComparisonEngine) Compare(ctx context.Context, bl, invoice domain.ShippingRecord, packing *domain.ShippingRecord) (*domain.Report, error) {
	args := m.Called(ctx, bl, invoice, packing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
