package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pallet-insight/pallet-insight/internal/domain/product"
)

// MockRepository is a mock implementation of product.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateLot(ctx context.Context, lot *product.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockRepository) GetLot(ctx context.Context, lotID uuid.UUID) (*product.Lot, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Lot), args.Error(1)
}

func (m *MockRepository) ListLots(ctx context.Context, limit int) ([]*product.Lot, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Lot), args.Error(1)
}

func (m *MockRepository) UpdateLotStatus(ctx context.Context, lotID uuid.UUID, status product.LotStatus) error {
	args := m.Called(ctx, lotID, status)
	return args.Error(0)
}

func (m *MockRepository) DeleteLot(ctx context.Context, lotID uuid.UUID) error {
	args := m.Called(ctx, lotID)
	return args.Error(0)
}

func (m *MockRepository) CreateProducts(ctx context.Context, products []*product.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockRepository) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter product.Filter, limit int) ([]*product.Product, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockRepository) CountByLot(ctx context.Context, lotID uuid.UUID) (int, error) {
	args := m.Called(ctx, lotID)
	return args.Int(0), args.Error(1)
}
