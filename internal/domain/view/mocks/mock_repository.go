package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pallet-insight/pallet-insight/internal/domain/view"
)

// MockRepository is a mock implementation of view.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, v *view.View) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockRepository) GetByViewID(ctx context.Context, viewID uuid.UUID) (*view.View, error) {
	args := m.Called(ctx, viewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*view.View), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*view.View, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*view.View), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, viewID uuid.UUID) error {
	args := m.Called(ctx, viewID)
	return args.Error(0)
}
