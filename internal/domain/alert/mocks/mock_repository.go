package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pallet-insight/pallet-insight/internal/domain/alert"
)

// MockRepository is a mock implementation of alert.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *alert.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetByAlertID(ctx context.Context, alertID uuid.UUID) (*alert.Alert, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alert.Alert), args.Error(1)
}

func (m *MockRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]*alert.Alert, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*alert.Alert), args.Error(1)
}

func (m *MockRepository) ListOpen(ctx context.Context, limit int) ([]*alert.Alert, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*alert.Alert), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, alertID uuid.UUID, status alert.Status) error {
	args := m.Called(ctx, alertID, status)
	return args.Error(0)
}
