package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pallet-insight/pallet-insight/internal/domain/evaluation"
)

// MockRepository is a mock implementation of evaluation.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateRun(ctx context.Context, run *evaluation.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRepository) GetRun(ctx context.Context, runID uuid.UUID) (*evaluation.Run, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*evaluation.Run), args.Error(1)
}

func (m *MockRepository) ListRunsByLot(ctx context.Context, lotID uuid.UUID, limit int) ([]*evaluation.Run, error) {
	args := m.Called(ctx, lotID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*evaluation.Run), args.Error(1)
}

func (m *MockRepository) UpdateRunProgress(ctx context.Context, runID uuid.UUID, status evaluation.RunStatus, progress int) error {
	args := m.Called(ctx, runID, status, progress)
	return args.Error(0)
}

func (m *MockRepository) FinishRun(ctx context.Context, run *evaluation.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRepository) SaveResults(ctx context.Context, results []*evaluation.Result) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockRepository) ListResultsByRun(ctx context.Context, runID uuid.UUID) ([]*evaluation.Result, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*evaluation.Result), args.Error(1)
}

func (m *MockRepository) GetResultByProduct(ctx context.Context, runID, productID uuid.UUID) (*evaluation.Result, error) {
	args := m.Called(ctx, runID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*evaluation.Result), args.Error(1)
}

func (m *MockRepository) LatestRunForLot(ctx context.Context, lotID uuid.UUID) (*evaluation.Run, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*evaluation.Run), args.Error(1)
}
