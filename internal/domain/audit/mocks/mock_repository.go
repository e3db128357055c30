package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pallet-insight/pallet-insight/internal/domain/audit"
)

// MockRepository is a mock implementation of audit.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Insert(ctx context.Context, entry *audit.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRepository) GetByAuditID(ctx context.Context, auditID uuid.UUID) (*audit.AuditLog, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.AuditLog), args.Error(1)
}

func (m *MockRepository) ListByEntity(ctx context.Context, entityType audit.EntityType, entityID string) ([]*audit.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.AuditLog), args.Error(1)
}

func (m *MockRepository) ListRecent(ctx context.Context, filter audit.Filter, limit int) ([]*audit.AuditLog, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.AuditLog), args.Error(1)
}
