package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

// MockRepository is a mock implementation of rule.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, r *rule.WeightedRule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRepository) GetByRuleID(ctx context.Context, ruleID uuid.UUID) (*rule.WeightedRule, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rule.WeightedRule), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter rule.Filter) ([]*rule.WeightedRule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rule.WeightedRule), args.Error(1)
}

func (m *MockRepository) ListActive(ctx context.Context) ([]*rule.WeightedRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rule.WeightedRule), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, r *rule.WeightedRule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRepository) SetStatus(ctx context.Context, ruleID uuid.UUID, status rule.RuleStatus) error {
	args := m.Called(ctx, ruleID, status)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, ruleID uuid.UUID) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}

func (m *MockRepository) CreateWarningRule(ctx context.Context, r *rule.WarningRule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRepository) GetWarningRule(ctx context.Context, ruleID uuid.UUID) (*rule.WarningRule, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rule.WarningRule), args.Error(1)
}

func (m *MockRepository) ListWarningRules(ctx context.Context) ([]*rule.WarningRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rule.WarningRule), args.Error(1)
}

func (m *MockRepository) ListActiveWarningRules(ctx context.Context) ([]*rule.WarningRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rule.WarningRule), args.Error(1)
}

func (m *MockRepository) SetWarningRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) error {
	args := m.Called(ctx, ruleID, active)
	return args.Error(0)
}

func (m *MockRepository) DeleteWarningRule(ctx context.Context, ruleID uuid.UUID) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}
