package rule

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for rule persistence. It covers both rule
// taxonomies; the evaluator itself only ever sees the active subsets.
type Repository interface {
	// Weighted rule operations
	Create(ctx context.Context, r *WeightedRule) error
	GetByRuleID(ctx context.Context, ruleID uuid.UUID) (*WeightedRule, error)
	List(ctx context.Context, filter Filter) ([]*WeightedRule, error)
	ListActive(ctx context.Context) ([]*WeightedRule, error)
	Update(ctx context.Context, r *WeightedRule) error
	SetStatus(ctx context.Context, ruleID uuid.UUID, status RuleStatus) error
	Delete(ctx context.Context, ruleID uuid.UUID) error

	// Warning rule operations
	CreateWarningRule(ctx context.Context, r *WarningRule) error
	GetWarningRule(ctx context.Context, ruleID uuid.UUID) (*WarningRule, error)
	ListWarningRules(ctx context.Context) ([]*WarningRule, error)
	ListActiveWarningRules(ctx context.Context) ([]*WarningRule, error)
	SetWarningRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) error
	DeleteWarningRule(ctx context.Context, ruleID uuid.UUID) error
}
