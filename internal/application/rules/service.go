package rules

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appAudit "github.com/pallet-insight/pallet-insight/internal/application/audit"
	"github.com/pallet-insight/pallet-insight/internal/domain/audit"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

// Service handles CRUD for weighted purchase rules and warning rules.
type Service struct {
	repo     rule.Repository
	auditSvc *appAudit.Service
	logger   zerolog.Logger
}

// NewService creates a rules service.
func NewService(repo rule.Repository, auditSvc *appAudit.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		auditSvc: auditSvc,
		logger:   logger.With().Str("service", "rules").Logger(),
	}
}

// CreateRuleInput carries the fields of a new weighted rule.
type CreateRuleInput struct {
	Name     string                  `json:"name"`
	RuleType rule.RuleType           `json:"ruleType"`
	Action   rule.RuleAction         `json:"action"`
	Weight   int                     `json:"weight"`
	Budget   *rule.BudgetCondition   `json:"budget,omitempty"`
	Category *rule.CategoryCondition `json:"category,omitempty"`
	Quality  *rule.QualityCondition  `json:"quality,omitempty"`
}

// CreateRule validates and stores a new weighted rule. New rules start active.
func (s *Service) CreateRule(ctx context.Context, input CreateRuleInput, actor string) (*rule.WeightedRule, error) {
	r := rule.NewWeightedRule(input.Name, input.RuleType, input.Action, input.Weight)
	r.Budget = input.Budget
	r.Category = input.Category
	r.Quality = input.Quality

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeRule, r.RuleID.String(), audit.ActionCreate, actor, nil, r)
	s.logger.Info().
		Str("ruleId", r.RuleID.String()).
		Str("ruleType", string(r.RuleType)).
		Str("action", string(r.Action)).
		Int("weight", r.Weight).
		Msg("rule created")
	return r, nil
}

// GetRule retrieves a weighted rule by ID.
func (s *Service) GetRule(ctx context.Context, ruleID uuid.UUID) (*rule.WeightedRule, error) {
	return s.repo.GetByRuleID(ctx, ruleID)
}

// ListRules lists weighted rules matching the filter.
func (s *Service) ListRules(ctx context.Context, filter rule.Filter) ([]*rule.WeightedRule, error) {
	return s.repo.List(ctx, filter)
}

// UpdateRuleInput carries the mutable fields of a weighted rule.
type UpdateRuleInput struct {
	Name     *string                 `json:"name,omitempty"`
	Weight   *int                    `json:"weight,omitempty"`
	Action   *rule.RuleAction        `json:"action,omitempty"`
	Budget   *rule.BudgetCondition   `json:"budget,omitempty"`
	Category *rule.CategoryCondition `json:"category,omitempty"`
	Quality  *rule.QualityCondition  `json:"quality,omitempty"`
}

// UpdateRule applies partial changes to a weighted rule. The rule type is
// immutable after creation.
func (s *Service) UpdateRule(ctx context.Context, ruleID uuid.UUID, input UpdateRuleInput, actor string) (*rule.WeightedRule, error) {
	r, err := s.repo.GetByRuleID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("rule not found: %s", ruleID)
	}
	old := *r

	if input.Name != nil {
		r.Name = *input.Name
	}
	if input.Weight != nil {
		r.Weight = *input.Weight
	}
	if input.Action != nil {
		r.Action = *input.Action
	}
	if input.Budget != nil {
		r.Budget = input.Budget
	}
	if input.Category != nil {
		r.Category = input.Category
	}
	if input.Quality != nil {
		r.Quality = input.Quality
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeRule, r.RuleID.String(), audit.ActionUpdate, actor, old, r)
	return r, nil
}

// SetRuleStatus activates or deactivates a weighted rule. Inactive rules are
// skipped by every evaluation run.
func (s *Service) SetRuleStatus(ctx context.Context, ruleID uuid.UUID, status rule.RuleStatus, actor string) (*rule.WeightedRule, error) {
	r, err := s.repo.GetByRuleID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("rule not found: %s", ruleID)
	}
	old := r.Status

	switch status {
	case rule.RuleStatusActive:
		r.Activate()
	case rule.RuleStatusInactive:
		r.Deactivate()
	default:
		return nil, fmt.Errorf("invalid rule status: %s", status)
	}

	if err := s.repo.SetStatus(ctx, ruleID, r.Status); err != nil {
		return nil, fmt.Errorf("failed to set rule status: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeRule, r.RuleID.String(), audit.ActionStatusChange, actor,
		map[string]string{"status": string(old)}, map[string]string{"status": string(r.Status)})
	s.logger.Info().
		Str("ruleId", r.RuleID.String()).
		Str("status", string(r.Status)).
		Msg("rule status changed")
	return r, nil
}

// DeleteRule removes a weighted rule.
func (s *Service) DeleteRule(ctx context.Context, ruleID uuid.UUID, actor string) error {
	r, err := s.repo.GetByRuleID(ctx, ruleID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("rule not found: %s", ruleID)
	}

	if err := s.repo.Delete(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeRule, ruleID.String(), audit.ActionDelete, actor, r, nil)
	return nil
}

// CreateWarningRuleInput carries the fields of a new warning rule.
type CreateWarningRuleInput struct {
	RuleType    rule.WarningRuleType `json:"ruleType"`
	RuleValue   string               `json:"ruleValue"`
	Level       rule.WarningLevel    `json:"level"`
	Description *string              `json:"description,omitempty"`
}

// CreateWarningRule validates and stores a new warning rule.
func (s *Service) CreateWarningRule(ctx context.Context, input CreateWarningRuleInput, actor string) (*rule.WarningRule, error) {
	r := rule.NewWarningRule(input.RuleType, input.RuleValue, input.Level)
	r.Description = input.Description

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateWarningRule(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create warning rule: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeWarningRule, r.RuleID.String(), audit.ActionCreate, actor, nil, r)
	s.logger.Info().
		Str("ruleId", r.RuleID.String()).
		Str("ruleType", string(r.RuleType)).
		Str("level", string(r.Level)).
		Msg("warning rule created")
	return r, nil
}

// GetWarningRule retrieves a warning rule by ID.
func (s *Service) GetWarningRule(ctx context.Context, ruleID uuid.UUID) (*rule.WarningRule, error) {
	return s.repo.GetWarningRule(ctx, ruleID)
}

// ListWarningRules lists warning rules, optionally only active ones.
func (s *Service) ListWarningRules(ctx context.Context, activeOnly bool) ([]*rule.WarningRule, error) {
	if activeOnly {
		return s.repo.ListActiveWarningRules(ctx)
	}
	return s.repo.ListWarningRules(ctx)
}

// SetWarningRuleActive toggles a warning rule.
func (s *Service) SetWarningRuleActive(ctx context.Context, ruleID uuid.UUID, active bool, actor string) (*rule.WarningRule, error) {
	r, err := s.repo.GetWarningRule(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("warning rule not found: %s", ruleID)
	}
	old := r.IsActive
	r.IsActive = active

	if err := s.repo.SetWarningRuleActive(ctx, ruleID, active); err != nil {
		return nil, fmt.Errorf("failed to toggle warning rule: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeWarningRule, ruleID.String(), audit.ActionStatusChange, actor,
		map[string]bool{"isActive": old}, map[string]bool{"isActive": active})
	return r, nil
}

// DeleteWarningRule removes a warning rule.
func (s *Service) DeleteWarningRule(ctx context.Context, ruleID uuid.UUID, actor string) error {
	r, err := s.repo.GetWarningRule(ctx, ruleID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("warning rule not found: %s", ruleID)
	}

	if err := s.repo.DeleteWarningRule(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to delete warning rule: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeWarningRule, ruleID.String(), audit.ActionDelete, actor, r, nil)
	return nil
}
