package rule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RuleType represents the type of a weighted rule
type RuleType string

const (
	RuleTypeBudget   RuleType = "BUDGET"
	RuleTypeCategory RuleType = "CATEGORY"
	RuleTypeQuality  RuleType = "QUALITY"
)

// RuleAction represents the consequence of a weighted rule match
type RuleAction string

const (
	ActionBlock  RuleAction = "BLOCK"
	ActionWarn   RuleAction = "WARN"
	ActionPrefer RuleAction = "PREFER"
)

// RuleStatus represents the status of a weighted rule
type RuleStatus string

const (
	RuleStatusActive   RuleStatus = "ACTIVE"
	RuleStatusInactive RuleStatus = "INACTIVE"
)

const (
	MinWeight = 1
	MaxWeight = 10
)

// BudgetCondition holds price limits for budget rules. Zero-valued limits
// are treated as unset.
type BudgetCondition struct {
	MaxPrice        float64 `json:"maxPrice,omitempty"`
	MaxPricePerUnit float64 `json:"maxPricePerUnit,omitempty"`
	MaxTotalBudget  float64 `json:"maxTotalBudget,omitempty"`
	Currency        string  `json:"currency,omitempty"`
}

// CategoryCondition holds category lists for category rules.
type CategoryCondition struct {
	Blacklist     []string `json:"blacklist,omitempty"`
	Whitelist     []string `json:"whitelist,omitempty"`
	WarningList   []string `json:"warningList,omitempty"`
	CaseSensitive bool     `json:"caseSensitive,omitempty"`
}

// QualityCondition holds quality requirements. MinRating, MinReviews and
// RequiredCertifications refer to attributes the manifest schema does not
// carry; they are kept for authoring compatibility and never match.
type QualityCondition struct {
	MinRating              float64  `json:"minRating,omitempty"`
	MinReviews             int      `json:"minReviews,omitempty"`
	RequiredCertifications []string `json:"requiredCertifications,omitempty"`
	RequiredBrands         []string `json:"requiredBrands,omitempty"`
}

// WeightedRule represents a budget/category/quality rule with a block, warn
// or prefer action and a 1-10 weight driving score contributions.
type WeightedRule struct {
	ID        int64              `json:"id"`
	RuleID    uuid.UUID          `json:"ruleId"`
	Name      string             `json:"name"`
	RuleType  RuleType           `json:"ruleType"`
	Action    RuleAction         `json:"action"`
	Weight    int                `json:"weight"`
	Status    RuleStatus         `json:"status"`
	Budget    *BudgetCondition   `json:"budget,omitempty"`
	Category  *CategoryCondition `json:"category,omitempty"`
	Quality   *QualityCondition  `json:"quality,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewWeightedRule creates a new active rule with default values
func NewWeightedRule(name string, ruleType RuleType, action RuleAction, weight int) *WeightedRule {
	now := time.Now().UTC()
	return &WeightedRule{
		RuleID:    uuid.New(),
		Name:      name,
		RuleType:  ruleType,
		Action:    action,
		Weight:    weight,
		Status:    RuleStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive reports whether the rule participates in evaluation.
func (r *WeightedRule) IsActive() bool {
	return r.Status == RuleStatusActive
}

// Activate activates the rule
func (r *WeightedRule) Activate() {
	r.Status = RuleStatusActive
	r.UpdatedAt = time.Now().UTC()
}

// Deactivate deactivates the rule
func (r *WeightedRule) Deactivate() {
	r.Status = RuleStatusInactive
	r.UpdatedAt = time.Now().UTC()
}

// Validate validates the rule at authoring time. Evaluation assumes rules
// already passed this check and does not re-validate.
func (r *WeightedRule) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Weight < MinWeight || r.Weight > MaxWeight {
		return errors.New("weight must be between 1 and 10")
	}

	switch r.Action {
	case ActionBlock, ActionWarn, ActionPrefer:
	default:
		return errors.New("invalid action")
	}

	switch r.RuleType {
	case RuleTypeBudget:
		if r.Budget == nil {
			return errors.New("budget condition is required")
		}
		if r.Budget.MaxPrice < 0 || r.Budget.MaxPricePerUnit < 0 || r.Budget.MaxTotalBudget < 0 {
			return errors.New("budget limits must be non-negative")
		}
	case RuleTypeCategory:
		if r.Category == nil {
			return errors.New("category condition is required")
		}
		if len(r.Category.Blacklist) == 0 && len(r.Category.Whitelist) == 0 && len(r.Category.WarningList) == 0 {
			return errors.New("category condition must list at least one category")
		}
	case RuleTypeQuality:
		if r.Quality == nil {
			return errors.New("quality condition is required")
		}
	default:
		return errors.New("invalid ruleType")
	}

	switch r.Status {
	case RuleStatusActive, RuleStatusInactive:
	default:
		return errors.New("invalid status")
	}

	return nil
}

// Filter represents filters for querying weighted rules
type Filter struct {
	RuleType *RuleType
	Status   *RuleStatus
}
