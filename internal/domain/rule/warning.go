package rule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// WarningRuleType represents what a warning-level rule matches against
type WarningRuleType string

const (
	WarningRuleCategory WarningRuleType = "CATEGORY"
	WarningRuleProduct  WarningRuleType = "PRODUCT"
	WarningRulePhrase   WarningRuleType = "PHRASE"
)

// WarningLevel represents the severity attached to a warning rule.
// Levels form a total order: LOW < MEDIUM < HIGH.
type WarningLevel string

const (
	LevelLow    WarningLevel = "LOW"
	LevelMedium WarningLevel = "MEDIUM"
	LevelHigh   WarningLevel = "HIGH"
)

// Rank returns the position of the level in the LOW < MEDIUM < HIGH order.
// Unknown levels rank below LOW so malformed rules can never escalate.
func (l WarningLevel) Rank() int {
	switch l {
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	default:
		return 0
	}
}

// MaxLevel returns the higher of two warning levels.
func MaxLevel(a, b WarningLevel) WarningLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// WarningRule represents a category/product/phrase rule carrying a severity
// instead of a score. HIGH is advisory only, never a hard block.
type WarningRule struct {
	ID          int64           `json:"id"`
	RuleID      uuid.UUID       `json:"ruleId"`
	RuleType    WarningRuleType `json:"ruleType"`
	RuleValue   string          `json:"ruleValue"`
	Level       WarningLevel    `json:"warningLevel"`
	IsActive    bool            `json:"isActive"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewWarningRule creates a new active warning rule
func NewWarningRule(ruleType WarningRuleType, ruleValue string, level WarningLevel) *WarningRule {
	now := time.Now().UTC()
	return &WarningRule{
		RuleID:    uuid.New(),
		RuleType:  ruleType,
		RuleValue: ruleValue,
		Level:     level,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the warning rule at authoring time.
func (r *WarningRule) Validate() error {
	if r.RuleValue == "" {
		return errors.New("ruleValue is required")
	}
	switch r.RuleType {
	case WarningRuleCategory, WarningRuleProduct, WarningRulePhrase:
	default:
		return errors.New("invalid ruleType")
	}
	switch r.Level {
	case LevelLow, LevelMedium, LevelHigh:
	default:
		return errors.New("invalid warningLevel")
	}
	return nil
}
