package rule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pallet-insight/pallet-insight/internal/domain/product"
)

// EvaluationStatus represents the weighted-system outcome for one product
type EvaluationStatus string

const (
	StatusOK      EvaluationStatus = "OK"
	StatusWarning EvaluationStatus = "WARNING"
	StatusBlocked EvaluationStatus = "BLOCKED"
)

// RuleKind distinguishes the two rule taxonomies in an applied-rule trace
type RuleKind string

const (
	KindWeighted RuleKind = "WEIGHTED"
	KindWarning  RuleKind = "WARNING"
)

// AppliedRule records that a rule matched a product, with the reason shown
// to users. The trace preserves rule iteration order for display; the order
// never changes the outcome.
type AppliedRule struct {
	RuleID   uuid.UUID    `json:"ruleId"`
	RuleName string       `json:"ruleName"`
	Kind     RuleKind     `json:"kind"`
	Action   RuleAction   `json:"action,omitempty"`
	Level    WarningLevel `json:"level,omitempty"`
	Reason   string       `json:"reason"`
}

// ProductEvaluation is the result of evaluating one product against the full
// active rule set. WarningLevel is empty when no warning-level rule matched.
type ProductEvaluation struct {
	ProductID       uuid.UUID        `json:"productId"`
	ProductName     string           `json:"productName"`
	Score           float64          `json:"score"`
	Status          EvaluationStatus `json:"status"`
	WarningLevel    WarningLevel     `json:"warningLevel,omitempty"`
	AppliedRules    []AppliedRule    `json:"appliedRules,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
	Warnings        []string         `json:"warnings,omitempty"`
	Blocks          []string         `json:"blocks,omitempty"`
	EvaluatedAt     time.Time        `json:"evaluatedAt"`
}

// ProgressFunc receives batch progress after each product. It is invoked
// synchronously between iterations.
type ProgressFunc func(percent int, productLabel string)

// Evaluator runs both rule systems over products. It snapshots the active
// subset of the rule set at construction time, so rule mutations during a
// batch never change the outcome mid-run.
type Evaluator struct {
	cfg      EvaluatorConfig
	weighted []*WeightedRule
	warning  []*WarningRule
}

// NewEvaluator builds an evaluator from a rule set. Inactive rules are
// filtered out once here, not re-checked per product.
func NewEvaluator(cfg EvaluatorConfig, weighted []*WeightedRule, warning []*WarningRule) *Evaluator {
	e := &Evaluator{cfg: cfg}
	for _, r := range weighted {
		if r != nil && r.IsActive() {
			e.weighted = append(e.weighted, r)
		}
	}
	for _, r := range warning {
		if r != nil && r.IsActive {
			e.warning = append(e.warning, r)
		}
	}
	return e
}

// HasRules reports whether any active rule survived the snapshot.
func (e *Evaluator) HasRules() bool {
	return len(e.weighted) > 0 || len(e.warning) > 0
}

// Evaluate runs every active rule against one product. It is a pure function
// of (product, rule snapshot): a block always wins regardless of order, the
// warning level is always the maximum matched level.
func (e *Evaluator) Evaluate(p *product.Product) *ProductEvaluation {
	eval := &ProductEvaluation{
		ProductID:   p.ProductID,
		ProductName: p.Name,
		Score:       e.cfg.BaseScore,
		Status:      StatusOK,
		EvaluatedAt: time.Now().UTC(),
	}

	blocked := false
	warned := false
	for _, r := range e.weighted {
		m := MatchWeighted(r, p)
		if !m.Matched {
			continue
		}
		eval.AppliedRules = append(eval.AppliedRules, AppliedRule{
			RuleID:   r.RuleID,
			RuleName: r.Name,
			Kind:     KindWeighted,
			Action:   m.Action,
			Reason:   m.Reason,
		})
		switch m.Action {
		case ActionBlock:
			blocked = true
			eval.Blocks = append(eval.Blocks, m.Reason)
		case ActionWarn:
			warned = true
			eval.Warnings = append(eval.Warnings, m.Reason)
			if !blocked {
				eval.Score += e.cfg.Contribution(m, r.Weight)
			}
		case ActionPrefer:
			eval.Recommendations = append(eval.Recommendations, m.Reason)
			if !blocked {
				eval.Score += e.cfg.Contribution(m, r.Weight)
			}
		}
	}

	if blocked {
		eval.Score = e.cfg.MinScore
	} else {
		eval.Score = e.cfg.Clamp(eval.Score)
	}

	for _, r := range e.warning {
		if !MatchWarning(r, p) {
			continue
		}
		reason := warningReason(r)
		eval.AppliedRules = append(eval.AppliedRules, AppliedRule{
			RuleID:   r.RuleID,
			RuleName: r.RuleValue,
			Kind:     KindWarning,
			Level:    r.Level,
			Reason:   reason,
		})
		eval.Warnings = append(eval.Warnings, reason)
		eval.WarningLevel = MaxLevel(eval.WarningLevel, r.Level)
	}

	switch {
	case blocked:
		eval.Status = StatusBlocked
	case warned || eval.Score < e.cfg.WarningThreshold:
		eval.Status = StatusWarning
	}

	return eval
}

// EvaluateAll evaluates products in input order against the rule snapshot.
// With no active rules it is the identity: every product comes back OK with
// base score, no applied rules and no warning level. Progress is reported
// after each product.
func (e *Evaluator) EvaluateAll(products []*product.Product, onProgress ProgressFunc) []*ProductEvaluation {
	results := make([]*ProductEvaluation, 0, len(products))
	for i, p := range products {
		results = append(results, e.Evaluate(p))
		if onProgress != nil {
			onProgress((i+1)*100/len(products), p.Name)
		}
	}
	return results
}

func warningReason(r *WarningRule) string {
	if r.Description != nil && *r.Description != "" {
		return *r.Description
	}
	switch r.RuleType {
	case WarningRuleCategory:
		return fmt.Sprintf("Kategoria '%s' oznaczona poziomem %s", r.RuleValue, r.Level)
	case WarningRuleProduct:
		return fmt.Sprintf("Produkt '%s' oznaczony poziomem %s", r.RuleValue, r.Level)
	default:
		return fmt.Sprintf("Znaleziono frazę '%s' (poziom %s)", r.RuleValue, r.Level)
	}
}
