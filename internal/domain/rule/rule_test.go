package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeightedRule(t *testing.T) {
	r := NewWeightedRule("Limit ceny", RuleTypeBudget, ActionBlock, 8)

	require.NotNil(t, r)
	assert.NotEmpty(t, r.RuleID)
	assert.Equal(t, "Limit ceny", r.Name)
	assert.Equal(t, RuleTypeBudget, r.RuleType)
	assert.Equal(t, ActionBlock, r.Action)
	assert.Equal(t, 8, r.Weight)
	assert.Equal(t, RuleStatusActive, r.Status)
	assert.True(t, r.IsActive())
	assert.False(t, r.CreatedAt.IsZero())
	assert.False(t, r.UpdatedAt.IsZero())
}

func TestWeightedRule_Validate(t *testing.T) {
	valid := func() *WeightedRule {
		r := NewWeightedRule("Limit ceny", RuleTypeBudget, ActionBlock, 5)
		r.Budget = &BudgetCondition{MaxPrice: 1000}
		return r
	}

	tests := []struct {
		name    string
		mutate  func(*WeightedRule)
		wantErr bool
	}{
		{"valid budget rule", func(r *WeightedRule) {}, false},
		{"empty name", func(r *WeightedRule) { r.Name = "" }, true},
		{"weight below range", func(r *WeightedRule) { r.Weight = 0 }, true},
		{"weight above range", func(r *WeightedRule) { r.Weight = 11 }, true},
		{"invalid action", func(r *WeightedRule) { r.Action = "DELETE" }, true},
		{"invalid type", func(r *WeightedRule) { r.RuleType = "PRICE" }, true},
		{"invalid status", func(r *WeightedRule) { r.Status = "PAUSED" }, true},
		{"missing budget condition", func(r *WeightedRule) { r.Budget = nil }, true},
		{"negative budget limit", func(r *WeightedRule) { r.Budget.MaxPrice = -1 }, true},
		{
			"category rule without lists",
			func(r *WeightedRule) {
				r.RuleType = RuleTypeCategory
				r.Category = &CategoryCondition{}
			},
			true,
		},
		{
			"category rule with blacklist",
			func(r *WeightedRule) {
				r.RuleType = RuleTypeCategory
				r.Category = &CategoryCondition{Blacklist: []string{"Elektronika"}}
			},
			false,
		},
		{
			"quality rule without condition",
			func(r *WeightedRule) { r.RuleType = RuleTypeQuality },
			true,
		},
		{
			"quality rule with condition",
			func(r *WeightedRule) {
				r.RuleType = RuleTypeQuality
				r.Quality = &QualityCondition{RequiredBrands: []string{"Apple"}}
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(r)
			err := r.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeightedRule_ActivateDeactivate(t *testing.T) {
	r := NewWeightedRule("Limit ceny", RuleTypeBudget, ActionBlock, 5)
	r.Deactivate()
	assert.Equal(t, RuleStatusInactive, r.Status)
	assert.False(t, r.IsActive())
	r.Activate()
	assert.Equal(t, RuleStatusActive, r.Status)
	assert.True(t, r.IsActive())
}

func TestNewWarningRule(t *testing.T) {
	r := NewWarningRule(WarningRulePhrase, "uszkodzony", LevelHigh)

	require.NotNil(t, r)
	assert.NotEmpty(t, r.RuleID)
	assert.Equal(t, WarningRulePhrase, r.RuleType)
	assert.Equal(t, "uszkodzony", r.RuleValue)
	assert.Equal(t, LevelHigh, r.Level)
	assert.True(t, r.IsActive)
}

func TestWarningRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    *WarningRule
		wantErr bool
	}{
		{"valid", NewWarningRule(WarningRulePhrase, "uszkodzony", LevelHigh), false},
		{"empty value", NewWarningRule(WarningRulePhrase, "", LevelHigh), true},
		{"invalid type", &WarningRule{RuleType: "BRAND", RuleValue: "x", Level: LevelLow}, true},
		{"invalid level", &WarningRule{RuleType: WarningRulePhrase, RuleValue: "x", Level: "EXTREME"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWarningLevel_Order(t *testing.T) {
	assert.True(t, LevelHigh.Rank() > LevelMedium.Rank())
	assert.True(t, LevelMedium.Rank() > LevelLow.Rank())
	assert.True(t, LevelLow.Rank() > WarningLevel("").Rank())

	assert.Equal(t, LevelHigh, MaxLevel(LevelLow, LevelHigh))
	assert.Equal(t, LevelHigh, MaxLevel(LevelHigh, LevelLow))
	assert.Equal(t, LevelMedium, MaxLevel(LevelMedium, LevelLow))
	assert.Equal(t, LevelMedium, MaxLevel("", LevelMedium))
}
