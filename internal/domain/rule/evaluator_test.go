package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pallet-insight/pallet-insight/internal/domain/product"
)

func newEvaluator(weighted []*WeightedRule, warning []*WarningRule) *Evaluator {
	return NewEvaluator(DefaultConfig(), weighted, warning)
}

func TestEvaluate_BudgetBlockScenario(t *testing.T) {
	r := NewWeightedRule("Limit ceny", RuleTypeBudget, ActionBlock, 8)
	r.Budget = &BudgetCondition{MaxPrice: 1000, Currency: "PLN"}

	p := testProduct("iPhone 13")
	p.Category = strPtr("Elektronika")
	p.Price = floatPtr(2000)

	eval := newEvaluator([]*WeightedRule{r}, nil).Evaluate(p)

	assert.Equal(t, StatusBlocked, eval.Status)
	assert.Equal(t, []string{"Cena 2000 PLN przekracza limit 1000 PLN (o 1000 PLN)"}, eval.Blocks)
	assert.Equal(t, 0.0, eval.Score)
	require.Len(t, eval.AppliedRules, 1)
	assert.Equal(t, r.RuleID, eval.AppliedRules[0].RuleID)
}

func TestEvaluate_BlockDominance(t *testing.T) {
	block := NewWeightedRule("Limit ceny", RuleTypeBudget, ActionBlock, 5)
	block.Budget = &BudgetCondition{MaxPrice: 100}

	prefer1 := NewWeightedRule("Preferowane kategorie", RuleTypeCategory, ActionPrefer, 10)
	prefer1.Category = &CategoryCondition{Whitelist: []string{"Elektronika"}}
	prefer2 := NewWeightedRule("Preferowane marki", RuleTypeQuality, ActionPrefer, 10)
	prefer2.Quality = &QualityCondition{RequiredBrands: []string{"Apple"}}

	p := testProduct("iPad")
	p.Category = strPtr("Elektronika")
	p.Brand = strPtr("Apple")
	p.Price = floatPtr(500)

	// Block wins no matter where it sits in the rule order.
	for _, rules := range [][]*WeightedRule{
		{block, prefer1, prefer2},
		{prefer1, prefer2, block},
	} {
		eval := newEvaluator(rules, nil).Evaluate(p)
		assert.Equal(t, StatusBlocked, eval.Status)
		assert.Equal(t, 0.0, eval.Score)
		// Prefer rules still appear in the trace.
		assert.Len(t, eval.AppliedRules, 3)
	}
}

func TestEvaluate_WarningLevelMaxDominance(t *testing.T) {
	tests := []struct {
		name     string
		levels   []WarningLevel
		expected WarningLevel
	}{
		{"low and high", []WarningLevel{LevelLow, LevelHigh}, LevelHigh},
		{"medium and low", []WarningLevel{LevelMedium, LevelLow}, LevelMedium},
		{"high first", []WarningLevel{LevelHigh, LevelLow, LevelMedium}, LevelHigh},
		{"single low", []WarningLevel{LevelLow}, LevelLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rules []*WarningRule
			for _, lvl := range tt.levels {
				rules = append(rules, NewWarningRule(WarningRulePhrase, "zwrot", lvl))
			}
			p := testProduct("Zwrot konsumencki")
			eval := newEvaluator(nil, rules).Evaluate(p)
			assert.Equal(t, tt.expected, eval.WarningLevel)
			assert.Len(t, eval.AppliedRules, len(tt.levels))
		})
	}
}

func TestEvaluate_PhraseHighScenario(t *testing.T) {
	r := NewWarningRule(WarningRulePhrase, "uszkodzony", LevelHigh)

	p := testProduct("Zwrot X")
	p.Description = strPtr("towar uszkodzony w transporcie")

	eval := newEvaluator(nil, []*WarningRule{r}).Evaluate(p)
	assert.Equal(t, LevelHigh, eval.WarningLevel)
	// HIGH is advisory only, not a hard block.
	assert.NotEqual(t, StatusBlocked, eval.Status)
}

func TestEvaluate_ScoreClamping(t *testing.T) {
	p := testProduct("Produkt")
	p.Category = strPtr("Elektronika")

	var prefers []*WeightedRule
	for i := 0; i < 5; i++ {
		r := NewWeightedRule("Preferowana kategoria", RuleTypeCategory, ActionPrefer, 10)
		r.Category = &CategoryCondition{Whitelist: []string{"Elektronika"}}
		prefers = append(prefers, r)
	}
	eval := newEvaluator(prefers, nil).Evaluate(p)
	assert.Equal(t, 100.0, eval.Score)
	assert.Equal(t, StatusOK, eval.Status)

	var warns []*WeightedRule
	for i := 0; i < 5; i++ {
		r := NewWeightedRule("Czarna lista", RuleTypeCategory, ActionWarn, 10)
		r.Category = &CategoryCondition{Blacklist: []string{"Elektronika"}}
		warns = append(warns, r)
	}
	eval = newEvaluator(warns, nil).Evaluate(p)
	assert.Equal(t, 0.0, eval.Score)
	assert.Equal(t, StatusWarning, eval.Status)
}

func TestEvaluate_ScoreAccumulation(t *testing.T) {
	warn := NewWeightedRule("Lista ostrzeżeń", RuleTypeCategory, ActionWarn, 10)
	warn.Category = &CategoryCondition{Blacklist: []string{"Zabawki"}}

	prefer := NewWeightedRule("Tanie produkty", RuleTypeBudget, ActionPrefer, 10)
	prefer.Budget = &BudgetCondition{MaxPrice: 1000}

	p := testProduct("Klocki")
	p.Category = strPtr("Zabawki")
	p.Price = floatPtr(500)

	// 50 - 20*1*1 + 20*1*0.5 = 40
	eval := newEvaluator([]*WeightedRule{warn, prefer}, nil).Evaluate(p)
	assert.InDelta(t, 40.0, eval.Score, 1e-9)
	assert.Equal(t, StatusWarning, eval.Status)
	assert.Len(t, eval.Warnings, 1)
	assert.Len(t, eval.Recommendations, 1)
}

func TestEvaluate_InactiveRulesNeverApply(t *testing.T) {
	weighted := NewWeightedRule("Wyłączona", RuleTypeCategory, ActionBlock, 10)
	weighted.Category = &CategoryCondition{Blacklist: []string{"Elektronika"}}
	weighted.Deactivate()

	warning := NewWarningRule(WarningRulePhrase, "iphone", LevelHigh)
	warning.IsActive = false

	p := testProduct("iPhone 13")
	p.Category = strPtr("Elektronika")

	eval := newEvaluator([]*WeightedRule{weighted}, []*WarningRule{warning}).Evaluate(p)
	assert.Empty(t, eval.AppliedRules)
	assert.Equal(t, StatusOK, eval.Status)
	assert.Empty(t, eval.WarningLevel)
}

func TestEvaluateAll_EmptyRuleSetIsIdentity(t *testing.T) {
	products := []*product.Product{
		testProduct("Produkt A"),
		testProduct("Produkt B"),
		testProduct("Produkt C"),
	}
	products[0].Price = floatPtr(999999)
	products[1].Description = strPtr("towar uszkodzony")

	results := newEvaluator(nil, nil).EvaluateAll(products, nil)
	require.Len(t, results, len(products))
	for _, eval := range results {
		assert.Equal(t, StatusOK, eval.Status)
		assert.Equal(t, 50.0, eval.Score)
		assert.Empty(t, eval.AppliedRules)
		assert.Empty(t, eval.WarningLevel)
		assert.Empty(t, eval.Blocks)
		assert.Empty(t, eval.Warnings)
	}
}

func TestEvaluateAll_Progress(t *testing.T) {
	r := NewWeightedRule("Limit ceny", RuleTypeBudget, ActionBlock, 5)
	r.Budget = &BudgetCondition{MaxPrice: 100}

	products := []*product.Product{
		testProduct("Pierwszy"),
		testProduct("Drugi"),
		testProduct("Trzeci"),
		testProduct("Czwarty"),
	}

	var percents []int
	var labels []string
	results := newEvaluator([]*WeightedRule{r}, nil).EvaluateAll(products, func(percent int, label string) {
		percents = append(percents, percent)
		labels = append(labels, label)
	})

	assert.Len(t, results, 4)
	assert.Equal(t, []int{25, 50, 75, 100}, percents)
	assert.Equal(t, []string{"Pierwszy", "Drugi", "Trzeci", "Czwarty"}, labels)
}

func TestEvaluate_StatusBelowThresholdWithoutWarnRule(t *testing.T) {
	// Warn rules matched push the status to WARNING even if each alone
	// would not; a score under the threshold does the same.
	warn := NewWeightedRule("Lista ostrzeżeń", RuleTypeCategory, ActionWarn, 10)
	warn.Category = &CategoryCondition{Blacklist: []string{"Zabawki"}}
	warn2 := NewWeightedRule("Druga lista", RuleTypeCategory, ActionWarn, 1)
	warn2.Category = &CategoryCondition{Blacklist: []string{"Zabawki"}}

	p := testProduct("Klocki")
	p.Category = strPtr("Zabawki")

	// 50 - 20 - 2 = 28 < 30
	eval := newEvaluator([]*WeightedRule{warn, warn2}, nil).Evaluate(p)
	assert.InDelta(t, 28.0, eval.Score, 1e-9)
	assert.Equal(t, StatusWarning, eval.Status)
}

func TestRecommendations(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("blocked product", func(t *testing.T) {
		eval := &ProductEvaluation{
			Status: StatusBlocked,
			AppliedRules: []AppliedRule{
				{Kind: KindWeighted, Action: ActionBlock, Reason: "Cena przekracza limit"},
				{Kind: KindWeighted, Action: ActionPrefer, Reason: "Kategoria 'Elektronika' na liście preferowanych"},
			},
		}
		recs := Recommendations(eval, cfg)
		require.NotEmpty(t, recs)
		assert.Equal(t, RecommendRemove, recs[0].Kind)
		// One follow-up per applied prefer/warn rule, block reasons excluded.
		require.Len(t, recs, 2)
		assert.Equal(t, RecommendInfo, recs[1].Kind)
		assert.Equal(t, "Kategoria 'Elektronika' na liście preferowanych", recs[1].Message)
	})

	t.Run("warning product", func(t *testing.T) {
		eval := &ProductEvaluation{Status: StatusWarning, Score: 40}
		recs := Recommendations(eval, cfg)
		require.Len(t, recs, 1)
		assert.Equal(t, RecommendReview, recs[0].Kind)
	})

	t.Run("high score ok product", func(t *testing.T) {
		eval := &ProductEvaluation{Status: StatusOK, Score: 85}
		recs := Recommendations(eval, cfg)
		require.Len(t, recs, 1)
		assert.Equal(t, RecommendAdd, recs[0].Kind)
	})

	t.Run("plain ok product", func(t *testing.T) {
		eval := &ProductEvaluation{Status: StatusOK, Score: 50}
		assert.Empty(t, Recommendations(eval, cfg))
	})

	t.Run("warning-level trace entries are not repeated", func(t *testing.T) {
		eval := &ProductEvaluation{
			Status: StatusWarning,
			AppliedRules: []AppliedRule{
				{Kind: KindWarning, Level: LevelHigh, Reason: "Znaleziono frazę 'uszkodzony'"},
			},
		}
		recs := Recommendations(eval, cfg)
		require.Len(t, recs, 1)
		assert.Equal(t, RecommendReview, recs[0].Kind)
	})
}
