package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pallet-insight/pallet-insight/internal/domain/product"
)

// Match represents the outcome of matching one weighted rule against one
// product. Action may differ from the rule's own action (a warning-list hit
// always downgrades to WARN). Magnitude expresses how strongly a numeric
// condition was exceeded or undershot and feeds the scorer; list conditions
// use magnitude 1.
type Match struct {
	Matched   bool
	Action    RuleAction
	Reason    string
	Magnitude float64
}

var noMatch = Match{}

// MatchWeighted decides whether a weighted rule applies to a product.
// Inactive rules and rules with missing or malformed conditions never match;
// a comparison against an unknown product field never matches either. This
// fail-open behavior keeps a single bad rule from blocking a whole lot.
func MatchWeighted(r *WeightedRule, p *product.Product) Match {
	if r == nil || p == nil || !r.IsActive() {
		return noMatch
	}
	switch r.RuleType {
	case RuleTypeBudget:
		return matchBudget(r, p)
	case RuleTypeCategory:
		return matchCategory(r, p)
	case RuleTypeQuality:
		return matchQuality(r, p)
	default:
		return noMatch
	}
}

func matchBudget(r *WeightedRule, p *product.Product) Match {
	cond := r.Budget
	if cond == nil {
		return noMatch
	}

	// Prefer-action budget rules reward products priced under the limit;
	// block/warn rules trigger on exceeding it.
	if r.Action == ActionPrefer {
		if cond.MaxPrice <= 0 || p.Price == nil || *p.Price >= cond.MaxPrice {
			return noMatch
		}
		return Match{
			Matched:   true,
			Action:    ActionPrefer,
			Reason:    fmt.Sprintf("Cena %s PLN poniżej limitu %s PLN", formatAmount(*p.Price), formatAmount(cond.MaxPrice)),
			Magnitude: (cond.MaxPrice - *p.Price) / cond.MaxPrice,
		}
	}

	if cond.MaxPrice > 0 && p.Price != nil && *p.Price > cond.MaxPrice {
		over := *p.Price - cond.MaxPrice
		return Match{
			Matched:   true,
			Action:    r.Action,
			Reason:    fmt.Sprintf("Cena %s PLN przekracza limit %s PLN (o %s PLN)", formatAmount(*p.Price), formatAmount(cond.MaxPrice), formatAmount(over)),
			Magnitude: over / cond.MaxPrice,
		}
	}

	if cond.MaxPricePerUnit > 0 && p.Price != nil && p.Quantity != nil && *p.Quantity > 0 {
		unit := *p.Price / float64(*p.Quantity)
		if unit > cond.MaxPricePerUnit {
			return Match{
				Matched:   true,
				Action:    r.Action,
				Reason:    fmt.Sprintf("Cena jednostkowa %s PLN przekracza limit %s PLN", formatAmount(unit), formatAmount(cond.MaxPricePerUnit)),
				Magnitude: (unit - cond.MaxPricePerUnit) / cond.MaxPricePerUnit,
			}
		}
	}

	if cond.MaxTotalBudget > 0 {
		if total := p.TotalValue(); total != nil && *total > cond.MaxTotalBudget {
			return Match{
				Matched:   true,
				Action:    r.Action,
				Reason:    fmt.Sprintf("Wartość pozycji %s PLN przekracza budżet %s PLN", formatAmount(*total), formatAmount(cond.MaxTotalBudget)),
				Magnitude: (*total - cond.MaxTotalBudget) / cond.MaxTotalBudget,
			}
		}
	}

	return noMatch
}

func matchCategory(r *WeightedRule, p *product.Product) Match {
	cond := r.Category
	if cond == nil || p.Category == nil {
		return noMatch
	}
	category := *p.Category

	if containsCategory(cond.Blacklist, category, cond.CaseSensitive) {
		return Match{
			Matched:   true,
			Action:    r.Action,
			Reason:    fmt.Sprintf("Kategoria '%s' znajduje się na czarnej liście", category),
			Magnitude: 1,
		}
	}
	if containsCategory(cond.WarningList, category, cond.CaseSensitive) {
		return Match{
			Matched:   true,
			Action:    ActionWarn,
			Reason:    fmt.Sprintf("Kategoria '%s' wymaga weryfikacji", category),
			Magnitude: 1,
		}
	}
	if len(cond.Whitelist) > 0 {
		inList := containsCategory(cond.Whitelist, category, cond.CaseSensitive)
		if r.Action == ActionPrefer && inList {
			return Match{
				Matched:   true,
				Action:    ActionPrefer,
				Reason:    fmt.Sprintf("Kategoria '%s' na liście preferowanych", category),
				Magnitude: 1,
			}
		}
		if r.Action != ActionPrefer && !inList {
			return Match{
				Matched:   true,
				Action:    r.Action,
				Reason:    fmt.Sprintf("Kategoria '%s' poza dozwoloną listą", category),
				Magnitude: 1,
			}
		}
	}

	return noMatch
}

func matchQuality(r *WeightedRule, p *product.Product) Match {
	cond := r.Quality
	if cond == nil {
		return noMatch
	}

	// Rating, review-count and certification requirements compare against
	// attributes the manifest schema does not carry, so they never match.
	// Only the brand requirement is resolvable from product data.
	if len(cond.RequiredBrands) == 0 || p.Brand == nil {
		return noMatch
	}
	brand := *p.Brand
	inList := containsCategory(cond.RequiredBrands, brand, false)

	if r.Action == ActionPrefer && inList {
		return Match{
			Matched:   true,
			Action:    ActionPrefer,
			Reason:    fmt.Sprintf("Marka '%s' na liście preferowanych producentów", brand),
			Magnitude: 1,
		}
	}
	if r.Action != ActionPrefer && !inList {
		return Match{
			Matched:   true,
			Action:    r.Action,
			Reason:    fmt.Sprintf("Marka '%s' poza wymaganą listą producentów", brand),
			Magnitude: 1,
		}
	}

	return noMatch
}

// MatchWarning decides whether a warning-level rule applies to a product.
// Category and product rules require an exact case-insensitive match; phrase
// rules match a case-insensitive substring of the name or the description.
func MatchWarning(r *WarningRule, p *product.Product) bool {
	if r == nil || p == nil || !r.IsActive {
		return false
	}
	value := strings.TrimSpace(r.RuleValue)
	if value == "" {
		return false
	}

	switch r.RuleType {
	case WarningRuleCategory:
		if p.Category == nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(*p.Category), value)
	case WarningRuleProduct:
		return strings.EqualFold(strings.TrimSpace(p.Name), value)
	case WarningRulePhrase:
		phrase := strings.ToLower(value)
		if strings.Contains(strings.ToLower(p.Name), phrase) {
			return true
		}
		if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), phrase) {
			return true
		}
		return false
	default:
		return false
	}
}

func containsCategory(list []string, value string, caseSensitive bool) bool {
	for _, entry := range list {
		if caseSensitive {
			if entry == value {
				return true
			}
			continue
		}
		if strings.EqualFold(strings.TrimSpace(entry), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
