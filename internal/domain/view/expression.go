package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/pallet-insight/pallet-insight/internal/domain/product"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

// CheckExpression verifies that an expression parses.
func CheckExpression(expression string) error {
	if _, err := govaluate.NewEvaluableExpression(expression); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return nil
}

// EvaluateExpression evaluates a filter expression against a parameter map.
// Empty expressions match everything. Supports "true"/"false" literals.
func EvaluateExpression(expression string, params map[string]interface{}) (bool, error) {
	expr := strings.TrimSpace(expression)
	if expr == "" {
		return true, nil
	}
	switch strings.ToLower(expr) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	parsed, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return false, err
	}
	result, err := parsed.Evaluate(params)
	if err != nil {
		return false, err
	}
	switch v := result.(type) {
	case bool:
		return v, nil
	default:
		return false, errors.New("expression did not evaluate to boolean")
	}
}

// BuildParams flattens a product and its latest evaluation into expression
// parameters. Unknown optional fields become zero values so comparisons stay
// total instead of erroring per product.
func BuildParams(p *product.Product, eval *rule.ProductEvaluation) map[string]interface{} {
	params := map[string]interface{}{
		"name":        "",
		"category":    "",
		"description": "",
		"brand":       "",
		"price":       0.0,
		"quantity":    0,
		"score":       0.0,
		"status":      "",
		"level":       "",
	}
	if p != nil {
		params["name"] = p.Name
		if p.Category != nil {
			params["category"] = *p.Category
		}
		if p.Description != nil {
			params["description"] = *p.Description
		}
		if p.Brand != nil {
			params["brand"] = *p.Brand
		}
		if p.Price != nil {
			params["price"] = *p.Price
		}
		if p.Quantity != nil {
			params["quantity"] = *p.Quantity
		}
	}
	if eval != nil {
		params["score"] = eval.Score
		params["status"] = string(eval.Status)
		params["level"] = string(eval.WarningLevel)
	}
	return params
}
