package postgres

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

// RuleRepository implements rule.Repository for both rule taxonomies.
type RuleRepository struct {
	pool *pgxpool.Pool
}

func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

func (r *RuleRepository) Create(ctx context.Context, rl *rule.WeightedRule) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rules
		(rule_id, name, rule_type, action, weight, status, budget_condition, category_condition, quality_condition, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, rl.RuleID, rl.Name, rl.RuleType, rl.Action, rl.Weight, rl.Status, rl.Budget, rl.Category, rl.Quality, rl.CreatedAt, rl.UpdatedAt)
	return err
}

func (r *RuleRepository) GetByRuleID(ctx context.Context, ruleID uuid.UUID) (*rule.WeightedRule, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, rule_id, name, rule_type, action, weight, status, budget_condition, category_condition, quality_condition, created_at, updated_at
		FROM rules WHERE rule_id=$1
	`, ruleID)
	return scanWeightedRule(row)
}

func (r *RuleRepository) List(ctx context.Context, filter rule.Filter) ([]*rule.WeightedRule, error) {
	query := `SELECT id, rule_id, name, rule_type, action, weight, status, budget_condition, category_condition, quality_condition, created_at, updated_at FROM rules`
	args := []interface{}{}
	if filter.RuleType != nil {
		args = append(args, *filter.RuleType)
		query += " WHERE rule_type=$" + itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		if len(args) == 1 {
			query += " WHERE "
		} else {
			query += " AND "
		}
		query += "status=$" + itoa(len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWeightedRules(rows)
}

func (r *RuleRepository) ListActive(ctx context.Context) ([]*rule.WeightedRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, rule_id, name, rule_type, action, weight, status, budget_condition, category_condition, quality_condition, created_at, updated_at
		FROM rules WHERE status='ACTIVE' ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWeightedRules(rows)
}

func (r *RuleRepository) Update(ctx context.Context, rl *rule.WeightedRule) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE rules SET name=$1, rule_type=$2, action=$3, weight=$4, status=$5,
			budget_condition=$6, category_condition=$7, quality_condition=$8, updated_at=NOW()
		WHERE rule_id=$9
	`, rl.Name, rl.RuleType, rl.Action, rl.Weight, rl.Status, rl.Budget, rl.Category, rl.Quality, rl.RuleID)
	return err
}

func (r *RuleRepository) SetStatus(ctx context.Context, ruleID uuid.UUID, status rule.RuleStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE rules SET status=$1, updated_at=NOW() WHERE rule_id=$2`, status, ruleID)
	return err
}

func (r *RuleRepository) Delete(ctx context.Context, ruleID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM rules WHERE rule_id=$1`, ruleID)
	return err
}

func (r *RuleRepository) CreateWarningRule(ctx context.Context, rl *rule.WarningRule) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO warning_rules (rule_id, rule_type, rule_value, warning_level, is_active, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, rl.RuleID, rl.RuleType, rl.RuleValue, rl.Level, rl.IsActive, rl.Description, rl.CreatedAt, rl.UpdatedAt)
	return err
}

func (r *RuleRepository) GetWarningRule(ctx context.Context, ruleID uuid.UUID) (*rule.WarningRule, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, rule_id, rule_type, rule_value, warning_level, is_active, description, created_at, updated_at
		FROM warning_rules WHERE rule_id=$1
	`, ruleID)
	return scanWarningRule(row)
}

func (r *RuleRepository) ListWarningRules(ctx context.Context) ([]*rule.WarningRule, error) {
	return r.queryWarningRules(ctx, `
		SELECT id, rule_id, rule_type, rule_value, warning_level, is_active, description, created_at, updated_at
		FROM warning_rules ORDER BY created_at DESC
	`)
}

func (r *RuleRepository) ListActiveWarningRules(ctx context.Context) ([]*rule.WarningRule, error) {
	return r.queryWarningRules(ctx, `
		SELECT id, rule_id, rule_type, rule_value, warning_level, is_active, description, created_at, updated_at
		FROM warning_rules WHERE is_active=true ORDER BY created_at
	`)
}

func (r *RuleRepository) SetWarningRuleActive(ctx context.Context, ruleID uuid.UUID, active bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE warning_rules SET is_active=$1, updated_at=NOW() WHERE rule_id=$2`, active, ruleID)
	return err
}

func (r *RuleRepository) DeleteWarningRule(ctx context.Context, ruleID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM warning_rules WHERE rule_id=$1`, ruleID)
	return err
}

func (r *RuleRepository) queryWarningRules(ctx context.Context, query string) ([]*rule.WarningRule, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var rules []*rule.WarningRule
	for rows.Next() {
		rl, err := scanWarningRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rl)
	}
	return rules, rows.Err()
}

func scanWeightedRule(row pgx.Row) (*rule.WeightedRule, error) {
	var rl rule.WeightedRule
	if err := row.Scan(&rl.ID, &rl.RuleID, &rl.Name, &rl.RuleType, &rl.Action, &rl.Weight, &rl.Status, &rl.Budget, &rl.Category, &rl.Quality, &rl.CreatedAt, &rl.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

func scanWarningRule(row pgx.Row) (*rule.WarningRule, error) {
	var rl rule.WarningRule
	if err := row.Scan(&rl.ID, &rl.RuleID, &rl.RuleType, &rl.RuleValue, &rl.Level, &rl.IsActive, &rl.Description, &rl.CreatedAt, &rl.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

func collectWeightedRules(rows pgx.Rows) ([]*rule.WeightedRule, error) {
	var rules []*rule.WeightedRule
	for rows.Next() {
		rl, err := scanWeightedRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rl)
	}
	return rules, rows.Err()
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
