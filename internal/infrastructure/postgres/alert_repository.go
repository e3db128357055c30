package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pallet-insight/pallet-insight/internal/domain/alert"
)

// AlertRepository implements alert.Repository.
type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

func (r *AlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO alerts (alert_id, run_id, product_id, severity, title, body, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, a.AlertID, a.RunID, a.ProductID, a.Severity, a.Title, a.Body, a.Status, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *AlertRepository) GetByAlertID(ctx context.Context, alertID uuid.UUID) (*alert.Alert, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, alert_id, run_id, product_id, severity, title, body, status, created_at, updated_at
		FROM alerts WHERE alert_id=$1
	`, alertID)
	return scanAlert(row)
}

func (r *AlertRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]*alert.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, alert_id, run_id, product_id, severity, title, body, status, created_at, updated_at
		FROM alerts WHERE run_id=$1 ORDER BY created_at DESC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func (r *AlertRepository) ListOpen(ctx context.Context, limit int) ([]*alert.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, alert_id, run_id, product_id, severity, title, body, status, created_at, updated_at
		FROM alerts WHERE status='OPEN' ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func (r *AlertRepository) UpdateStatus(ctx context.Context, alertID uuid.UUID, status alert.Status) error {
	_, err := r.pool.Exec(ctx, `UPDATE alerts SET status=$1, updated_at=NOW() WHERE alert_id=$2`, status, alertID)
	return err
}

func scanAlert(row pgx.Row) (*alert.Alert, error) {
	var a alert.Alert
	if err := row.Scan(&a.ID, &a.AlertID, &a.RunID, &a.ProductID, &a.Severity, &a.Title, &a.Body, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func collectAlerts(rows pgx.Rows) ([]*alert.Alert, error) {
	var alerts []*alert.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
