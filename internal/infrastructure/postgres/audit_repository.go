package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pallet-insight/pallet-insight/internal/domain/audit"
)

// AuditRepository implements audit.Repository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *audit.AuditLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (audit_id, entity_type, entity_id, action, actor, old_values, new_values, signature, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, entry.AuditID, entry.EntityType, entry.EntityID, entry.Action, entry.Actor, entry.OldValues, entry.NewValues, entry.Signature, entry.CreatedAt)
	return err
}

func (r *AuditRepository) GetByAuditID(ctx context.Context, auditID uuid.UUID) (*audit.AuditLog, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, audit_id, entity_type, entity_id, action, actor, old_values, new_values, signature, created_at
		FROM audit_logs WHERE audit_id=$1
	`, auditID)
	return scanAuditLog(row)
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType audit.EntityType, entityID string) ([]*audit.AuditLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, audit_id, entity_type, entity_id, action, actor, old_values, new_values, signature, created_at
		FROM audit_logs WHERE entity_type=$1 AND entity_id=$2 ORDER BY created_at DESC
	`, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAuditLogs(rows)
}

func (r *AuditRepository) ListRecent(ctx context.Context, filter audit.Filter, limit int) ([]*audit.AuditLog, error) {
	query := `SELECT id, audit_id, entity_type, entity_id, action, actor, old_values, new_values, signature, created_at FROM audit_logs`
	args := []interface{}{}
	conds := []string{}
	if filter.EntityType != nil {
		args = append(args, *filter.EntityType)
		conds = append(conds, "entity_type=$"+itoa(len(args)))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		conds = append(conds, "entity_id=$"+itoa(len(args)))
	}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		conds = append(conds, "action=$"+itoa(len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conds = append(conds, "created_at >= $"+itoa(len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAuditLogs(rows)
}

func scanAuditLog(row pgx.Row) (*audit.AuditLog, error) {
	var entry audit.AuditLog
	if err := row.Scan(&entry.ID, &entry.AuditID, &entry.EntityType, &entry.EntityID, &entry.Action, &entry.Actor, &entry.OldValues, &entry.NewValues, &entry.Signature, &entry.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func collectAuditLogs(rows pgx.Rows) ([]*audit.AuditLog, error) {
	var logs []*audit.AuditLog
	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
