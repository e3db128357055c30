package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pallet-insight/pallet-insight/internal/domain/view"
)

// ViewRepository implements view.Repository.
type ViewRepository struct {
	pool *pgxpool.Pool
}

func NewViewRepository(pool *pgxpool.Pool) *ViewRepository {
	return &ViewRepository{pool: pool}
}

func (r *ViewRepository) Create(ctx context.Context, v *view.View) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO views (view_id, name, expression, description, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, v.ViewID, v.Name, v.Expression, v.Description, v.CreatedAt)
	return err
}

func (r *ViewRepository) GetByViewID(ctx context.Context, viewID uuid.UUID) (*view.View, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, view_id, name, expression, description, created_at FROM views WHERE view_id=$1
	`, viewID)
	return scanView(row)
}

func (r *ViewRepository) List(ctx context.Context) ([]*view.View, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, view_id, name, expression, description, created_at FROM views ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var views []*view.View
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *ViewRepository) Delete(ctx context.Context, viewID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM views WHERE view_id=$1`, viewID)
	return err
}

func scanView(row pgx.Row) (*view.View, error) {
	var v view.View
	if err := row.Scan(&v.ID, &v.ViewID, &v.Name, &v.Expression, &v.Description, &v.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
