package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pallet-insight/pallet-insight/internal/domain/product"
)

// ProductRepository implements product.Repository.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) CreateLot(ctx context.Context, lot *product.Lot) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lots (lot_id, name, source_file, status, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, lot.LotID, lot.Name, lot.SourceFile, lot.Status, lot.CreatedAt)
	return err
}

func (r *ProductRepository) GetLot(ctx context.Context, lotID uuid.UUID) (*product.Lot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT l.id, l.lot_id, l.name, l.source_file, l.status, l.created_at,
		       (SELECT COUNT(*) FROM products p WHERE p.lot_id = l.lot_id)
		FROM lots l WHERE l.lot_id=$1
	`, lotID)
	return scanLot(row)
}

func (r *ProductRepository) ListLots(ctx context.Context, limit int) ([]*product.Lot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.lot_id, l.name, l.source_file, l.status, l.created_at,
		       (SELECT COUNT(*) FROM products p WHERE p.lot_id = l.lot_id)
		FROM lots l ORDER BY l.created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lots []*product.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

func (r *ProductRepository) UpdateLotStatus(ctx context.Context, lotID uuid.UUID, status product.LotStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE lots SET status=$1 WHERE lot_id=$2`, status, lotID)
	return err
}

func (r *ProductRepository) DeleteLot(ctx context.Context, lotID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lots WHERE lot_id=$1`, lotID)
	return err
}

func (r *ProductRepository) CreateProducts(ctx context.Context, products []*product.Product) error {
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(`
			INSERT INTO products (product_id, lot_id, name, category, description, brand, price, quantity, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, p.ProductID, p.LotID, p.Name, p.Category, p.Description, p.Brand, p.Price, p.Quantity, p.CreatedAt)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range products {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, product_id, lot_id, name, category, description, brand, price, quantity, created_at
		FROM products WHERE product_id=$1
	`, productID)
	return scanProduct(row)
}

func (r *ProductRepository) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*product.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, lot_id, name, category, description, brand, price, quantity, created_at
		FROM products WHERE lot_id=$1 ORDER BY id
	`, lotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepository) List(ctx context.Context, filter product.Filter, limit int) ([]*product.Product, error) {
	query := `SELECT id, product_id, lot_id, name, category, description, brand, price, quantity, created_at FROM products`
	args := []interface{}{}
	conds := []string{}
	if filter.LotID != nil {
		args = append(args, *filter.LotID)
		conds = append(conds, "lot_id=$"+itoa(len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conds = append(conds, "LOWER(category)=LOWER($"+itoa(len(args))+")")
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, "price >= $"+itoa(len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, "price <= $"+itoa(len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	args = append(args, limit)
	query += " ORDER BY id LIMIT $" + itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepository) CountByLot(ctx context.Context, lotID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE lot_id=$1`, lotID).Scan(&count)
	return count, err
}

func scanLot(row pgx.Row) (*product.Lot, error) {
	var lot product.Lot
	if err := row.Scan(&lot.ID, &lot.LotID, &lot.Name, &lot.SourceFile, &lot.Status, &lot.CreatedAt, &lot.ProductCount); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &lot, nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	if err := row.Scan(&p.ID, &p.ProductID, &p.LotID, &p.Name, &p.Category, &p.Description, &p.Brand, &p.Price, &p.Quantity, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*product.Product, error) {
	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
