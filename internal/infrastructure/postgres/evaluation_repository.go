package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pallet-insight/pallet-insight/internal/domain/evaluation"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

// EvaluationRepository implements evaluation.Repository.
type EvaluationRepository struct {
	pool *pgxpool.Pool
}

func NewEvaluationRepository(pool *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{pool: pool}
}

func (r *EvaluationRepository) CreateRun(ctx context.Context, run *evaluation.Run) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO evaluation_runs
		(run_id, lot_id, status, progress, product_count, ok_count, warning_count, blocked_count, error, started_at, finished_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, run.RunID, run.LotID, run.Status, run.Progress, run.ProductCount, run.OKCount, run.WarningCount, run.BlockedCount, run.Error, run.StartedAt, run.FinishedAt)
	return err
}

func (r *EvaluationRepository) GetRun(ctx context.Context, runID uuid.UUID) (*evaluation.Run, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, run_id, lot_id, status, progress, product_count, ok_count, warning_count, blocked_count, error, started_at, finished_at
		FROM evaluation_runs WHERE run_id=$1
	`, runID)
	return scanRun(row)
}

func (r *EvaluationRepository) ListRunsByLot(ctx context.Context, lotID uuid.UUID, limit int) ([]*evaluation.Run, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, run_id, lot_id, status, progress, product_count, ok_count, warning_count, blocked_count, error, started_at, finished_at
		FROM evaluation_runs WHERE lot_id=$1 ORDER BY started_at DESC LIMIT $2
	`, lotID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []*evaluation.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *EvaluationRepository) UpdateRunProgress(ctx context.Context, runID uuid.UUID, status evaluation.RunStatus, progress int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE evaluation_runs SET status=$1, progress=$2 WHERE run_id=$3
	`, status, progress, runID)
	return err
}

func (r *EvaluationRepository) FinishRun(ctx context.Context, run *evaluation.Run) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE evaluation_runs
		SET status=$1, progress=$2, ok_count=$3, warning_count=$4, blocked_count=$5, error=$6, finished_at=$7
		WHERE run_id=$8
	`, run.Status, run.Progress, run.OKCount, run.WarningCount, run.BlockedCount, run.Error, run.FinishedAt, run.RunID)
	return err
}

func (r *EvaluationRepository) SaveResults(ctx context.Context, results []*evaluation.Result) error {
	batch := &pgx.Batch{}
	for _, res := range results {
		batch.Queue(`
			INSERT INTO evaluation_results (run_id, lot_id, product_id, evaluation)
			VALUES ($1,$2,$3,$4)
		`, res.RunID, res.LotID, res.Eval.ProductID, res.Eval)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range results {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *EvaluationRepository) ListResultsByRun(ctx context.Context, runID uuid.UUID) ([]*evaluation.Result, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, run_id, lot_id, evaluation FROM evaluation_results WHERE run_id=$1 ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []*evaluation.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *EvaluationRepository) GetResultByProduct(ctx context.Context, runID, productID uuid.UUID) (*evaluation.Result, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, run_id, lot_id, evaluation FROM evaluation_results WHERE run_id=$1 AND product_id=$2
	`, runID, productID)
	return scanResult(row)
}

func (r *EvaluationRepository) LatestRunForLot(ctx context.Context, lotID uuid.UUID) (*evaluation.Run, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, run_id, lot_id, status, progress, product_count, ok_count, warning_count, blocked_count, error, started_at, finished_at
		FROM evaluation_runs WHERE lot_id=$1 AND status='COMPLETED' ORDER BY started_at DESC LIMIT 1
	`, lotID)
	return scanRun(row)
}

func scanRun(row pgx.Row) (*evaluation.Run, error) {
	var run evaluation.Run
	if err := row.Scan(&run.ID, &run.RunID, &run.LotID, &run.Status, &run.Progress, &run.ProductCount, &run.OKCount, &run.WarningCount, &run.BlockedCount, &run.Error, &run.StartedAt, &run.FinishedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func scanResult(row pgx.Row) (*evaluation.Result, error) {
	var res evaluation.Result
	var eval rule.ProductEvaluation
	if err := row.Scan(&res.ID, &res.RunID, &res.LotID, &eval); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	res.Eval = &eval
	return &res, nil
}
