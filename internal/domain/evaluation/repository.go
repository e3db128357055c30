package evaluation

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for run and result persistence
type Repository interface {
	// Run operations
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, runID uuid.UUID) (*Run, error)
	ListRunsByLot(ctx context.Context, lotID uuid.UUID, limit int) ([]*Run, error)
	UpdateRunProgress(ctx context.Context, runID uuid.UUID, status RunStatus, progress int) error
	FinishRun(ctx context.Context, run *Run) error

	// Result operations
	SaveResults(ctx context.Context, results []*Result) error
	ListResultsByRun(ctx context.Context, runID uuid.UUID) ([]*Result, error)
	GetResultByProduct(ctx context.Context, runID, productID uuid.UUID) (*Result, error)
	LatestRunForLot(ctx context.Context, lotID uuid.UUID) (*Run, error)
}
