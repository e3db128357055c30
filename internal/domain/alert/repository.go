package alert

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for alert persistence
type Repository interface {
	Create(ctx context.Context, a *Alert) error
	GetByAlertID(ctx context.Context, alertID uuid.UUID) (*Alert, error)
	ListByRun(ctx context.Context, runID uuid.UUID) ([]*Alert, error)
	ListOpen(ctx context.Context, limit int) ([]*Alert, error)
	UpdateStatus(ctx context.Context, alertID uuid.UUID, status Status) error
}
