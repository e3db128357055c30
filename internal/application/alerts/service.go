package alerts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pallet-insight/pallet-insight/internal/domain/alert"
)

// Service handles alert triage.
type Service struct {
	repo   alert.Repository
	logger zerolog.Logger
}

// NewService creates an alerts service.
func NewService(repo alert.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "alerts").Logger(),
	}
}

// GetAlert retrieves an alert by ID.
func (s *Service) GetAlert(ctx context.Context, alertID uuid.UUID) (*alert.Alert, error) {
	return s.repo.GetByAlertID(ctx, alertID)
}

// ListByRun lists the alerts raised by one run.
func (s *Service) ListByRun(ctx context.Context, runID uuid.UUID) ([]*alert.Alert, error) {
	return s.repo.ListByRun(ctx, runID)
}

// ListOpen lists open alerts, newest first.
func (s *Service) ListOpen(ctx context.Context, limit int) ([]*alert.Alert, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListOpen(ctx, limit)
}

// Acknowledge marks an open alert as seen.
func (s *Service) Acknowledge(ctx context.Context, alertID uuid.UUID) (*alert.Alert, error) {
	a, err := s.repo.GetByAlertID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("alert not found: %s", alertID)
	}
	if err := a.Acknowledge(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, alertID, a.Status); err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}
	s.logger.Info().Str("alertId", alertID.String()).Msg("alert acknowledged")
	return a, nil
}

// Dismiss closes an alert.
func (s *Service) Dismiss(ctx context.Context, alertID uuid.UUID) (*alert.Alert, error) {
	a, err := s.repo.GetByAlertID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("alert not found: %s", alertID)
	}
	if err := a.Dismiss(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, alertID, a.Status); err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}
	s.logger.Info().Str("alertId", alertID.String()).Msg("alert dismissed")
	return a, nil
}
