package views

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appAudit "github.com/pallet-insight/pallet-insight/internal/application/audit"
	"github.com/pallet-insight/pallet-insight/internal/domain/audit"
	"github.com/pallet-insight/pallet-insight/internal/domain/evaluation"
	"github.com/pallet-insight/pallet-insight/internal/domain/product"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
	"github.com/pallet-insight/pallet-insight/internal/domain/view"
)

// Service handles saved dashboard filter views.
type Service struct {
	viewRepo    view.Repository
	productRepo product.Repository
	evalRepo    evaluation.Repository
	auditSvc    *appAudit.Service
	logger      zerolog.Logger
}

// NewService creates a views service.
func NewService(
	viewRepo view.Repository,
	productRepo product.Repository,
	evalRepo evaluation.Repository,
	auditSvc *appAudit.Service,
	logger zerolog.Logger,
) *Service {
	return &Service{
		viewRepo:    viewRepo,
		productRepo: productRepo,
		evalRepo:    evalRepo,
		auditSvc:    auditSvc,
		logger:      logger.With().Str("service", "views").Logger(),
	}
}

// CreateView validates the expression and stores a view.
func (s *Service) CreateView(ctx context.Context, name, expression string, description *string, actor string) (*view.View, error) {
	v := view.NewView(name, expression)
	v.Description = description

	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := s.viewRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create view: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeView, v.ViewID.String(), audit.ActionCreate, actor, nil, v)
	s.logger.Info().Str("viewId", v.ViewID.String()).Str("name", v.Name).Msg("view created")
	return v, nil
}

// GetView retrieves a view by ID.
func (s *Service) GetView(ctx context.Context, viewID uuid.UUID) (*view.View, error) {
	return s.viewRepo.GetByViewID(ctx, viewID)
}

// ListViews lists all saved views.
func (s *Service) ListViews(ctx context.Context) ([]*view.View, error) {
	return s.viewRepo.List(ctx)
}

// DeleteView removes a view.
func (s *Service) DeleteView(ctx context.Context, viewID uuid.UUID, actor string) error {
	v, err := s.viewRepo.GetByViewID(ctx, viewID)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("view not found: %s", viewID)
	}

	if err := s.viewRepo.Delete(ctx, viewID); err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeView, viewID.String(), audit.ActionDelete, actor, v, nil)
	return nil
}

// ViewRow is one product that matched a view expression, with its latest
// evaluation when the lot has been evaluated.
type ViewRow struct {
	Product *product.Product        `json:"product"`
	Eval    *rule.ProductEvaluation `json:"evaluation,omitempty"`
}

// Apply filters a lot's products through a view expression. Products whose
// parameters make the expression error are skipped rather than failing the
// whole view.
func (s *Service) Apply(ctx context.Context, viewID, lotID uuid.UUID) ([]*ViewRow, error) {
	v, err := s.viewRepo.GetByViewID(ctx, viewID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("view not found: %s", viewID)
	}

	products, err := s.productRepo.ListByLot(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	evalByProduct := map[uuid.UUID]*rule.ProductEvaluation{}
	run, err := s.evalRepo.LatestRunForLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if run != nil {
		results, err := s.evalRepo.ListResultsByRun(ctx, run.RunID)
		if err != nil {
			return nil, fmt.Errorf("failed to load results: %w", err)
		}
		for _, res := range results {
			evalByProduct[res.Eval.ProductID] = res.Eval
		}
	}

	var rows []*ViewRow
	for _, p := range products {
		eval := evalByProduct[p.ProductID]
		matched, err := view.EvaluateExpression(v.Expression, view.BuildParams(p, eval))
		if err != nil {
			s.logger.Warn().Err(err).
				Str("viewId", viewID.String()).
				Str("productId", p.ProductID.String()).
				Msg("view expression failed for product")
			continue
		}
		if matched {
			rows = append(rows, &ViewRow{Product: p, Eval: eval})
		}
	}
	return rows, nil
}
