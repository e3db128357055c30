package evaluation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pallet-insight/pallet-insight/internal/domain/alert"
	"github.com/pallet-insight/pallet-insight/internal/domain/evaluation"
	"github.com/pallet-insight/pallet-insight/internal/domain/product"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

// Broadcaster pushes run events to connected dashboard streams.
type Broadcaster interface {
	BroadcastToAll(message *alert.SSEMessage)
}

// Service orchestrates batch evaluation runs over lots.
type Service struct {
	productRepo product.Repository
	ruleRepo    rule.Repository
	evalRepo    evaluation.Repository
	alertRepo   alert.Repository
	hub         Broadcaster
	cfg         rule.EvaluatorConfig
	logger      zerolog.Logger
}

// NewService creates an evaluation service.
func NewService(
	productRepo product.Repository,
	ruleRepo rule.Repository,
	evalRepo evaluation.Repository,
	alertRepo alert.Repository,
	hub Broadcaster,
	cfg rule.EvaluatorConfig,
	logger zerolog.Logger,
) *Service {
	return &Service{
		productRepo: productRepo,
		ruleRepo:    ruleRepo,
		evalRepo:    evalRepo,
		alertRepo:   alertRepo,
		hub:         hub,
		cfg:         cfg,
		logger:      logger.With().Str("service", "evaluation").Logger(),
	}
}

// StartRun snapshots the active rule set, creates a pending run and executes
// the batch in the background. Rule changes made while the batch is running
// do not affect it.
func (s *Service) StartRun(ctx context.Context, lotID uuid.UUID) (*evaluation.Run, error) {
	lot, err := s.productRepo.GetLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, fmt.Errorf("lot not found: %s", lotID)
	}

	products, err := s.productRepo.ListByLot(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("lot %s has no products", lotID)
	}

	weighted, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	warning, err := s.ruleRepo.ListActiveWarningRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load warning rules: %w", err)
	}
	evaluator := rule.NewEvaluator(s.cfg, weighted, warning)

	run := evaluation.NewRun(lotID, len(products))
	if err := s.evalRepo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	s.logger.Info().
		Str("runId", run.RunID.String()).
		Str("lotId", lotID.String()).
		Int("productCount", len(products)).
		Int("weightedRules", len(weighted)).
		Int("warningRules", len(warning)).
		Msg("evaluation run started")

	go s.execute(run, products, evaluator)
	return run, nil
}

// execute runs the batch to completion. It uses a background context: a run
// outlives the HTTP request that started it.
func (s *Service) execute(run *evaluation.Run, products []*product.Product, evaluator *rule.Evaluator) {
	ctx := context.Background()

	run.Status = evaluation.RunStatusRunning
	if err := s.evalRepo.UpdateRunProgress(ctx, run.RunID, run.Status, 0); err != nil {
		s.fail(ctx, run, fmt.Errorf("failed to mark run running: %w", err))
		return
	}
	s.broadcastProgress(run, 0, "")

	evals := evaluator.EvaluateAll(products, func(percent int, productLabel string) {
		if err := s.evalRepo.UpdateRunProgress(ctx, run.RunID, evaluation.RunStatusRunning, percent); err != nil {
			s.logger.Warn().Err(err).Str("runId", run.RunID.String()).Msg("failed to persist run progress")
		}
		s.broadcastProgress(run, percent, productLabel)
	})

	results := make([]*evaluation.Result, 0, len(evals))
	for _, eval := range evals {
		results = append(results, &evaluation.Result{
			RunID: run.RunID,
			LotID: run.LotID,
			Eval:  eval,
		})
	}
	if err := s.evalRepo.SaveResults(ctx, results); err != nil {
		s.fail(ctx, run, fmt.Errorf("failed to save results: %w", err))
		return
	}

	run.Complete(evals)
	if err := s.evalRepo.FinishRun(ctx, run); err != nil {
		s.logger.Error().Err(err).Str("runId", run.RunID.String()).Msg("failed to finish run")
		return
	}

	if err := s.productRepo.UpdateLotStatus(ctx, run.LotID, product.LotStatusEvaluated); err != nil {
		s.logger.Warn().Err(err).Str("lotId", run.LotID.String()).Msg("failed to mark lot evaluated")
	}

	s.raiseAlerts(ctx, run, evals)
	s.broadcast("run_completed", run)

	s.logger.Info().
		Str("runId", run.RunID.String()).
		Int("ok", run.OKCount).
		Int("warning", run.WarningCount).
		Int("blocked", run.BlockedCount).
		Msg("evaluation run completed")
}

func (s *Service) fail(ctx context.Context, run *evaluation.Run, err error) {
	s.logger.Error().Err(err).Str("runId", run.RunID.String()).Msg("evaluation run failed")
	run.Fail(err.Error())
	if ferr := s.evalRepo.FinishRun(ctx, run); ferr != nil {
		s.logger.Error().Err(ferr).Str("runId", run.RunID.String()).Msg("failed to persist run failure")
	}
	s.broadcast("run_failed", run)
}

// raiseAlerts opens an alert for every blocked product and every product that
// reached the HIGH warning level.
func (s *Service) raiseAlerts(ctx context.Context, run *evaluation.Run, evals []*rule.ProductEvaluation) {
	for _, eval := range evals {
		var a *alert.Alert
		switch {
		case eval.Status == rule.StatusBlocked:
			body := fmt.Sprintf("Produkt '%s' został zablokowany przez reguły zakupowe", eval.ProductName)
			if len(eval.Blocks) > 0 {
				body = eval.Blocks[0]
			}
			a = alert.NewAlert(run.RunID, eval.ProductID, alert.SeverityCritical,
				fmt.Sprintf("Zablokowany produkt: %s", eval.ProductName), body)
		case eval.WarningLevel == rule.LevelHigh:
			body := fmt.Sprintf("Produkt '%s' otrzymał ostrzeżenie poziomu HIGH", eval.ProductName)
			if len(eval.Warnings) > 0 {
				body = eval.Warnings[0]
			}
			a = alert.NewAlert(run.RunID, eval.ProductID, alert.SeverityHigh,
				fmt.Sprintf("Ostrzeżenie HIGH: %s", eval.ProductName), body)
		default:
			continue
		}

		if err := s.alertRepo.Create(ctx, a); err != nil {
			s.logger.Warn().Err(err).
				Str("runId", run.RunID.String()).
				Str("productId", eval.ProductID.String()).
				Msg("failed to create alert")
			continue
		}
		s.broadcast("alert", a)
	}
}

func (s *Service) broadcastProgress(run *evaluation.Run, percent int, productLabel string) {
	s.broadcast("run_progress", map[string]interface{}{
		"runId":    run.RunID,
		"lotId":    run.LotID,
		"progress": percent,
		"product":  productLabel,
	})
}

func (s *Service) broadcast(event string, payload interface{}) {
	if s.hub == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn().Err(err).Str("event", event).Msg("failed to marshal SSE payload")
		return
	}
	s.hub.BroadcastToAll(alert.NewSSEMessage(event, data))
}

// GetRun retrieves a run by ID.
func (s *Service) GetRun(ctx context.Context, runID uuid.UUID) (*evaluation.Run, error) {
	return s.evalRepo.GetRun(ctx, runID)
}

// ListRunsByLot lists the most recent runs of a lot.
func (s *Service) ListRunsByLot(ctx context.Context, lotID uuid.UUID, limit int) ([]*evaluation.Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.evalRepo.ListRunsByLot(ctx, lotID, limit)
}

// ProductResult pairs a stored evaluation with derived purchase guidance.
type ProductResult struct {
	Eval            *rule.ProductEvaluation `json:"evaluation"`
	Recommendations []rule.Recommendation   `json:"recommendations"`
}

// ListResults returns the per-product results of a run with recommendations
// derived from each evaluation.
func (s *Service) ListResults(ctx context.Context, runID uuid.UUID) ([]*ProductResult, error) {
	run, err := s.evalRepo.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("run not found: %s", runID)
	}

	results, err := s.evalRepo.ListResultsByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	out := make([]*ProductResult, 0, len(results))
	for _, res := range results {
		out = append(out, &ProductResult{
			Eval:            res.Eval,
			Recommendations: rule.Recommendations(res.Eval, s.cfg),
		})
	}
	return out, nil
}

// EvaluateProduct runs the current active rule set against a single product
// without persisting anything. Used for ad-hoc what-if checks.
func (s *Service) EvaluateProduct(ctx context.Context, productID uuid.UUID) (*ProductResult, error) {
	p, err := s.productRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product not found: %s", productID)
	}

	weighted, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	warning, err := s.ruleRepo.ListActiveWarningRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load warning rules: %w", err)
	}

	eval := rule.NewEvaluator(s.cfg, weighted, warning).Evaluate(p)
	return &ProductResult{
		Eval:            eval,
		Recommendations: rule.Recommendations(eval, s.cfg),
	}, nil
}

// LatestRunForLot returns the most recent completed run of a lot, or nil.
func (s *Service) LatestRunForLot(ctx context.Context, lotID uuid.UUID) (*evaluation.Run, error) {
	return s.evalRepo.LatestRunForLot(ctx, lotID)
}
