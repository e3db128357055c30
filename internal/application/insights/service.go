package insights

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pallet-insight/pallet-insight/internal/domain/evaluation"
	"github.com/pallet-insight/pallet-insight/internal/domain/product"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

// Service derives per-lot aggregates from the latest completed run.
type Service struct {
	productRepo product.Repository
	evalRepo    evaluation.Repository
	logger      zerolog.Logger
}

// NewService creates an insights service.
func NewService(productRepo product.Repository, evalRepo evaluation.Repository, logger zerolog.Logger) *Service {
	return &Service{
		productRepo: productRepo,
		evalRepo:    evalRepo,
		logger:      logger.With().Str("service", "insights").Logger(),
	}
}

// LotInsights summarizes the latest completed evaluation of a lot.
type LotInsights struct {
	LotID        uuid.UUID   `json:"lotId"`
	RunID        uuid.UUID   `json:"runId"`
	ProductCount int         `json:"productCount"`
	OKCount      int         `json:"okCount"`
	WarningCount int         `json:"warningCount"`
	BlockedCount int         `json:"blockedCount"`
	AverageScore float64     `json:"averageScore"`
	BlockedRatio float64     `json:"blockedRatio"`
	LevelCounts  LevelCounts `json:"levelCounts"`
	TotalValue   float64     `json:"totalValue"`
	FlaggedValue float64     `json:"flaggedValue"`
}

// LevelCounts is the warning-level distribution over one run.
type LevelCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// ForLot computes insights for a lot from its latest completed run. Lots that
// were never evaluated have no insights.
func (s *Service) ForLot(ctx context.Context, lotID uuid.UUID) (*LotInsights, error) {
	lot, err := s.productRepo.GetLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, fmt.Errorf("lot not found: %s", lotID)
	}

	run, err := s.evalRepo.LatestRunForLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("lot %s has no completed evaluation run", lotID)
	}

	results, err := s.evalRepo.ListResultsByRun(ctx, run.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	products, err := s.productRepo.ListByLot(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	valueByProduct := make(map[uuid.UUID]float64, len(products))
	for _, p := range products {
		if v := p.TotalValue(); v != nil {
			valueByProduct[p.ProductID] = *v
		}
	}

	ins := &LotInsights{
		LotID:        lotID,
		RunID:        run.RunID,
		ProductCount: len(results),
	}
	var scoreSum float64
	for _, res := range results {
		eval := res.Eval
		scoreSum += eval.Score
		switch eval.Status {
		case rule.StatusBlocked:
			ins.BlockedCount++
		case rule.StatusWarning:
			ins.WarningCount++
		default:
			ins.OKCount++
		}
		switch eval.WarningLevel {
		case rule.LevelLow:
			ins.LevelCounts.Low++
		case rule.LevelMedium:
			ins.LevelCounts.Medium++
		case rule.LevelHigh:
			ins.LevelCounts.High++
		}

		value := valueByProduct[eval.ProductID]
		ins.TotalValue += value
		if eval.Status != rule.StatusOK {
			ins.FlaggedValue += value
		}
	}
	if len(results) > 0 {
		ins.AverageScore = scoreSum / float64(len(results))
		ins.BlockedRatio = float64(ins.BlockedCount) / float64(len(results))
	}
	return ins, nil
}
