package insights

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pallet-insight/pallet-insight/internal/domain/evaluation"
	evalmocks "github.com/pallet-insight/pallet-insight/internal/domain/evaluation/mocks"
	"github.com/pallet-insight/pallet-insight/internal/domain/product"
	productmocks "github.com/pallet-insight/pallet-insight/internal/domain/product/mocks"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestForLot(t *testing.T) {
	lot := product.NewLot("Paleta mieszana", nil)

	blocked := product.NewProduct(lot.LotID, "iPhone 13")
	blocked.Price = floatPtr(2000)
	blocked.Quantity = intPtr(2)
	warned := product.NewProduct(lot.LotID, "Zabawka")
	warned.Price = floatPtr(100)
	warned.Quantity = intPtr(5)
	ok := product.NewProduct(lot.LotID, "Kabel HDMI")
	ok.Price = floatPtr(30)
	ok.Quantity = intPtr(10)

	run := evaluation.NewRun(lot.LotID, 3)
	run.Status = evaluation.RunStatusCompleted

	now := time.Now().UTC()
	results := []*evaluation.Result{
		{RunID: run.RunID, LotID: lot.LotID, Eval: &rule.ProductEvaluation{
			ProductID: blocked.ProductID, ProductName: blocked.Name,
			Score: 0, Status: rule.StatusBlocked, EvaluatedAt: now,
		}},
		{RunID: run.RunID, LotID: lot.LotID, Eval: &rule.ProductEvaluation{
			ProductID: warned.ProductID, ProductName: warned.Name,
			Score: 40, Status: rule.StatusWarning, WarningLevel: rule.LevelMedium, EvaluatedAt: now,
		}},
		{RunID: run.RunID, LotID: lot.LotID, Eval: &rule.ProductEvaluation{
			ProductID: ok.ProductID, ProductName: ok.Name,
			Score: 80, Status: rule.StatusOK, EvaluatedAt: now,
		}},
	}

	productRepo := new(productmocks.MockRepository)
	evalRepo := new(evalmocks.MockRepository)
	productRepo.On("GetLot", mock.Anything, lot.LotID).Return(lot, nil)
	productRepo.On("ListByLot", mock.Anything, lot.LotID).Return([]*product.Product{blocked, warned, ok}, nil)
	evalRepo.On("LatestRunForLot", mock.Anything, lot.LotID).Return(run, nil)
	evalRepo.On("ListResultsByRun", mock.Anything, run.RunID).Return(results, nil)

	svc := NewService(productRepo, evalRepo, zerolog.Nop())

	ins, err := svc.ForLot(context.Background(), lot.LotID)
	require.NoError(t, err)

	assert.Equal(t, 3, ins.ProductCount)
	assert.Equal(t, 1, ins.OKCount)
	assert.Equal(t, 1, ins.WarningCount)
	assert.Equal(t, 1, ins.BlockedCount)
	assert.InDelta(t, 40.0, ins.AverageScore, 0.001)
	assert.InDelta(t, 1.0/3.0, ins.BlockedRatio, 0.001)
	assert.Equal(t, 1, ins.LevelCounts.Medium)
	assert.Equal(t, 0, ins.LevelCounts.High)
	// 2000*2 + 100*5 + 30*10 = 4800; blocked + warned flagged = 4500
	assert.InDelta(t, 4800.0, ins.TotalValue, 0.001)
	assert.InDelta(t, 4500.0, ins.FlaggedValue, 0.001)
}

func TestForLot_NeverEvaluated(t *testing.T) {
	lot := product.NewLot("Nowa paleta", nil)

	productRepo := new(productmocks.MockRepository)
	evalRepo := new(evalmocks.MockRepository)
	productRepo.On("GetLot", mock.Anything, lot.LotID).Return(lot, nil)
	evalRepo.On("LatestRunForLot", mock.Anything, lot.LotID).Return(nil, nil)

	svc := NewService(productRepo, evalRepo, zerolog.Nop())

	_, err := svc.ForLot(context.Background(), lot.LotID)
	assert.ErrorContains(t, err, "no completed evaluation run")
}

func TestForLot_NotFound(t *testing.T) {
	productRepo := new(productmocks.MockRepository)
	productRepo.On("GetLot", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewService(productRepo, new(evalmocks.MockRepository), zerolog.Nop())

	_, err := svc.ForLot(context.Background(), product.NewLot("x", nil).LotID)
	assert.ErrorContains(t, err, "lot not found")
}
