package views

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appAudit "github.com/pallet-insight/pallet-insight/internal/application/audit"
	auditmocks "github.com/pallet-insight/pallet-insight/internal/domain/audit/mocks"
	"github.com/pallet-insight/pallet-insight/internal/domain/evaluation"
	evalmocks "github.com/pallet-insight/pallet-insight/internal/domain/evaluation/mocks"
	"github.com/pallet-insight/pallet-insight/internal/domain/product"
	productmocks "github.com/pallet-insight/pallet-insight/internal/domain/product/mocks"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
	"github.com/pallet-insight/pallet-insight/internal/domain/view"
	"github.com/pallet-insight/pallet-insight/internal/domain/view/mocks"
)

func floatPtr(f float64) *float64 { return &f }

func newTestService(viewRepo view.Repository, productRepo product.Repository, evalRepo evaluation.Repository) *Service {
	auditRepo := new(auditmocks.MockRepository)
	auditRepo.On("Insert", mock.Anything, mock.Anything).Return(nil).Maybe()
	auditSvc := appAudit.NewService(auditRepo, zerolog.Nop(), nil)
	return NewService(viewRepo, productRepo, evalRepo, auditSvc, zerolog.Nop())
}

func TestCreateView_RejectsBadExpression(t *testing.T) {
	viewRepo := new(mocks.MockRepository)
	svc := newTestService(viewRepo, new(productmocks.MockRepository), new(evalmocks.MockRepository))

	_, err := svc.CreateView(context.Background(), "Zepsuty", "price >", nil, "admin")
	require.Error(t, err)
	assert.ErrorIs(t, err, view.ErrInvalidExpression)
	viewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApply_FiltersProducts(t *testing.T) {
	lot := product.NewLot("Paleta", nil)
	cheap := product.NewProduct(lot.LotID, "Kabel")
	cheap.Price = floatPtr(20)
	expensive := product.NewProduct(lot.LotID, "Laptop")
	expensive.Price = floatPtr(3000)

	v := view.NewView("Drogie produkty", "price > 1000")

	run := evaluation.NewRun(lot.LotID, 2)
	results := []*evaluation.Result{
		{RunID: run.RunID, LotID: lot.LotID, Eval: &rule.ProductEvaluation{
			ProductID: expensive.ProductID, ProductName: expensive.Name,
			Score: 50, Status: rule.StatusOK, EvaluatedAt: time.Now().UTC(),
		}},
	}

	viewRepo := new(mocks.MockRepository)
	productRepo := new(productmocks.MockRepository)
	evalRepo := new(evalmocks.MockRepository)
	viewRepo.On("GetByViewID", mock.Anything, v.ViewID).Return(v, nil)
	productRepo.On("ListByLot", mock.Anything, lot.LotID).Return([]*product.Product{cheap, expensive}, nil)
	evalRepo.On("LatestRunForLot", mock.Anything, lot.LotID).Return(run, nil)
	evalRepo.On("ListResultsByRun", mock.Anything, run.RunID).Return(results, nil)

	svc := newTestService(viewRepo, productRepo, evalRepo)

	rows, err := svc.Apply(context.Background(), v.ViewID, lot.LotID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, expensive.ProductID, rows[0].Product.ProductID)
	require.NotNil(t, rows[0].Eval)
	assert.Equal(t, rule.StatusOK, rows[0].Eval.Status)
}

func TestApply_UnevaluatedLotUsesZeroScores(t *testing.T) {
	lot := product.NewLot("Nowa paleta", nil)
	p := product.NewProduct(lot.LotID, "Mysz")
	p.Price = floatPtr(80)

	v := view.NewView("Wszystko", "score < 10")

	viewRepo := new(mocks.MockRepository)
	productRepo := new(productmocks.MockRepository)
	evalRepo := new(evalmocks.MockRepository)
	viewRepo.On("GetByViewID", mock.Anything, v.ViewID).Return(v, nil)
	productRepo.On("ListByLot", mock.Anything, lot.LotID).Return([]*product.Product{p}, nil)
	evalRepo.On("LatestRunForLot", mock.Anything, lot.LotID).Return(nil, nil)

	svc := newTestService(viewRepo, productRepo, evalRepo)

	rows, err := svc.Apply(context.Background(), v.ViewID, lot.LotID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Eval)
}

func TestApply_ViewNotFound(t *testing.T) {
	viewRepo := new(mocks.MockRepository)
	viewRepo.On("GetByViewID", mock.Anything, mock.Anything).Return(nil, nil)

	svc := newTestService(viewRepo, new(productmocks.MockRepository), new(evalmocks.MockRepository))

	_, err := svc.Apply(context.Background(), uuid.New(), uuid.New())
	assert.ErrorContains(t, err, "view not found")
}
