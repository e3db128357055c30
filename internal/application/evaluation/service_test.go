package evaluation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pallet-insight/pallet-insight/internal/domain/alert"
	alertmocks "github.com/pallet-insight/pallet-insight/internal/domain/alert/mocks"
	"github.com/pallet-insight/pallet-insight/internal/domain/evaluation"
	evalmocks "github.com/pallet-insight/pallet-insight/internal/domain/evaluation/mocks"
	"github.com/pallet-insight/pallet-insight/internal/domain/product"
	productmocks "github.com/pallet-insight/pallet-insight/internal/domain/product/mocks"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
	rulemocks "github.com/pallet-insight/pallet-insight/internal/domain/rule/mocks"
)

// stubHub records broadcast events and signals run termination so tests can
// wait for the background batch.
type stubHub struct {
	mu     sync.Mutex
	events []*alert.SSEMessage
	done   chan string
}

func newStubHub() *stubHub {
	return &stubHub{done: make(chan string, 1)}
}

func (h *stubHub) BroadcastToAll(message *alert.SSEMessage) {
	h.mu.Lock()
	h.events = append(h.events, message)
	h.mu.Unlock()
	if message.Event == "run_completed" || message.Event == "run_failed" {
		h.done <- message.Event
	}
}

func (h *stubHub) eventNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.events))
	for _, e := range h.events {
		names = append(names, e.Event)
	}
	return names
}

func waitForRun(t *testing.T, h *stubHub) string {
	t.Helper()
	select {
	case event := <-h.done:
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("run did not terminate")
		return ""
	}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func testLotWithProducts() (*product.Lot, []*product.Product) {
	lot := product.NewLot("Paleta elektronika", nil)
	cheap := product.NewProduct(lot.LotID, "Ładowarka USB")
	cheap.Price = floatPtr(49)
	expensive := product.NewProduct(lot.LotID, "iPhone 13")
	expensive.Category = strPtr("Elektronika")
	expensive.Price = floatPtr(2000)
	return lot, []*product.Product{cheap, expensive}
}

func blockRule() *rule.WeightedRule {
	r := rule.NewWeightedRule("Limit ceny 1000", rule.RuleTypeBudget, rule.ActionBlock, 8)
	r.Budget = &rule.BudgetCondition{MaxPrice: 1000}
	return r
}

func TestStartRun_CompletesBatch(t *testing.T) {
	lot, products := testLotWithProducts()

	productRepo := new(productmocks.MockRepository)
	ruleRepo := new(rulemocks.MockRepository)
	evalRepo := new(evalmocks.MockRepository)
	alertRepo := new(alertmocks.MockRepository)
	hub := newStubHub()

	productRepo.On("GetLot", mock.Anything, lot.LotID).Return(lot, nil)
	productRepo.On("ListByLot", mock.Anything, lot.LotID).Return(products, nil)
	productRepo.On("UpdateLotStatus", mock.Anything, lot.LotID, product.LotStatusEvaluated).Return(nil)

	ruleRepo.On("ListActive", mock.Anything).Return([]*rule.WeightedRule{blockRule()}, nil)
	ruleRepo.On("ListActiveWarningRules", mock.Anything).Return([]*rule.WarningRule{}, nil)

	var finished *evaluation.Run
	evalRepo.On("CreateRun", mock.Anything, mock.AnythingOfType("*evaluation.Run")).Return(nil)
	evalRepo.On("UpdateRunProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	evalRepo.On("SaveResults", mock.Anything, mock.AnythingOfType("[]*evaluation.Result")).Return(nil)
	evalRepo.On("FinishRun", mock.Anything, mock.AnythingOfType("*evaluation.Run")).
		Run(func(args mock.Arguments) { finished = args.Get(1).(*evaluation.Run) }).
		Return(nil)

	alertRepo.On("Create", mock.Anything, mock.AnythingOfType("*alert.Alert")).Return(nil)

	svc := NewService(productRepo, ruleRepo, evalRepo, alertRepo, hub, rule.DefaultConfig(), zerolog.Nop())

	run, err := svc.StartRun(context.Background(), lot.LotID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, evaluation.RunStatusPending, run.Status)
	assert.Equal(t, 2, run.ProductCount)

	assert.Equal(t, "run_completed", waitForRun(t, hub))

	require.NotNil(t, finished)
	assert.Equal(t, evaluation.RunStatusCompleted, finished.Status)
	assert.Equal(t, 100, finished.Progress)
	assert.Equal(t, 1, finished.OKCount)
	assert.Equal(t, 1, finished.BlockedCount)
	assert.Equal(t, 0, finished.WarningCount)

	// one alert for the blocked iPhone
	alertRepo.AssertNumberOfCalls(t, "Create", 1)
	productRepo.AssertCalled(t, "UpdateLotStatus", mock.Anything, lot.LotID, product.LotStatusEvaluated)
	assert.Contains(t, hub.eventNames(), "run_progress")
	assert.Contains(t, hub.eventNames(), "alert")
}

func TestStartRun_LotNotFound(t *testing.T) {
	productRepo := new(productmocks.MockRepository)
	productRepo.On("GetLot", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewService(productRepo, new(rulemocks.MockRepository), new(evalmocks.MockRepository), new(alertmocks.MockRepository), newStubHub(), rule.DefaultConfig(), zerolog.Nop())

	_, err := svc.StartRun(context.Background(), product.NewLot("x", nil).LotID)
	assert.ErrorContains(t, err, "lot not found")
}

func TestStartRun_EmptyLot(t *testing.T) {
	lot := product.NewLot("Pusta paleta", nil)
	productRepo := new(productmocks.MockRepository)
	productRepo.On("GetLot", mock.Anything, lot.LotID).Return(lot, nil)
	productRepo.On("ListByLot", mock.Anything, lot.LotID).Return([]*product.Product{}, nil)

	svc := NewService(productRepo, new(rulemocks.MockRepository), new(evalmocks.MockRepository), new(alertmocks.MockRepository), newStubHub(), rule.DefaultConfig(), zerolog.Nop())

	_, err := svc.StartRun(context.Background(), lot.LotID)
	assert.ErrorContains(t, err, "has no products")
}

func TestStartRun_SaveResultsFailureFailsRun(t *testing.T) {
	lot, products := testLotWithProducts()

	productRepo := new(productmocks.MockRepository)
	ruleRepo := new(rulemocks.MockRepository)
	evalRepo := new(evalmocks.MockRepository)
	hub := newStubHub()

	productRepo.On("GetLot", mock.Anything, lot.LotID).Return(lot, nil)
	productRepo.On("ListByLot", mock.Anything, lot.LotID).Return(products, nil)
	ruleRepo.On("ListActive", mock.Anything).Return([]*rule.WeightedRule{}, nil)
	ruleRepo.On("ListActiveWarningRules", mock.Anything).Return([]*rule.WarningRule{}, nil)

	var finished *evaluation.Run
	evalRepo.On("CreateRun", mock.Anything, mock.Anything).Return(nil)
	evalRepo.On("UpdateRunProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	evalRepo.On("SaveResults", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	evalRepo.On("FinishRun", mock.Anything, mock.AnythingOfType("*evaluation.Run")).
		Run(func(args mock.Arguments) { finished = args.Get(1).(*evaluation.Run) }).
		Return(nil)

	svc := NewService(productRepo, ruleRepo, evalRepo, new(alertmocks.MockRepository), hub, rule.DefaultConfig(), zerolog.Nop())

	_, err := svc.StartRun(context.Background(), lot.LotID)
	require.NoError(t, err)

	assert.Equal(t, "run_failed", waitForRun(t, hub))
	require.NotNil(t, finished)
	assert.Equal(t, evaluation.RunStatusFailed, finished.Status)
	require.NotNil(t, finished.Error)
	assert.Contains(t, *finished.Error, "disk full")
}

func TestEvaluateProduct_AdHoc(t *testing.T) {
	_, products := testLotWithProducts()
	expensive := products[1]

	productRepo := new(productmocks.MockRepository)
	ruleRepo := new(rulemocks.MockRepository)

	productRepo.On("GetByProductID", mock.Anything, expensive.ProductID).Return(expensive, nil)
	ruleRepo.On("ListActive", mock.Anything).Return([]*rule.WeightedRule{blockRule()}, nil)
	ruleRepo.On("ListActiveWarningRules", mock.Anything).Return([]*rule.WarningRule{}, nil)

	svc := NewService(productRepo, ruleRepo, new(evalmocks.MockRepository), new(alertmocks.MockRepository), newStubHub(), rule.DefaultConfig(), zerolog.Nop())

	res, err := svc.EvaluateProduct(context.Background(), expensive.ProductID)
	require.NoError(t, err)
	assert.Equal(t, rule.StatusBlocked, res.Eval.Status)
	assert.Equal(t, 0.0, res.Eval.Score)
	require.NotEmpty(t, res.Recommendations)
	assert.Equal(t, rule.RecommendRemove, res.Recommendations[0].Kind)
}
