package evaluation

import (
	"time"

	"github.com/google/uuid"

	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

// RunStatus represents the lifecycle state of a batch evaluation run
type RunStatus string

const (
	RunStatusPending   RunStatus = "PENDING"
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusFailed    RunStatus = "FAILED"
)

// Run represents one batch evaluation of a lot against the rule set active
// at start time.
type Run struct {
	ID           int64      `json:"id"`
	RunID        uuid.UUID  `json:"runId"`
	LotID        uuid.UUID  `json:"lotId"`
	Status       RunStatus  `json:"status"`
	Progress     int        `json:"progress"`
	ProductCount int        `json:"productCount"`
	OKCount      int        `json:"okCount"`
	WarningCount int        `json:"warningCount"`
	BlockedCount int        `json:"blockedCount"`
	Error        *string    `json:"error,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty"`
}

// NewRun creates a pending run for a lot.
func NewRun(lotID uuid.UUID, productCount int) *Run {
	return &Run{
		RunID:        uuid.New(),
		LotID:        lotID,
		Status:       RunStatusPending,
		ProductCount: productCount,
		StartedAt:    time.Now().UTC(),
	}
}

// Complete marks the run finished and records the status tallies.
func (r *Run) Complete(results []*rule.ProductEvaluation) {
	for _, eval := range results {
		switch eval.Status {
		case rule.StatusBlocked:
			r.BlockedCount++
		case rule.StatusWarning:
			r.WarningCount++
		default:
			r.OKCount++
		}
	}
	now := time.Now().UTC()
	r.Status = RunStatusCompleted
	r.Progress = 100
	r.FinishedAt = &now
}

// Fail marks the run failed with a message.
func (r *Run) Fail(msg string) {
	now := time.Now().UTC()
	r.Status = RunStatusFailed
	r.Error = &msg
	r.FinishedAt = &now
}

// Result is a persisted per-product evaluation belonging to a run.
type Result struct {
	ID    int64                   `json:"id"`
	RunID uuid.UUID               `json:"runId"`
	LotID uuid.UUID               `json:"lotId"`
	Eval  *rule.ProductEvaluation `json:"evaluation"`
}
