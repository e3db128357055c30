package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntityType represents the type of entity being audited
type EntityType string

const (
	EntityTypeRule        EntityType = "RULE"
	EntityTypeWarningRule EntityType = "WARNING_RULE"
	EntityTypeLot         EntityType = "LOT"
	EntityTypeView        EntityType = "VIEW"
)

// Action represents the type of change being audited
type Action string

const (
	ActionCreate       Action = "CREATE"
	ActionUpdate       Action = "UPDATE"
	ActionStatusChange Action = "STATUS_CHANGE"
	ActionDelete       Action = "DELETE"
)

// AuditLog represents one signed change record. Rule changes directly alter
// how lots get scored, so every mutation leaves a verifiable trail.
type AuditLog struct {
	ID        int64           `json:"id"`
	AuditID   uuid.UUID       `json:"auditId"`
	EntityType EntityType     `json:"entityType"`
	EntityID  string          `json:"entityId"`
	Action    Action          `json:"action"`
	Actor     string          `json:"actor"`
	OldValues json.RawMessage `json:"oldValues,omitempty"`
	NewValues json.RawMessage `json:"newValues,omitempty"`
	Signature []byte          `json:"signature,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewAuditLog creates an audit log entry.
func NewAuditLog(entityType EntityType, entityID string, action Action, actor string, oldValues, newValues json.RawMessage) *AuditLog {
	return &AuditLog{
		AuditID:    uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		OldValues:  oldValues,
		NewValues:  newValues,
		CreatedAt:  time.Now().UTC(),
	}
}

// Filter represents filters for querying audit logs
type Filter struct {
	EntityType *EntityType
	EntityID   *string
	Action     *Action
	Since      *time.Time
}

// Repository defines the interface for audit log persistence
type Repository interface {
	Insert(ctx context.Context, entry *AuditLog) error
	GetByAuditID(ctx context.Context, auditID uuid.UUID) (*AuditLog, error)
	ListByEntity(ctx context.Context, entityType EntityType, entityID string) ([]*AuditLog, error)
	ListRecent(ctx context.Context, filter Filter, limit int) ([]*AuditLog, error)
}
