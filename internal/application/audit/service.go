package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pallet-insight/pallet-insight/internal/domain/audit"
)

// Service handles the change trail for rules, warning rules, lots and views.
type Service struct {
	repo    audit.Repository
	logger  zerolog.Logger
	signKey []byte
}

// NewService creates a new audit service. An empty signing key disables
// signatures but entries are still recorded.
func NewService(repo audit.Repository, logger zerolog.Logger, signKey []byte) *Service {
	return &Service{
		repo:    repo,
		signKey: signKey,
		logger:  logger.With().Str("service", "audit").Logger(),
	}
}

// Record stores a change entry asynchronously. Audit failures never fail the
// operation that triggered them.
func (s *Service) Record(entityType audit.EntityType, entityID string, action audit.Action, actor string, oldValues, newValues interface{}) {
	go func() {
		if err := s.RecordSync(context.Background(), entityType, entityID, action, actor, oldValues, newValues); err != nil {
			s.logger.Error().Err(err).
				Str("entityType", string(entityType)).
				Str("entityId", entityID).
				Str("action", string(action)).
				Msg("failed to record audit entry")
		}
	}()
}

// RecordSync stores a change entry synchronously.
func (s *Service) RecordSync(ctx context.Context, entityType audit.EntityType, entityID string, action audit.Action, actor string, oldValues, newValues interface{}) error {
	entry := audit.NewAuditLog(entityType, entityID, action, actor,
		s.marshalValues(oldValues), s.marshalValues(newValues))

	if len(s.signKey) > 0 {
		sig, err := audit.SignAuditLog(entry, s.signKey)
		if err != nil {
			return fmt.Errorf("failed to sign audit entry: %w", err)
		}
		entry.Signature = sig
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}

	s.logger.Debug().
		Str("auditId", entry.AuditID.String()).
		Str("entityType", string(entityType)).
		Str("entityId", entityID).
		Str("action", string(action)).
		Str("actor", actor).
		Msg("audit entry recorded")
	return nil
}

// GetByID retrieves a single entry.
func (s *Service) GetByID(ctx context.Context, auditID uuid.UUID) (*audit.AuditLog, error) {
	entry, err := s.repo.GetByAuditID(ctx, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit entry: %w", err)
	}
	return entry, nil
}

// GetEntityHistory returns the change history of one entity, newest first.
func (s *Service) GetEntityHistory(ctx context.Context, entityType audit.EntityType, entityID string) ([]*audit.AuditLog, error) {
	logs, err := s.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity history: %w", err)
	}
	return logs, nil
}

// ListRecent returns recent entries matching the filter.
func (s *Service) ListRecent(ctx context.Context, filter audit.Filter, limit int) ([]*audit.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	logs, err := s.repo.ListRecent(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return logs, nil
}

// VerifyResult reports the outcome of a signature check.
type VerifyResult struct {
	AuditID  uuid.UUID `json:"auditId"`
	Verified bool      `json:"verified"`
	Message  string    `json:"message"`
}

// VerifyIntegrity re-computes the signature of a stored entry.
func (s *Service) VerifyIntegrity(ctx context.Context, auditID uuid.UUID) (*VerifyResult, error) {
	entry, err := s.repo.GetByAuditID(ctx, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit entry: %w", err)
	}
	if entry == nil {
		return nil, fmt.Errorf("audit entry %s not found", auditID)
	}

	verified, err := audit.VerifyAuditLogSignature(entry, s.signKey)
	if err != nil {
		return nil, fmt.Errorf("failed to verify signature: %w", err)
	}

	result := &VerifyResult{AuditID: auditID, Verified: verified}
	if verified {
		result.Message = "Audit entry integrity verified"
	} else {
		result.Message = "Audit entry signature mismatch - possible tampering detected"
		s.logger.Warn().
			Str("auditId", auditID.String()).
			Msg("audit entry signature verification failed")
	}
	return result, nil
}

func (s *Service) marshalValues(v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal audit values")
		return nil
	}
	return data
}
