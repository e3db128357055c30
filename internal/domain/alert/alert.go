package alert

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the handling status of an alert
type Status string

const (
	StatusOpen         Status = "OPEN"
	StatusAcknowledged Status = "ACKNOWLEDGED"
	StatusDismissed    Status = "DISMISSED"
)

// Severity represents the alert severity
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrClientNotFound    = errors.New("SSE client not found")
	ErrChannelFull       = errors.New("SSE message channel full")
)

// Alert represents an advisory raised after a batch run, typically for a
// blocked product or a HIGH-level warning.
type Alert struct {
	ID        int64     `json:"id"`
	AlertID   uuid.UUID `json:"alertId"`
	RunID     uuid.UUID `json:"runId"`
	ProductID uuid.UUID `json:"productId"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAlert creates an open alert for a product in a run.
func NewAlert(runID, productID uuid.UUID, severity Severity, title, body string) *Alert {
	now := time.Now().UTC()
	return &Alert{
		AlertID:   uuid.New(),
		RunID:     runID,
		ProductID: productID,
		Severity:  severity,
		Title:     title,
		Body:      body,
		Status:    StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Acknowledge marks an open alert as seen.
func (a *Alert) Acknowledge() error {
	if a.Status != StatusOpen {
		return ErrInvalidTransition
	}
	a.Status = StatusAcknowledged
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Dismiss closes the alert.
func (a *Alert) Dismiss() error {
	if a.Status == StatusDismissed {
		return ErrInvalidTransition
	}
	a.Status = StatusDismissed
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// SSEClient represents a connected dashboard stream
type SSEClient struct {
	ClientID    string
	ConnectedAt time.Time
	MessageChan chan *SSEMessage
}

// NewSSEClient creates a new SSE client
func NewSSEClient(clientID string) *SSEClient {
	return &SSEClient{
		ClientID:    clientID,
		ConnectedAt: time.Now().UTC(),
		MessageChan: make(chan *SSEMessage, 100),
	}
}

// Close closes the client's message channel
func (c *SSEClient) Close() {
	close(c.MessageChan)
}

// SSEMessage represents a server-sent event payload
type SSEMessage struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewSSEMessage creates a new SSE message
func NewSSEMessage(event string, data json.RawMessage) *SSEMessage {
	return &SSEMessage{
		ID:        uuid.New().String(),
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
