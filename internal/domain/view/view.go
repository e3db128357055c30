package view

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidExpression = errors.New("invalid filter expression")

// View represents a saved dashboard filter: a named boolean expression
// evaluated against product and evaluation fields, e.g.
// `price > 100 && status == 'BLOCKED'`.
type View struct {
	ID          int64     `json:"id"`
	ViewID      uuid.UUID `json:"viewId"`
	Name        string    `json:"name"`
	Expression  string    `json:"expression"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewView creates a saved filter.
func NewView(name, expression string) *View {
	return &View{
		ViewID:     uuid.New(),
		Name:       name,
		Expression: expression,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate checks the view at authoring time, including expression syntax.
func (v *View) Validate() error {
	if v.Name == "" {
		return errors.New("name is required")
	}
	if v.Expression == "" {
		return errors.New("expression is required")
	}
	return CheckExpression(v.Expression)
}

// Repository defines the interface for saved view persistence
type Repository interface {
	Create(ctx context.Context, v *View) error
	GetByViewID(ctx context.Context, viewID uuid.UUID) (*View, error)
	List(ctx context.Context) ([]*View, error)
	Delete(ctx context.Context, viewID uuid.UUID) error
}
