package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LotStatus represents the processing status of a pallet lot
type LotStatus string

const (
	LotStatusNew       LotStatus = "NEW"
	LotStatusEvaluated LotStatus = "EVALUATED"
)

var ErrNameRequired = errors.New("product name is required")

// Lot represents one uploaded pallet manifest.
type Lot struct {
	ID           int64     `json:"id"`
	LotID        uuid.UUID `json:"lotId"`
	Name         string    `json:"name"`
	SourceFile   *string   `json:"sourceFile,omitempty"`
	Status       LotStatus `json:"status"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Product represents a single normalized manifest row. Optional fields stay
// nil when the source export did not carry them; the evaluator treats nil as
// "unknown" and never guesses.
type Product struct {
	ID          int64     `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	LotID       uuid.UUID `json:"lotId"`
	Name        string    `json:"name"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Quantity    *int      `json:"quantity,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewLot creates a new Lot with default values
func NewLot(name string, sourceFile *string) *Lot {
	return &Lot{
		LotID:      uuid.New(),
		Name:       name,
		SourceFile: sourceFile,
		Status:     LotStatusNew,
		CreatedAt:  time.Now().UTC(),
	}
}

// NewProduct creates a product attached to a lot.
func NewProduct(lotID uuid.UUID, name string) *Product {
	return &Product{
		ProductID: uuid.New(),
		LotID:     lotID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate validates the product at ingestion time.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Price != nil && *p.Price < 0 {
		return errors.New("price must be non-negative")
	}
	if p.Quantity != nil && *p.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

// TotalValue returns price * quantity when both are known.
func (p *Product) TotalValue() *float64 {
	if p.Price == nil || p.Quantity == nil {
		return nil
	}
	v := *p.Price * float64(*p.Quantity)
	return &v
}

// Filter represents filters for querying products
type Filter struct {
	LotID    *uuid.UUID
	Category *string
	MinPrice *float64
	MaxPrice *float64
}
