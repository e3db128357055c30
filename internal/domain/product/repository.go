package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for lot and product persistence
type Repository interface {
	// Lot operations
	CreateLot(ctx context.Context, lot *Lot) error
	GetLot(ctx context.Context, lotID uuid.UUID) (*Lot, error)
	ListLots(ctx context.Context, limit int) ([]*Lot, error)
	UpdateLotStatus(ctx context.Context, lotID uuid.UUID, status LotStatus) error
	DeleteLot(ctx context.Context, lotID uuid.UUID) error

	// Product operations
	CreateProducts(ctx context.Context, products []*Product) error
	GetByProductID(ctx context.Context, productID uuid.UUID) (*Product, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]*Product, error)
	List(ctx context.Context, filter Filter, limit int) ([]*Product, error)
	CountByLot(ctx context.Context, lotID uuid.UUID) (int, error)
}
