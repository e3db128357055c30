package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appAudit "github.com/pallet-insight/pallet-insight/internal/application/audit"
	"github.com/pallet-insight/pallet-insight/internal/domain/audit"
	"github.com/pallet-insight/pallet-insight/internal/domain/product"
)

// Service handles lot ingestion and product queries.
type Service struct {
	repo     product.Repository
	auditSvc *appAudit.Service
	logger   zerolog.Logger
}

// NewService creates a product service.
func NewService(repo product.Repository, auditSvc *appAudit.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		auditSvc: auditSvc,
		logger:   logger.With().Str("service", "product").Logger(),
	}
}

// ProductInput carries one product row of an ingested lot.
type ProductInput struct {
	Name        string   `json:"name"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
}

// CreateLotInput carries a lot manifest with its product rows.
type CreateLotInput struct {
	Name       string         `json:"name"`
	SourceFile *string        `json:"sourceFile,omitempty"`
	Products   []ProductInput `json:"products"`
}

// CreateLot stores a lot manifest together with its products. The lot starts
// in NEW status until an evaluation run completes.
func (s *Service) CreateLot(ctx context.Context, input CreateLotInput, actor string) (*product.Lot, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("lot name is required")
	}
	if len(input.Products) == 0 {
		return nil, fmt.Errorf("lot must contain at least one product")
	}

	lot := product.NewLot(input.Name, input.SourceFile)

	products := make([]*product.Product, 0, len(input.Products))
	for i, in := range input.Products {
		p := product.NewProduct(lot.LotID, in.Name)
		p.Category = in.Category
		p.Description = in.Description
		p.Brand = in.Brand
		p.Price = in.Price
		p.Quantity = in.Quantity
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", i+1, err)
		}
		products = append(products, p)
	}

	if err := s.repo.CreateLot(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to create lot: %w", err)
	}
	if err := s.repo.CreateProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to store products: %w", err)
	}
	lot.ProductCount = len(products)

	s.auditSvc.Record(audit.EntityTypeLot, lot.LotID.String(), audit.ActionCreate, actor, nil,
		map[string]interface{}{"name": lot.Name, "productCount": lot.ProductCount})
	s.logger.Info().
		Str("lotId", lot.LotID.String()).
		Int("productCount", lot.ProductCount).
		Msg("lot created")
	return lot, nil
}

// GetLot retrieves a lot by ID.
func (s *Service) GetLot(ctx context.Context, lotID uuid.UUID) (*product.Lot, error) {
	return s.repo.GetLot(ctx, lotID)
}

// ListLots lists the most recent lots.
func (s *Service) ListLots(ctx context.Context, limit int) ([]*product.Lot, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListLots(ctx, limit)
}

// DeleteLot removes a lot with its products, runs and results.
func (s *Service) DeleteLot(ctx context.Context, lotID uuid.UUID, actor string) error {
	lot, err := s.repo.GetLot(ctx, lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return fmt.Errorf("lot not found: %s", lotID)
	}

	if err := s.repo.DeleteLot(ctx, lotID); err != nil {
		return fmt.Errorf("failed to delete lot: %w", err)
	}

	s.auditSvc.Record(audit.EntityTypeLot, lotID.String(), audit.ActionDelete, actor, lot, nil)
	return nil
}

// GetProduct retrieves a product by ID.
func (s *Service) GetProduct(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	return s.repo.GetByProductID(ctx, productID)
}

// ListByLot lists all products of a lot in ingestion order.
func (s *Service) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*product.Product, error) {
	return s.repo.ListByLot(ctx, lotID)
}

// ListProducts lists products matching the filter across lots.
func (s *Service) ListProducts(ctx context.Context, filter product.Filter, limit int) ([]*product.Product, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.List(ctx, filter, limit)
}
