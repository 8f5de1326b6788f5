package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/models"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
)

const productsTable = "products"

// ProductService manages the frozen goods catalog. All mutations are audited.
type ProductService interface {
	List(ctx context.Context, filters *repositories.ProductFilters) ([]*models.Product, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo   repositories.ProductRepository
	audit  AuditService
	logger *zap.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repositories.ProductRepository, audit AuditService, logger *zap.Logger) ProductService {
	return &productService{
		repo:   repo,
		audit:  audit,
		logger: logger.Named("products"),
	}
}

var _ ProductService = (*productService)(nil)

func (s *productService) List(ctx context.Context, filters *repositories.ProductFilters) ([]*models.Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	product.ProductStatus = deriveStatus(product)

	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}

	s.audit.LogCreate(ctx, productsTable, product.ID.String(), Snapshot(product), nil)
	return nil
}

func (s *productService) Update(ctx context.Context, product *models.Product) error {
	existing, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}

	product.ProductStatus = deriveStatus(product)

	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}

	s.audit.LogUpdate(ctx, productsTable, product.ID.String(), Snapshot(existing), Snapshot(product), nil)
	return nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.LogDelete(ctx, productsTable, id.String(), Snapshot(existing), nil)
	return nil
}

// deriveStatus recomputes product_status from the effective stock level so the
// stored status never drifts from the numbers.
func deriveStatus(p *models.Product) string {
	switch {
	case p.StockLevel() <= 0:
		return models.ProductOutOfStock
	case p.IsLowStock():
		return models.ProductLowStock
	default:
		return models.ProductInStock
	}
}
