package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/frostline-foods/frostline-admin/pkg/apperrors"
	"github.com/frostline-foods/frostline-admin/pkg/database"
	"github.com/frostline-foods/frostline-admin/pkg/models"
)

// ProductFilters contains filter and pagination options for product queries.
type ProductFilters struct {
	Category      string
	ProductStatus string
	ActiveOnly    bool
	Limit         int
	Offset        int
}

// ProductRepository defines the interface for product catalog data access.
type ProductRepository interface {
	List(ctx context.Context, filters *ProductFilters) ([]*models.Product, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListBelowThreshold returns active products at or below their low stock
	// threshold, for the alert sweep.
	ListBelowThreshold(ctx context.Context) ([]*models.Product, error)
}

type productRepository struct {
	db *database.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *database.DB) ProductRepository {
	return &productRepository{db: db}
}

var _ ProductRepository = (*productRepository)(nil)

const productColumns = `id, name, sku, category, pricing_type, price, stock_kg,
	boxes_in_stock, kg_per_box, low_stock_threshold, product_status, is_active, created_at, updated_at`

func (r *productRepository) List(ctx context.Context, filters *ProductFilters) ([]*models.Product, int, error) {
	where := ""
	var args []any
	if filters.Category != "" {
		args = append(args, filters.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.ProductStatus != "" {
		args = append(args, filters.ProductStatus)
		where += fmt.Sprintf(" AND product_status = $%d", len(args))
	}
	if filters.ActiveOnly {
		where += " AND is_active"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products WHERE TRUE` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filters.Offset)
	query := fmt.Sprintf(`
		SELECT `+productColumns+`
		FROM products
		WHERE TRUE%s
		ORDER BY name
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (
			id, name, sku, category, pricing_type, price, stock_kg,
			boxes_in_stock, kg_per_box, low_stock_threshold, product_status, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.SKU,
		product.Category,
		product.PricingType,
		product.Price,
		product.StockKg,
		product.BoxesInStock,
		product.KgPerBox,
		product.LowStockThreshold,
		product.ProductStatus,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()

	query := `
		UPDATE products
		SET name = $2, sku = $3, category = $4, pricing_type = $5, price = $6,
		    stock_kg = $7, boxes_in_stock = $8, kg_per_box = $9,
		    low_stock_threshold = $10, product_status = $11, is_active = $12, updated_at = $13
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.SKU,
		product.Category,
		product.PricingType,
		product.Price,
		product.StockKg,
		product.BoxesInStock,
		product.KgPerBox,
		product.LowStockThreshold,
		product.ProductStatus,
		product.IsActive,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) ListBelowThreshold(ctx context.Context) ([]*models.Product, error) {
	// Effective stock is boxes * kg_per_box for per-box products, stock_kg otherwise.
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active
		  AND CASE WHEN pricing_type = 'per_box'
		           THEN boxes_in_stock * kg_per_box
		           ELSE stock_kg
		      END <= low_stock_threshold`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating low stock products: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.SKU,
		&p.Category,
		&p.PricingType,
		&p.Price,
		&p.StockKg,
		&p.BoxesInStock,
		&p.KgPerBox,
		&p.LowStockThreshold,
		&p.ProductStatus,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
