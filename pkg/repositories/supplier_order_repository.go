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

// SupplierOrderRepository defines the interface for supplier order data access.
// Delivery processing goes through database.RPC, not this repository, so the
// stock adjustment stays atomic.
type SupplierOrderRepository interface {
	List(ctx context.Context, status string, limit, offset int) ([]*models.SupplierOrder, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error)
	Create(ctx context.Context, order *models.SupplierOrder) error
	Update(ctx context.Context, order *models.SupplierOrder) error
}

type supplierOrderRepository struct {
	db *database.DB
}

// NewSupplierOrderRepository creates a new supplier order repository.
func NewSupplierOrderRepository(db *database.DB) SupplierOrderRepository {
	return &supplierOrderRepository{db: db}
}

var _ SupplierOrderRepository = (*supplierOrderRepository)(nil)

const supplierOrderColumns = `id, supplier_name, status, expected_delivery_date,
	received_at, total_cost, created_at, updated_at`

func (r *supplierOrderRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.SupplierOrder, int, error) {
	where := ""
	var args []any
	if status != "" {
		args = append(args, status)
		where = " AND status = $1"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM supplier_orders WHERE TRUE` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count supplier orders: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT `+supplierOrderColumns+`
		FROM supplier_orders
		WHERE TRUE%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query supplier orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.SupplierOrder
	for rows.Next() {
		order, err := scanSupplierOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating supplier orders: %w", err)
	}

	return orders, total, nil
}

func (r *supplierOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error) {
	query := `SELECT ` + supplierOrderColumns + ` FROM supplier_orders WHERE id = $1`
	order, err := scanSupplierOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier order: %w", err)
	}

	items, err := r.itemsForOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *supplierOrderRepository) Create(ctx context.Context, order *models.SupplierOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO supplier_orders (
			id, supplier_name, status, expected_delivery_date, received_at,
			total_cost, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.Exec(ctx, query,
		order.ID,
		order.SupplierName,
		order.Status,
		order.ExpectedDeliveryDate,
		order.ReceivedAt,
		order.TotalCost,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create supplier order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.SupplierOrderID = order.ID

		_, err = tx.Exec(ctx, `
			INSERT INTO supplier_order_items (id, supplier_order_id, product_id, quantity_kg, unit_cost)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.SupplierOrderID, item.ProductID, item.QuantityKg, item.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("failed to create supplier order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit supplier order: %w", err)
	}

	return nil
}

func (r *supplierOrderRepository) Update(ctx context.Context, order *models.SupplierOrder) error {
	order.UpdatedAt = time.Now()

	query := `
		UPDATE supplier_orders
		SET supplier_name = $2, status = $3, expected_delivery_date = $4,
		    received_at = $5, total_cost = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		order.ID,
		order.SupplierName,
		order.Status,
		order.ExpectedDeliveryDate,
		order.ReceivedAt,
		order.TotalCost,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *supplierOrderRepository) itemsForOrder(ctx context.Context, orderID uuid.UUID) ([]models.SupplierOrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, supplier_order_id, product_id, quantity_kg, unit_cost
		FROM supplier_order_items
		WHERE supplier_order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier order items: %w", err)
	}
	defer rows.Close()

	var items []models.SupplierOrderItem
	for rows.Next() {
		var item models.SupplierOrderItem
		if err := rows.Scan(&item.ID, &item.SupplierOrderID, &item.ProductID, &item.QuantityKg, &item.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan supplier order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier order items: %w", err)
	}

	return items, nil
}

func scanSupplierOrder(row pgx.Row) (*models.SupplierOrder, error) {
	var o models.SupplierOrder
	err := row.Scan(
		&o.ID,
		&o.SupplierName,
		&o.Status,
		&o.ExpectedDeliveryDate,
		&o.ReceivedAt,
		&o.TotalCost,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
