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

// OrderFilters contains filter and pagination options for order queries.
type OrderFilters struct {
	Status        string
	PaymentMethod string
	Since         *time.Time
	Until         *time.Time
	Limit         int
	Offset        int
}

// OrderRepository defines the interface for customer order data access.
type OrderRepository interface {
	List(ctx context.Context, filters *OrderFilters) ([]*models.Order, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	// RevenueBetween sums the total amount of paid, non-cancelled orders in the window.
	RevenueBetween(ctx context.Context, since, until time.Time) (float64, error)
	// CountByStatus returns order counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type orderRepository struct {
	db *database.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *database.DB) OrderRepository {
	return &orderRepository{db: db}
}

var _ OrderRepository = (*orderRepository)(nil)

const orderColumns = `id, customer_name, customer_phone, status, payment_method,
	total_amount, discount_amount, is_paid, created_at, updated_at`

func (r *orderRepository) List(ctx context.Context, filters *OrderFilters) ([]*models.Order, int, error) {
	where := ""
	var args []any
	if filters.Status != "" {
		args = append(args, filters.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.PaymentMethod != "" {
		args = append(args, filters.PaymentMethod)
		where += fmt.Sprintf(" AND payment_method = $%d", len(args))
	}
	if filters.Since != nil {
		args = append(args, *filters.Since)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filters.Until != nil {
		args = append(args, *filters.Until)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM orders WHERE TRUE` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filters.Offset)
	query := fmt.Sprintf(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE TRUE%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.itemsForOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
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
		INSERT INTO orders (
			id, customer_name, customer_phone, status, payment_method,
			total_amount, discount_amount, is_paid, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = tx.Exec(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerPhone,
		order.Status,
		order.PaymentMethod,
		order.TotalAmount,
		order.DiscountAmount,
		order.IsPaid,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID

		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now()

	query := `
		UPDATE orders
		SET customer_name = $2, customer_phone = $3, status = $4, payment_method = $5,
		    total_amount = $6, discount_amount = $7, is_paid = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerPhone,
		order.Status,
		order.PaymentMethod,
		order.TotalAmount,
		order.DiscountAmount,
		order.IsPaid,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *orderRepository) RevenueBetween(ctx context.Context, since, until time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount - discount_amount), 0)
		FROM orders
		WHERE is_paid AND status <> 'cancelled'
		  AND created_at >= $1 AND created_at <= $2`

	var revenue float64
	if err := r.db.QueryRow(ctx, query, since, until).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("failed to query revenue: %w", err)
	}
	return revenue, nil
}

func (r *orderRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to query order counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan order count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order counts: %w", err)
	}

	return counts, nil
}

func (r *orderRepository) itemsForOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.Status,
		&o.PaymentMethod,
		&o.TotalAmount,
		&o.DiscountAmount,
		&o.IsPaid,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
