package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier order status values.
const (
	SupplierOrderPending   = "pending"
	SupplierOrderOrdered   = "ordered"
	SupplierOrderDelivered = "delivered"
	SupplierOrderCancelled = "cancelled"
)

// SupplierOrder represents a restocking order placed with a supplier.
// Delivery processing (stock adjustment, status flip) runs inside the
// process_supplier_order_delivery database function so it stays atomic.
type SupplierOrder struct {
	ID                   uuid.UUID           `json:"id"`
	SupplierName         string              `json:"supplier_name"`
	Status               string              `json:"status"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date,omitempty"`
	ReceivedAt           *time.Time          `json:"received_at,omitempty"`
	TotalCost            float64             `json:"total_cost"`
	Items                []SupplierOrderItem `json:"items,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// SupplierOrderItem is one line of a supplier order.
type SupplierOrderItem struct {
	ID              uuid.UUID `json:"id"`
	SupplierOrderID uuid.UUID `json:"supplier_order_id"`
	ProductID       uuid.UUID `json:"product_id"`
	QuantityKg      float64   `json:"quantity_kg"`
	UnitCost        float64   `json:"unit_cost"`
}
