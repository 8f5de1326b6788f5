package models

import (
	"time"

	"github.com/google/uuid"
)

// Order status values, in fulfillment order.
const (
	OrderPending        = "pending"
	OrderConfirmed      = "confirmed"
	OrderPreparing      = "preparing"
	OrderOutForDelivery = "out_for_delivery"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

// Payment methods accepted for customer orders.
const (
	PaymentCash         = "cash"
	PaymentGCash        = "gcash"
	PaymentBankTransfer = "bank_transfer"
)

// Order represents a customer order.
type Order struct {
	ID             uuid.UUID   `json:"id"`
	CustomerName   string      `json:"customer_name"`
	CustomerPhone  string      `json:"customer_phone"`
	Status         string      `json:"status"`
	PaymentMethod  string      `json:"payment_method"`
	TotalAmount    float64     `json:"total_amount"`
	DiscountAmount float64     `json:"discount_amount"`
	IsPaid         bool        `json:"is_paid"`
	Items          []OrderItem `json:"items,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  float64   `json:"quantity"` // Boxes or kilograms depending on the product's pricing type
	UnitPrice float64   `json:"unit_price"`
	Subtotal  float64   `json:"subtotal"`
}
