package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory alert types.
const (
	AlertLowStock   = "low_stock"
	AlertOutOfStock = "out_of_stock"
	AlertExpiring   = "expiring"
)

// InventoryAlert flags a product that needs attention on the dashboard.
type InventoryAlert struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	AlertType      string     `json:"alert_type"` // 'low_stock', 'out_of_stock', 'expiring'
	Threshold      float64    `json:"threshold"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedBy *uuid.UUID `json:"acknowledged_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
