package models

import (
	"time"

	"github.com/google/uuid"
)

// Pricing types for products. Frozen goods are sold either by the box or by weight.
const (
	PricingPerBox  = "per_box"
	PricingPerKilo = "per_kilo"
)

// Product stock status values.
const (
	ProductInStock    = "in_stock"
	ProductLowStock   = "low_stock"
	ProductOutOfStock = "out_of_stock"
)

// Product represents one item in the frozen goods catalog.
type Product struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	SKU               string    `json:"sku"`
	Category          string    `json:"category"`
	PricingType       string    `json:"pricing_type"` // 'per_box', 'per_kilo'
	Price             float64   `json:"price"`
	StockKg           float64   `json:"stock_kg"`
	BoxesInStock      int       `json:"boxes_in_stock"`
	KgPerBox          float64   `json:"kg_per_box"`
	LowStockThreshold float64   `json:"low_stock_threshold"`
	ProductStatus     string    `json:"product_status"` // 'in_stock', 'low_stock', 'out_of_stock'
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// StockLevel returns the effective stock in kilograms regardless of pricing type.
func (p *Product) StockLevel() float64 {
	if p.PricingType == PricingPerBox {
		return float64(p.BoxesInStock) * p.KgPerBox
	}
	return p.StockKg
}

// IsLowStock reports whether the product is at or below its low stock threshold.
func (p *Product) IsLowStock() bool {
	return p.StockLevel() <= p.LowStockThreshold
}
