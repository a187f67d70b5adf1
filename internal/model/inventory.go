package model

import "time"

// InventoryItem is the point-in-time read model an alert run evaluates.
// Product fields (name, category, expiry) are resolved by the repository join
// so rule evaluation never touches raw nested rows.
type InventoryItem struct {
	ID                string     `db:"id"`
	TenantID          string     `db:"tenant_id"`
	ProductID         string     `db:"product_id"`
	CategoryID        *string    `db:"category_id"` // Nullable
	ProductName       string     `db:"product_name"`
	QuantityAvailable float64    `db:"quantity_available"`
	MinStockLevel     float64    `db:"min_stock_level"`
	MaxStockLevel     float64    `db:"max_stock_level"`
	UnitCost          float64    `db:"unit_cost"`
	ExpiryDate        *time.Time `db:"expiry_date"` // Nullable
}
