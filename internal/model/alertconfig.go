package model

import "github.com/lib/pq"

type AlertType string

const (
	AlertTypeLowStock  AlertType = "low_stock"
	AlertTypeExpiring  AlertType = "expiring"
	AlertTypeExpired   AlertType = "expired"
	AlertTypeOverstock AlertType = "overstock"
)

type ThresholdUnit string

const (
	UnitQuantity   ThresholdUnit = "quantity"
	UnitDays       ThresholdUnit = "days"
	UnitPercentage ThresholdUnit = "percentage"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AlertConfig is a tenant-authored threshold rule. Rows are owned by the
// tenant administration surface; this service only reads them.
type AlertConfig struct {
	BaseModel
	TenantID      string         `db:"tenant_id"`
	ProductID     *string        `db:"product_id"`  // Nullable: product-scoped rule
	CategoryID    *string        `db:"category_id"` // Nullable: category-scoped rule
	AlertType     AlertType      `db:"alert_type"`
	Threshold     float64        `db:"threshold_value"`
	ThresholdUnit ThresholdUnit  `db:"threshold_unit"`
	Severity      Severity       `db:"severity"`
	IsActive      bool           `db:"is_active"`
	Channels      pq.StringArray `db:"notification_channels"`
}

// AppliesTo reports whether item falls under this config's scope.
// Product scope wins over category scope; with neither set the config is
// tenant-wide.
func (c *AlertConfig) AppliesTo(item *InventoryItem) bool {
	if c.TenantID != item.TenantID {
		return false
	}
	if c.ProductID != nil && *c.ProductID != "" {
		return item.ProductID == *c.ProductID
	}
	if c.CategoryID != nil && *c.CategoryID != "" {
		return item.CategoryID != nil && *item.CategoryID == *c.CategoryID
	}
	return true
}
