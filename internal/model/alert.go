package model

import "time"

const (
	AlertStatusActive    = "active"
	AlertStatusResolved  = "resolved"
	AlertStatusDismissed = "dismissed"
)

// Alert is a persisted firing of one rule against one item. Rows are created
// by this service and never updated by it; resolution is owned externally.
type Alert struct {
	ID             string    `db:"id"`
	TenantID       string    `db:"tenant_id"`
	ItemID         string    `db:"item_id"`
	ProductID      string    `db:"product_id"`
	ConfigID       string    `db:"config_id"`
	AlertType      AlertType `db:"alert_type"`
	Severity       Severity  `db:"severity"`
	CurrentValue   float64   `db:"current_value"`
	ThresholdValue float64   `db:"threshold_value"`
	Message        string    `db:"message"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
}

// AlertKey is the dedup identity: at most one active alert may exist per key.
type AlertKey struct {
	TenantID  string
	ItemID    string
	AlertType AlertType
}

func (a *Alert) Key() AlertKey {
	return AlertKey{TenantID: a.TenantID, ItemID: a.ItemID, AlertType: a.AlertType}
}
