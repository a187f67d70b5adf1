package model

import "time"

// DailyMetric is one tenant's snapshot row for a calendar date, upserted on
// every run. Turnover and waste need movement history this service does not
// read, so they stay at their zero placeholders.
type DailyMetric struct {
	TenantID            string    `db:"tenant_id"`
	MetricDate          time.Time `db:"metric_date"`
	TotalInventoryValue float64   `db:"total_inventory_value"`
	StockAccuracyPct    float64   `db:"stock_accuracy_pct"`
	TurnoverRate        float64   `db:"turnover_rate"`
	WasteValue          float64   `db:"waste_value"`
	WastePct            float64   `db:"waste_pct"`
	UpdatedAt           time.Time `db:"updated_at"`
}
