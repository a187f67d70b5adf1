package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/clinicstock/alert-engine/internal/model"
	"github.com/google/uuid"
)

// evaluate applies one config's rule to every item in its scope and returns
// the candidate alerts. An item may fire under several configs in the same
// run; dedup happens later, against the store, not here.
func evaluate(cfg *model.AlertConfig, items []model.InventoryItem, now time.Time) []model.Alert {
	var candidates []model.Alert
	for i := range items {
		item := &items[i]
		if !cfg.AppliesTo(item) {
			continue
		}
		if a := evaluateItem(cfg, item, now); a != nil {
			candidates = append(candidates, *a)
		}
	}
	return candidates
}

func evaluateItem(cfg *model.AlertConfig, item *model.InventoryItem, now time.Time) *model.Alert {
	switch cfg.AlertType {
	case model.AlertTypeLowStock:
		if cfg.ThresholdUnit != model.UnitQuantity {
			return nil
		}
		if item.QuantityAvailable > cfg.Threshold {
			return nil
		}
		msg := fmt.Sprintf("Low stock: %s has only %s units (minimum: %s)",
			item.ProductName, formatQty(item.QuantityAvailable), formatQty(cfg.Threshold))
		return newAlert(cfg, item, cfg.Severity, item.QuantityAvailable, msg, now)

	case model.AlertTypeExpiring:
		if item.ExpiryDate == nil || cfg.ThresholdUnit != model.UnitDays {
			return nil
		}
		days := daysBetween(now, *item.ExpiryDate)
		if days <= 0 || float64(days) > cfg.Threshold {
			return nil
		}
		msg := fmt.Sprintf("Expiring soon: %s expires in %d days", item.ProductName, days)
		return newAlert(cfg, item, cfg.Severity, float64(days), msg, now)

	case model.AlertTypeExpired:
		if item.ExpiryDate == nil {
			return nil
		}
		days := daysBetween(*item.ExpiryDate, now)
		if days <= 0 {
			return nil
		}
		// An already-expired item is a distinct risk class from an approaching
		// expiry: severity is always critical, whatever the config says.
		msg := fmt.Sprintf("Expired: %s expired %d days ago", item.ProductName, days)
		return newAlert(cfg, item, model.SeverityCritical, float64(days), msg, now)

	case model.AlertTypeOverstock:
		if cfg.ThresholdUnit != model.UnitQuantity {
			return nil
		}
		if item.QuantityAvailable < cfg.Threshold {
			return nil
		}
		msg := fmt.Sprintf("Overstock: %s has %s units (recommended max: %s)",
			item.ProductName, formatQty(item.QuantityAvailable), formatQty(cfg.Threshold))
		return newAlert(cfg, item, cfg.Severity, item.QuantityAvailable, msg, now)
	}
	return nil
}

func newAlert(cfg *model.AlertConfig, item *model.InventoryItem, severity model.Severity, currentValue float64, msg string, now time.Time) *model.Alert {
	return &model.Alert{
		ID:             uuid.New().String(),
		TenantID:       item.TenantID,
		ItemID:         item.ID,
		ProductID:      item.ProductID,
		ConfigID:       cfg.ID,
		AlertType:      cfg.AlertType,
		Severity:       severity,
		CurrentValue:   currentValue,
		ThresholdValue: cfg.Threshold,
		Message:        msg,
		Status:         model.AlertStatusActive,
		CreatedAt:      now,
	}
}

// daysBetween counts whole calendar days from `from` to `to` on UTC dates, so
// an expiry four calendar days out reads as 4 regardless of time of day.
func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
