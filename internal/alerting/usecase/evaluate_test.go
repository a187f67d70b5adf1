package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/clinicstock/alert-engine/internal/model"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func testConfig(alertType model.AlertType, threshold float64, unit model.ThresholdUnit, severity model.Severity) model.AlertConfig {
	return model.AlertConfig{
		BaseModel:     model.BaseModel{ID: "cfg-1"},
		TenantID:      "clinic-1",
		AlertType:     alertType,
		Threshold:     threshold,
		ThresholdUnit: unit,
		Severity:      severity,
		IsActive:      true,
		Channels:      pq.StringArray{"push"},
	}
}

func testItem() model.InventoryItem {
	return model.InventoryItem{
		ID:                "item-1",
		TenantID:          "clinic-1",
		ProductID:         "prod-1",
		ProductName:       "Amoxicillin 250mg",
		QuantityAvailable: 3,
		MinStockLevel:     10,
		MaxStockLevel:     100,
		UnitCost:          2.5,
	}
}

func TestEvaluateLowStock(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		threshold float64
		unit      model.ThresholdUnit
		fires     bool
	}{
		{"below threshold fires", 3, 5, model.UnitQuantity, true},
		{"equal to threshold fires", 5, 5, model.UnitQuantity, true},
		{"above threshold does not fire", 6, 5, model.UnitQuantity, false},
		{"wrong unit never fires", 3, 5, model.UnitDays, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(model.AlertTypeLowStock, tt.threshold, tt.unit, model.SeverityMedium)
			item := testItem()
			item.QuantityAvailable = tt.quantity

			alerts := evaluate(&cfg, []model.InventoryItem{item}, evalNow)
			if !tt.fires {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, model.AlertTypeLowStock, alerts[0].AlertType)
			assert.Equal(t, model.SeverityMedium, alerts[0].Severity)
			assert.Equal(t, tt.quantity, alerts[0].CurrentValue)
			assert.Equal(t, tt.threshold, alerts[0].ThresholdValue)
		})
	}
}

func TestEvaluateLowStockMessage(t *testing.T) {
	cfg := testConfig(model.AlertTypeLowStock, 5, model.UnitQuantity, model.SeverityHigh)
	item := testItem() // quantity 3

	alerts := evaluate(&cfg, []model.InventoryItem{item}, evalNow)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Low stock: Amoxicillin 250mg has only 3 units (minimum: 5)", alerts[0].Message)
	assert.Equal(t, model.AlertStatusActive, alerts[0].Status)
}

func TestEvaluateExpiring(t *testing.T) {
	tests := []struct {
		name      string
		expiry    *time.Time
		threshold float64
		unit      model.ThresholdUnit
		fires     bool
		wantDays  float64
	}{
		{"four days out within week", timePtr(evalNow.AddDate(0, 0, 4)), 7, model.UnitDays, true, 4},
		{"exactly at threshold fires", timePtr(evalNow.AddDate(0, 0, 7)), 7, model.UnitDays, true, 7},
		{"beyond threshold does not fire", timePtr(evalNow.AddDate(0, 0, 8)), 7, model.UnitDays, false, 0},
		{"expires today is not expiring", timePtr(evalNow), 7, model.UnitDays, false, 0},
		{"already expired is not expiring", timePtr(evalNow.AddDate(0, 0, -1)), 7, model.UnitDays, false, 0},
		{"no expiry date", nil, 7, model.UnitDays, false, 0},
		{"wrong unit never fires", timePtr(evalNow.AddDate(0, 0, 4)), 7, model.UnitQuantity, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(model.AlertTypeExpiring, tt.threshold, tt.unit, model.SeverityLow)
			item := testItem()
			item.ExpiryDate = tt.expiry

			alerts := evaluate(&cfg, []model.InventoryItem{item}, evalNow)
			if !tt.fires {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.wantDays, alerts[0].CurrentValue)
			assert.Equal(t, model.SeverityLow, alerts[0].Severity)
		})
	}
}

func TestEvaluateExpiredForcesCriticalSeverity(t *testing.T) {
	// Config says low; the expired rule overrides to critical regardless.
	cfg := testConfig(model.AlertTypeExpired, 0, model.UnitDays, model.SeverityLow)
	item := testItem()
	item.ExpiryDate = timePtr(evalNow.AddDate(0, 0, -2))

	alerts := evaluate(&cfg, []model.InventoryItem{item}, evalNow)
	require.Len(t, alerts, 1)
	assert.Equal(t, model.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, float64(2), alerts[0].CurrentValue)
	assert.Equal(t, "Expired: Amoxicillin 250mg expired 2 days ago", alerts[0].Message)
}

func TestEvaluateExpiredNotFiredForToday(t *testing.T) {
	cfg := testConfig(model.AlertTypeExpired, 0, model.UnitDays, model.SeverityLow)
	item := testItem()
	item.ExpiryDate = timePtr(evalNow) // expires today, not strictly before

	assert.Empty(t, evaluate(&cfg, []model.InventoryItem{item}, evalNow))
}

func TestEvaluateOverstock(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		threshold float64
		fires     bool
	}{
		{"above threshold fires", 120, 100, true},
		{"equal to threshold fires", 100, 100, true},
		{"below threshold does not fire", 99, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(model.AlertTypeOverstock, tt.threshold, model.UnitQuantity, model.SeverityMedium)
			item := testItem()
			item.QuantityAvailable = tt.quantity

			alerts := evaluate(&cfg, []model.InventoryItem{item}, evalNow)
			if !tt.fires {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			want := fmt.Sprintf("Overstock: Amoxicillin 250mg has %s units (recommended max: %s)",
				formatQty(tt.quantity), formatQty(tt.threshold))
			assert.Equal(t, want, alerts[0].Message)
			assert.Equal(t, tt.quantity, alerts[0].CurrentValue)
		})
	}
}

func TestEvaluateScope(t *testing.T) {
	inScope := testItem()
	otherProduct := testItem()
	otherProduct.ID = "item-2"
	otherProduct.ProductID = "prod-2"
	otherCategory := testItem()
	otherCategory.ID = "item-3"
	otherCategory.ProductID = "prod-3"
	otherCategory.CategoryID = strPtr("cat-vaccines")
	inScope.CategoryID = strPtr("cat-antibiotics")

	items := []model.InventoryItem{inScope, otherProduct, otherCategory}

	t.Run("product scope hits exactly one item", func(t *testing.T) {
		cfg := testConfig(model.AlertTypeLowStock, 5, model.UnitQuantity, model.SeverityMedium)
		cfg.ProductID = strPtr("prod-1")

		alerts := evaluate(&cfg, items, evalNow)
		require.Len(t, alerts, 1)
		assert.Equal(t, "item-1", alerts[0].ItemID)
	})

	t.Run("category scope hits matching category only", func(t *testing.T) {
		cfg := testConfig(model.AlertTypeLowStock, 5, model.UnitQuantity, model.SeverityMedium)
		cfg.CategoryID = strPtr("cat-antibiotics")

		alerts := evaluate(&cfg, items, evalNow)
		require.Len(t, alerts, 1)
		assert.Equal(t, "item-1", alerts[0].ItemID)
	})

	t.Run("tenant-wide scope hits all items", func(t *testing.T) {
		cfg := testConfig(model.AlertTypeLowStock, 5, model.UnitQuantity, model.SeverityMedium)
		assert.Len(t, evaluate(&cfg, items, evalNow), 3)
	})

	t.Run("other tenant never matches", func(t *testing.T) {
		cfg := testConfig(model.AlertTypeLowStock, 5, model.UnitQuantity, model.SeverityMedium)
		cfg.TenantID = "clinic-2"
		assert.Empty(t, evaluate(&cfg, items, evalNow))
	})
}

func TestEvaluateMultipleRulesSameItem(t *testing.T) {
	// Low on stock and expiring at once: both candidates survive, no early exit.
	lowCfg := testConfig(model.AlertTypeLowStock, 5, model.UnitQuantity, model.SeverityMedium)
	expCfg := testConfig(model.AlertTypeExpiring, 7, model.UnitDays, model.SeverityHigh)
	expCfg.ID = "cfg-2"

	item := testItem()
	item.ExpiryDate = timePtr(evalNow.AddDate(0, 0, 3))

	candidates := append(
		evaluate(&lowCfg, []model.InventoryItem{item}, evalNow),
		evaluate(&expCfg, []model.InventoryItem{item}, evalNow)...,
	)
	require.Len(t, candidates, 2)
	assert.NotEqual(t, candidates[0].AlertType, candidates[1].AlertType)
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, 3, 10, 23, 55, 0, 0, time.UTC)
	early := time.Date(2026, 3, 14, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, 4, daysBetween(late, early))
	assert.Equal(t, -4, daysBetween(early, late))
	assert.Equal(t, 0, daysBetween(late, late))
}
