package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicstock/alert-engine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...zap.Field) {}
func (nopLogger) Info(string, ...zap.Field)  {}
func (nopLogger) Warn(string, ...zap.Field)  {}
func (nopLogger) Error(string, ...zap.Field) {}
func (nopLogger) Fatal(string, ...zap.Field) {}
func (nopLogger) Sync() error                { return nil }

type fakeInventoryRepo struct {
	items []model.InventoryItem
	err   error
}

func (f *fakeInventoryRepo) ListByTenant(ctx context.Context, tenantID string) ([]model.InventoryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type metricKey struct {
	tenantID string
	date     time.Time
}

type fakeMetricRepo struct {
	rows    map[metricKey]model.DailyMetric
	upserts int
}

func newFakeMetricRepo() *fakeMetricRepo {
	return &fakeMetricRepo{rows: make(map[metricKey]model.DailyMetric)}
}

func (f *fakeMetricRepo) Upsert(ctx context.Context, m *model.DailyMetric) error {
	f.rows[metricKey{tenantID: m.TenantID, date: m.MetricDate}] = *m
	f.upserts++
	return nil
}

func item(qty, minStock, cost float64) model.InventoryItem {
	return model.InventoryItem{
		TenantID:          "clinic-1",
		QuantityAvailable: qty,
		MinStockLevel:     minStock,
		UnitCost:          cost,
	}
}

func TestSnapshotComputesTotalValueAndAccuracy(t *testing.T) {
	invRepo := &fakeInventoryRepo{items: []model.InventoryItem{
		item(10, 5, 2),  // value 20, at/above min
		item(3, 10, 10), // value 30, below min
		item(0, 0, 99),  // value 0, 0 >= 0 counts as accurate
	}}
	repo := newFakeMetricRepo()
	uc := NewMetricsUseCase(invRepo, repo, nopLogger{})

	m, err := uc.Snapshot(context.Background(), "clinic-1", time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, float64(50), m.TotalInventoryValue)
	assert.InDelta(t, 100.0*2.0/3.0, m.StockAccuracyPct, 0.0001)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), m.MetricDate)
	assert.Zero(t, m.TurnoverRate)
	assert.Zero(t, m.WasteValue)
	assert.Zero(t, m.WastePct)
}

func TestSnapshotEmptyInventoryYieldsZeroAccuracy(t *testing.T) {
	uc := NewMetricsUseCase(&fakeInventoryRepo{}, newFakeMetricRepo(), nopLogger{})

	m, err := uc.Snapshot(context.Background(), "clinic-1", time.Now())
	require.NoError(t, err)
	assert.Zero(t, m.StockAccuracyPct)
	assert.Zero(t, m.TotalInventoryValue)
}

func TestSnapshotUpsertIsIdempotentPerDate(t *testing.T) {
	invRepo := &fakeInventoryRepo{items: []model.InventoryItem{item(10, 5, 2)}}
	repo := newFakeMetricRepo()
	uc := NewMetricsUseCase(invRepo, repo, nopLogger{})
	date := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	_, err := uc.Snapshot(context.Background(), "clinic-1", date)
	require.NoError(t, err)

	// Inventory moved between runs; the same (tenant, date) row is overwritten.
	invRepo.items = []model.InventoryItem{item(20, 5, 2)}
	_, err = uc.Snapshot(context.Background(), "clinic-1", date.Add(8*time.Hour))
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	row := repo.rows[metricKey{tenantID: "clinic-1", date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}]
	assert.Equal(t, float64(40), row.TotalInventoryValue)
	assert.Equal(t, 2, repo.upserts)
}

func TestSnapshotPropagatesInventoryError(t *testing.T) {
	uc := NewMetricsUseCase(&fakeInventoryRepo{err: errors.New("timeout")}, newFakeMetricRepo(), nopLogger{})
	_, err := uc.Snapshot(context.Background(), "clinic-1", time.Now())
	assert.Error(t, err)
}
