package metrics

import (
	"context"

	"github.com/clinicstock/alert-engine/internal/model"
)

type Repository interface {
	// Upsert writes the metric row keyed by (tenant_id, metric_date),
	// overwriting any row from an earlier run on the same date.
	Upsert(ctx context.Context, m *model.DailyMetric) error
}
