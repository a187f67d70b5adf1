package metrics

import (
	"context"
	"time"

	"github.com/clinicstock/alert-engine/internal/model"
)

type UseCase interface {
	// Snapshot recomputes the tenant's daily metric row from the current
	// inventory and upserts it. Safe to retry: same (tenant, date) key.
	Snapshot(ctx context.Context, tenantID string, date time.Time) (*model.DailyMetric, error)
}
