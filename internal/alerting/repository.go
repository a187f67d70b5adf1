package alerting

import (
	"context"

	"github.com/clinicstock/alert-engine/internal/model"
)

type ConfigRepository interface {
	// ListActive returns every active alert config across all tenants.
	// A failure here is fatal for the whole run.
	ListActive(ctx context.Context) ([]model.AlertConfig, error)
}

type AlertRepository interface {
	// ListActiveKeys returns the dedup keys of all currently active alerts for
	// the given tenants in a single batched read.
	ListActiveKeys(ctx context.Context, tenantIDs []string) (map[model.AlertKey]struct{}, error)

	// BatchInsert writes the candidates in one statement and returns the rows
	// actually inserted. Candidates colliding with an existing active alert on
	// (tenant_id, item_id, alert_type) are skipped by the database backstop.
	BatchInsert(ctx context.Context, alerts []model.Alert) ([]model.Alert, error)
}
