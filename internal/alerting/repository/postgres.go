package repository

import (
	"context"
	"strings"

	"github.com/clinicstock/alert-engine/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGConfigRepository struct {
	DB *sqlx.DB
}

func NewPGConfigRepository(db *sqlx.DB) *PGConfigRepository {
	return &PGConfigRepository{DB: db}
}

func (r *PGConfigRepository) ListActive(ctx context.Context) ([]model.AlertConfig, error) {
	configs := []model.AlertConfig{}
	query := `SELECT * FROM alert_configs WHERE is_active = true ORDER BY tenant_id, created_at`
	err := r.DB.SelectContext(ctx, &configs, query)
	return configs, err
}

type PGAlertRepository struct {
	DB *sqlx.DB
}

func NewPGAlertRepository(db *sqlx.DB) *PGAlertRepository {
	return &PGAlertRepository{DB: db}
}

func (r *PGAlertRepository) ListActiveKeys(ctx context.Context, tenantIDs []string) (map[model.AlertKey]struct{}, error) {
	keys := make(map[model.AlertKey]struct{})
	if len(tenantIDs) == 0 {
		return keys, nil
	}

	query, args, err := sqlx.In(`
        SELECT tenant_id, item_id, alert_type FROM alerts
        WHERE status = 'active' AND tenant_id IN (?)
    `, tenantIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var rows []struct {
		TenantID  string          `db:"tenant_id"`
		ItemID    string          `db:"item_id"`
		AlertType model.AlertType `db:"alert_type"`
	}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		keys[model.AlertKey{TenantID: row.TenantID, ItemID: row.ItemID, AlertType: row.AlertType}] = struct{}{}
	}
	return keys, nil
}

func (r *PGAlertRepository) BatchInsert(ctx context.Context, alerts []model.Alert) ([]model.Alert, error) {
	if len(alerts) == 0 {
		return nil, nil
	}

	valueRows := make([]string, 0, len(alerts))
	args := make([]interface{}, 0, len(alerts)*12)
	for _, a := range alerts {
		valueRows = append(valueRows, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			a.ID, a.TenantID, a.ItemID, a.ProductID, a.ConfigID,
			a.AlertType, a.Severity, a.CurrentValue, a.ThresholdValue,
			a.Message, a.Status, a.CreatedAt,
		)
	}

	// The partial unique index on (tenant_id, item_id, alert_type) WHERE
	// status = 'active' is the write-time dedup backstop; rows already active
	// are skipped, not duplicated.
	query := `
        INSERT INTO alerts (
            id, tenant_id, item_id, product_id, config_id,
            alert_type, severity, current_value, threshold_value,
            message, status, created_at
        )
        VALUES ` + strings.Join(valueRows, ", ") + `
        ON CONFLICT (tenant_id, item_id, alert_type) WHERE status = 'active'
        DO NOTHING
        RETURNING id
    `
	query = r.DB.Rebind(query)

	var insertedIDs []string
	if err := r.DB.SelectContext(ctx, &insertedIDs, query, args...); err != nil {
		return nil, err
	}

	idSet := make(map[string]struct{}, len(insertedIDs))
	for _, id := range insertedIDs {
		idSet[id] = struct{}{}
	}

	inserted := make([]model.Alert, 0, len(insertedIDs))
	for _, a := range alerts {
		if _, ok := idSet[a.ID]; ok {
			inserted = append(inserted, a)
		}
	}
	return inserted, nil
}
