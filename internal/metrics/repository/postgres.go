package repository

import (
	"context"

	"github.com/clinicstock/alert-engine/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Upsert(ctx context.Context, m *model.DailyMetric) error {
	query := `
        INSERT INTO performance_metrics (
            tenant_id, metric_date, total_inventory_value, stock_accuracy_pct,
            turnover_rate, waste_value, waste_pct, updated_at
        )
        VALUES (
            :tenant_id, :metric_date, :total_inventory_value, :stock_accuracy_pct,
            :turnover_rate, :waste_value, :waste_pct, :updated_at
        )
        ON CONFLICT (tenant_id, metric_date)
        DO UPDATE SET
            total_inventory_value = EXCLUDED.total_inventory_value,
            stock_accuracy_pct = EXCLUDED.stock_accuracy_pct,
            turnover_rate = EXCLUDED.turnover_rate,
            waste_value = EXCLUDED.waste_value,
            waste_pct = EXCLUDED.waste_pct,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, m)
	return err
}
