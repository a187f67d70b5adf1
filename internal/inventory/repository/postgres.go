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

func (r *PGRepository) ListByTenant(ctx context.Context, tenantID string) ([]model.InventoryItem, error) {
	query := `
        SELECT
            i.id,
            i.tenant_id,
            i.product_id,
            p.category_id,
            p.name AS product_name,
            i.quantity_available,
            i.min_stock_level,
            i.max_stock_level,
            i.unit_cost,
            p.expiry_date
        FROM inventory_items i
        JOIN products p ON p.id = i.product_id
        WHERE i.tenant_id = $1
          AND i.is_active = true
    `

	items := []model.InventoryItem{}
	err := r.DB.SelectContext(ctx, &items, query, tenantID)
	return items, err
}
