package inventory

import (
	"context"

	"github.com/clinicstock/alert-engine/internal/model"
)

type Repository interface {
	// ListByTenant returns the tenant's active inventory rows joined with the
	// product fields rule evaluation needs. Read once per tenant per run.
	ListByTenant(ctx context.Context, tenantID string) ([]model.InventoryItem, error)
}
