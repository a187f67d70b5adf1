package alerting

import (
	"context"
	"errors"
	"time"

	"github.com/clinicstock/alert-engine/internal/alerting/dto"
)

// ErrRunInProgress is returned when another run currently holds the run lock.
var ErrRunInProgress = errors.New("an alert run is already in progress")

type UseCase interface {
	// Run executes one full evaluation pass over all tenants with active
	// configs and reports what happened. Per-tenant failures are folded into
	// the summary; only a failed config read or an unavailable lock aborts.
	Run(ctx context.Context) (*dto.RunSummary, error)
}

// RunLocker serializes runs so overlapping triggers cannot race the
// dedup-read-then-persist window. pkg/cache.RedisClient implements it.
type RunLocker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
