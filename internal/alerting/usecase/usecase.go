package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/clinicstock/alert-engine/internal/alerting"
	"github.com/clinicstock/alert-engine/internal/alerting/dto"
	"github.com/clinicstock/alert-engine/internal/inventory"
	"github.com/clinicstock/alert-engine/internal/metrics"
	"github.com/clinicstock/alert-engine/internal/model"
	"github.com/clinicstock/alert-engine/internal/notifier"
	"github.com/clinicstock/alert-engine/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const runLockKey = "stock-alerts:run-lock"

type alertUseCase struct {
	configRepo  alerting.ConfigRepository
	alertRepo   alerting.AlertRepository
	invRepo     inventory.Repository
	metricsUC   metrics.UseCase
	queuer      notifier.Queuer
	locker      alerting.RunLocker
	logger      logger.ZapLogger
	workerCount int
	lockTTL     time.Duration
}

func NewAlertUseCase(
	configRepo alerting.ConfigRepository,
	alertRepo alerting.AlertRepository,
	invRepo inventory.Repository,
	metricsUC metrics.UseCase,
	queuer notifier.Queuer,
	locker alerting.RunLocker,
	log logger.ZapLogger,
	workerCount int,
	lockTTL time.Duration,
) alerting.UseCase {
	if workerCount < 1 {
		workerCount = 1
	}
	return &alertUseCase{
		configRepo:  configRepo,
		alertRepo:   alertRepo,
		invRepo:     invRepo,
		metricsUC:   metricsUC,
		queuer:      queuer,
		locker:      locker,
		logger:      log,
		workerCount: workerCount,
		lockTTL:     lockTTL,
	}
}

// tenantResult is what one tenant worker reports back for the summary.
type tenantResult struct {
	tenantID         string
	skipped          bool
	persistFailed    bool
	configsEvaluated int
	generated        int
	suppressed       int
	queued           int
	queueFailed      int
	metricUpserted   bool
	errs             []string
}

func (uc *alertUseCase) Run(ctx context.Context) (*dto.RunSummary, error) {
	started := time.Now().UTC()

	if uc.locker != nil {
		token := uuid.New().String()
		ok, err := uc.locker.AcquireLock(ctx, runLockKey, token, uc.lockTTL)
		switch {
		case err != nil:
			// The partial unique index on active alerts still guards dedup, so
			// a dead lock backend degrades the run instead of blocking it.
			uc.logger.Warn("run lock unavailable, continuing without it", zap.Error(err))
		case !ok:
			return nil, alerting.ErrRunInProgress
		default:
			defer func() {
				if err := uc.locker.ReleaseLock(context.WithoutCancel(ctx), runLockKey, token); err != nil {
					uc.logger.Warn("failed to release run lock", zap.Error(err))
				}
			}()
		}
	}

	configs, err := uc.configRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active alert configs: %w", err)
	}

	byTenant := make(map[string][]model.AlertConfig)
	for _, c := range configs {
		byTenant[c.TenantID] = append(byTenant[c.TenantID], c)
	}

	uc.logger.Info("alert run started",
		zap.Int("tenants", len(byTenant)),
		zap.Int("active_configs", len(configs)),
	)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]tenantResult, 0, len(byTenant))
		sem     = make(chan struct{}, uc.workerCount)
	)

	for tenantID, tenantConfigs := range byTenant {
		// Cooperative cancellation checkpoint between tenants: committed
		// tenants stay committed, the rest are reported as skipped.
		if ctx.Err() != nil {
			mu.Lock()
			results = append(results, tenantResult{
				tenantID: tenantID,
				skipped:  true,
				errs:     []string{fmt.Sprintf("tenant %s: run cancelled before processing", tenantID)},
			})
			mu.Unlock()
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(tenantID string, cfgs []model.AlertConfig) {
			defer wg.Done()
			defer func() { <-sem }()

			res := uc.processTenant(ctx, tenantID, cfgs, started)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(tenantID, tenantConfigs)
	}
	wg.Wait()

	summary := &dto.RunSummary{
		Success:     true,
		StartedAt:   started,
		TenantsSeen: len(byTenant),
	}
	for _, res := range results {
		if res.skipped {
			summary.TenantsSkipped++
		} else {
			summary.TenantsSucceeded++
		}
		if res.persistFailed {
			summary.Success = false
		}
		summary.ConfigsEvaluated += res.configsEvaluated
		summary.AlertsGenerated += res.generated
		summary.AlertsSuppressed += res.suppressed
		summary.NotificationsQueued += res.queued
		summary.NotificationsFailed += res.queueFailed
		if res.metricUpserted {
			summary.MetricsUpserted++
		}
		summary.Errors = append(summary.Errors, res.errs...)
	}
	sort.Strings(summary.Errors)
	summary.FinishedAt = time.Now().UTC()

	if summary.Success {
		summary.Message = fmt.Sprintf("alert run completed: %d/%d tenants processed, %d alerts generated, %d notifications queued",
			summary.TenantsSucceeded, summary.TenantsSeen, summary.AlertsGenerated, summary.NotificationsQueued)
	} else {
		summary.Message = "alert run completed with alert persistence failures"
	}

	uc.logger.Info("alert run finished",
		zap.Bool("success", summary.Success),
		zap.Int("tenants_seen", summary.TenantsSeen),
		zap.Int("alerts_generated", summary.AlertsGenerated),
		zap.Int("notifications_queued", summary.NotificationsQueued),
		zap.Duration("took", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

func (uc *alertUseCase) processTenant(ctx context.Context, tenantID string, cfgs []model.AlertConfig, now time.Time) tenantResult {
	res := tenantResult{tenantID: tenantID}

	items, err := uc.invRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		uc.logger.Error("inventory read failed, skipping tenant",
			zap.String("tenant_id", tenantID), zap.Error(err))
		res.skipped = true
		res.errs = append(res.errs, fmt.Sprintf("tenant %s: inventory read failed: %v", tenantID, err))
		return res
	}

	var candidates []model.Alert
	for i := range cfgs {
		candidates = append(candidates, evaluate(&cfgs[i], items, now)...)
	}
	res.configsEvaluated = len(cfgs)

	if len(candidates) > 0 {
		uc.persistAndQueue(ctx, tenantID, cfgs, candidates, &res)
	}

	// Metrics run regardless of the alert outcome; failures are surfaced in
	// the summary but never fail the run.
	if _, err := uc.metricsUC.Snapshot(ctx, tenantID, now); err != nil {
		uc.logger.Warn("metrics snapshot failed",
			zap.String("tenant_id", tenantID), zap.Error(err))
		res.errs = append(res.errs, fmt.Sprintf("tenant %s: metrics snapshot failed: %v", tenantID, err))
	} else {
		res.metricUpserted = true
	}

	return res
}

// persistAndQueue dedups candidates against the store, writes the survivors in
// one batch, and queues one notification job per (alert, channel). The dedup
// read happens-before the insert for this tenant within this run.
func (uc *alertUseCase) persistAndQueue(ctx context.Context, tenantID string, cfgs []model.AlertConfig, candidates []model.Alert, res *tenantResult) {
	activeKeys, err := uc.alertRepo.ListActiveKeys(ctx, []string{tenantID})
	if err != nil {
		uc.logger.Error("active alert key read failed",
			zap.String("tenant_id", tenantID), zap.Error(err))
		res.persistFailed = true
		res.errs = append(res.errs, fmt.Sprintf("tenant %s: active alert read failed: %v", tenantID, err))
		return
	}

	fresh := make([]model.Alert, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := activeKeys[c.Key()]; dup {
			res.suppressed++
			continue
		}
		fresh = append(fresh, c)
	}
	if len(fresh) == 0 {
		return
	}

	inserted, err := uc.alertRepo.BatchInsert(ctx, fresh)
	if err != nil {
		uc.logger.Error("alert batch insert failed",
			zap.String("tenant_id", tenantID), zap.Int("alerts", len(fresh)), zap.Error(err))
		res.persistFailed = true
		res.errs = append(res.errs, fmt.Sprintf("tenant %s: alert batch insert failed: %v", tenantID, err))
		return
	}
	res.generated = len(inserted)
	// Rows skipped by the database's conflict backstop are dedup suppressions
	// from a concurrent writer, not failures.
	res.suppressed += len(fresh) - len(inserted)

	configByID := make(map[string]*model.AlertConfig, len(cfgs))
	for i := range cfgs {
		configByID[cfgs[i].ID] = &cfgs[i]
	}

	for i := range inserted {
		a := &inserted[i]
		cfg, ok := configByID[a.ConfigID]
		if !ok {
			continue
		}
		for _, channel := range cfg.Channels {
			job := notifier.ChannelJob{
				AlertID:   a.ID,
				TenantID:  a.TenantID,
				Channel:   channel,
				AlertType: string(a.AlertType),
				Severity:  string(a.Severity),
				Message:   a.Message,
				QueuedAt:  time.Now().UTC(),
			}
			// Enqueue failures never roll back the persisted alert: alert
			// durability outranks notification delivery.
			if err := uc.queuer.Enqueue(ctx, job); err != nil {
				uc.logger.Warn("notification enqueue failed",
					zap.String("tenant_id", a.TenantID),
					zap.String("alert_id", a.ID),
					zap.String("channel", channel),
					zap.Error(err))
				res.queueFailed++
				continue
			}
			res.queued++
		}
	}
}
