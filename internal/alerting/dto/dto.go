package dto

import "time"

// RunSummary is the only shape callers of the trigger ever see.
type RunSummary struct {
	Success             bool      `json:"success"`
	Message             string    `json:"message"`
	StartedAt           time.Time `json:"started_at"`
	FinishedAt          time.Time `json:"finished_at"`
	TenantsSeen         int       `json:"tenants_seen"`
	TenantsSucceeded    int       `json:"tenants_succeeded"`
	TenantsSkipped      int       `json:"tenants_skipped"`
	ConfigsEvaluated    int       `json:"configs_evaluated"`
	AlertsGenerated     int       `json:"alerts_generated"`
	AlertsSuppressed    int       `json:"alerts_suppressed"`
	NotificationsQueued int       `json:"notifications_queued"`
	NotificationsFailed int       `json:"notifications_failed"`
	MetricsUpserted     int       `json:"metrics_upserted"`
	Errors              []string  `json:"errors,omitempty"`
}
