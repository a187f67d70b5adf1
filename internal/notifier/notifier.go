package notifier

import (
	"context"
	"time"
)

// ChannelJob pairs one persisted alert with one delivery channel. Delivery and
// retry semantics belong entirely to the queue's consumer.
type ChannelJob struct {
	AlertID   string    `json:"alert_id"`
	TenantID  string    `json:"tenant_id"`
	Channel   string    `json:"channel"`
	AlertType string    `json:"alert_type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	QueuedAt  time.Time `json:"queued_at"`
}

type Queuer interface {
	Enqueue(ctx context.Context, job ChannelJob) error
}
