package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinicstock/alert-engine/internal/notifier"
	"github.com/clinicstock/alert-engine/pkg/broker"
)

// Queuer publishes notification jobs to the notification topic, keyed by
// tenant so one tenant's jobs stay ordered on a single partition.
type Queuer struct {
	producer *broker.KafkaProducer
}

func NewQueuer(producer *broker.KafkaProducer) *Queuer {
	return &Queuer{producer: producer}
}

func (q *Queuer) Enqueue(ctx context.Context, job notifier.ChannelJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification job: %w", err)
	}
	if err := q.producer.Publish(ctx, []byte(job.TenantID), payload); err != nil {
		return fmt.Errorf("publish notification job: %w", err)
	}
	return nil
}
