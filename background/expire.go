package background

import (
	"context"
	"time"

	"github.com/RichardKnop/machinery/v1/backends/result"
	"github.com/RichardKnop/machinery/v1/tasks"

	"github.com/bitmark-inc/roadside-api/events"
)

const TaskExpirePendingRequests = "expire_pending_requests"

// ExpirePendingRequests is a background job to cancel the pending requests
// nobody offered to help with in time
func (m *BackgroundManager) ExpirePendingRequests() error {
	if m.expireAfter <= 0 {
		return nil
	}

	now := m.now()
	count, err := m.store.ExpirePendingRequests(now.Add(-m.expireAfter))
	if err != nil {
		log.WithError(err).Error("expire pending requests")
		return err
	}

	log.WithField("count", count).Info("expired pending requests")
	if count > 0 {
		m.publisher.Publish(events.LifecycleEvent{
			Type:       events.RequestsExpired,
			Count:      count,
			OccurredAt: now,
		})
	}

	return nil
}

// TaskSender is the part of the machinery server used to enqueue tasks
type TaskSender interface {
	SendTask(signature *tasks.Signature) (*result.AsyncResult, error)
}

// Schedule enqueues the expiry task every interval until ctx is done
func Schedule(ctx context.Context, sender TaskSender, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sender.SendTask(&tasks.Signature{Name: TaskExpirePendingRequests}); err != nil {
				log.WithError(err).Error("schedule expire pending requests")
			}
		}
	}
}
