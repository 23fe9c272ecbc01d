// Package dedup suppresses repeat alerts for the same subject inside a
// lookback window.
package dedup

import (
	"context"
	"time"

	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/persistence"
)

// Tracker decides whether an alert for a subject was already raised inside
// the window. Remember records a raised alert for trackers that keep their
// own state; implementations backed by the notification store treat the
// created records themselves as the memory and make Remember a no-op.
type Tracker interface {
	AlreadyNotified(ctx context.Context, subjectID string, window time.Duration) (bool, error)
	Remember(ctx context.Context, subjectID string, window time.Duration) error
}

// StoreTracker reads recent notification records to decide whether a subject
// was already alerted. No locking: a duplicate alert under a racing scan is
// recoverable and low-cost.
type StoreTracker struct {
	notifications persistence.NotificationRepository
	types         []models.NotificationType
	metadataKey   string
	now           func() time.Time
}

// NewStoreTracker creates a tracker scanning the given alert category, with
// the subject identifier read from the given metadata key.
func NewStoreTracker(notifications persistence.NotificationRepository, types []models.NotificationType, metadataKey string) *StoreTracker {
	return &StoreTracker{
		notifications: notifications,
		types:         types,
		metadataKey:   metadataKey,
		now:           time.Now,
	}
}

// AlreadyNotified reports whether any notification of the tracked category
// created within the window references the subject.
func (t *StoreTracker) AlreadyNotified(ctx context.Context, subjectID string, window time.Duration) (bool, error) {
	since := t.now().Add(-window)

	recent, err := t.notifications.ListByTypesSince(ctx, t.types, since)
	if err != nil {
		return false, err
	}

	for _, notification := range recent {
		if notification.SubjectID(t.metadataKey) == subjectID {
			return true, nil
		}
	}

	return false, nil
}

// Remember is a no-op: the notification records written by the fan-out
// engine are the tracker's memory.
func (t *StoreTracker) Remember(_ context.Context, _ string, _ time.Duration) error {
	return nil
}
