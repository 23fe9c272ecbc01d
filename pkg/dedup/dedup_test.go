package dedup

import (
	"testing"
	"time"

	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAlert(t *testing.T, store *memory.Persistence, id, partID string, notificationType models.NotificationType, createdAt time.Time) {
	t.Helper()

	err := store.Notifications().Create(t.Context(), &models.Notification{
		ID:        id,
		UserEmail: "admin@planta.cl",
		Type:      notificationType,
		Metadata:  map[string]any{models.MetadataSparePartID: partID},
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
}

func TestStoreTracker_AlreadyNotified(t *testing.T) {
	store := memory.NewPersistence()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tracker := NewStoreTracker(store.Notifications(), models.StockAlertTypes, models.MetadataSparePartID)
	tracker.now = func() time.Time { return now }

	seedAlert(t, store, "n1", "p1", models.NotificationStockLow, now.Add(-2*time.Hour))
	seedAlert(t, store, "n2", "p2", models.NotificationStockOut, now.Add(-30*time.Hour))

	notified, err := tracker.AlreadyNotified(t.Context(), "p1", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, notified)

	// p2's alert fell out of the 24h window.
	notified, err = tracker.AlreadyNotified(t.Context(), "p2", 24*time.Hour)
	require.NoError(t, err)
	assert.False(t, notified)

	notified, err = tracker.AlreadyNotified(t.Context(), "p3", 24*time.Hour)
	require.NoError(t, err)
	assert.False(t, notified)
}

func TestStoreTracker_IgnoresOtherNotificationTypes(t *testing.T) {
	store := memory.NewPersistence()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tracker := NewStoreTracker(store.Notifications(), models.StockAlertTypes, models.MetadataSparePartID)
	tracker.now = func() time.Time { return now }

	seedAlert(t, store, "n1", "p1", models.NotificationWorkOrderApproved, now.Add(-time.Hour))

	notified, err := tracker.AlreadyNotified(t.Context(), "p1", 24*time.Hour)
	require.NoError(t, err)
	assert.False(t, notified)
}

func TestStoreTracker_RememberIsNoOp(t *testing.T) {
	store := memory.NewPersistence()
	tracker := NewStoreTracker(store.Notifications(), models.StockAlertTypes, models.MetadataSparePartID)

	err := tracker.Remember(t.Context(), "p1", 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, store.AllNotifications())
}
