package services

import (
	"errors"
	"testing"

	"github.com/maintops/maintops/pkg/dedup"
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/notifier"
	"github.com/maintops/maintops/pkg/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maintops/maintops/pkg/mocks"
)

func intp(v int) *int { return &v }

func newStockScanner(t *testing.T, tracker dedup.Tracker) (*memory.Persistence, *StockScanner) {
	t.Helper()

	store := memory.NewPersistence()
	store.SeedUser(&models.User{Email: "admin1@planta.cl", Role: models.RoleAdmin})

	transport := &mocks.MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).Return(nil).Maybe()

	logger := testLogger()
	engine := notifier.NewEngine(store.Notifications(), transport, logger)
	resolver := notifier.NewUserResolver(store.Users())

	if tracker == nil {
		tracker = dedup.NewStoreTracker(store.Notifications(), models.StockAlertTypes, models.MetadataSparePartID)
	}

	scanner := NewStockScanner(store, engine, resolver, tracker, nil, logger)

	return store, scanner
}

func seedPart(store *memory.Persistence, id, code string, current, minimum *int) {
	store.SeedSparePart(&models.SparePart{
		ID:           id,
		Code:         code,
		Name:         "Repuesto " + code,
		StockCurrent: current,
		StockMinimum: minimum,
		Active:       true,
	})
}

func TestStockScanner_AlertSeverity(t *testing.T) {
	store, scanner := newStockScanner(t, nil)

	seedPart(store, "p1", "ROD-01", intp(0), intp(5))  // out of stock
	seedPart(store, "p2", "FIL-02", intp(3), intp(5))  // low
	seedPart(store, "p3", "ACE-03", intp(10), intp(5)) // healthy
	seedPart(store, "p4", "COR-04", nil, intp(5))      // missing figure, excluded

	result, err := scanner.Run(t.Context(), ScheduledTrigger())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Alerting)
	assert.Equal(t, 2, result.Notified)
	assert.Empty(t, result.AlreadyNotified)
	assert.Equal(t, 2, result.FanOut.NotificationsCreated)
	assert.Equal(t, 2, result.FanOut.EmailsSent)

	byType := map[models.NotificationType]int{}
	for _, n := range store.AllNotifications() {
		byType[n.Type]++
	}

	assert.Equal(t, 1, byType[models.NotificationStockOut])
	assert.Equal(t, 1, byType[models.NotificationStockLow])
}

func TestStockScanner_SecondRunDeduped(t *testing.T) {
	store, scanner := newStockScanner(t, nil)
	seedPart(store, "p1", "ROD-01", intp(2), intp(5))

	first, err := scanner.Run(t.Context(), ScheduledTrigger())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Notified)

	second, err := scanner.Run(t.Context(), ScheduledTrigger())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Alerting)
	assert.Equal(t, 0, second.Notified)
	assert.Equal(t, []string{"ROD-01"}, second.AlreadyNotified)

	// No new notification records appeared on the second run.
	assert.Len(t, store.AllNotifications(), 1)
}

func TestStockScanner_TrackerFailureAbortsScan(t *testing.T) {
	tracker := &mocks.MockTracker{}
	tracker.On("AlreadyNotified", mock.Anything, "p1", StockDedupWindow).
		Return(false, errors.New("redis unavailable"))

	store, scanner := newStockScanner(t, tracker)
	seedPart(store, "p1", "ROD-01", intp(0), intp(5))

	_, err := scanner.Run(t.Context(), ScheduledTrigger())
	require.Error(t, err)
	assert.Empty(t, store.AllNotifications())
}

func TestStockScanner_RememberFailureIsNonFatal(t *testing.T) {
	tracker := &mocks.MockTracker{}
	tracker.On("AlreadyNotified", mock.Anything, "p1", StockDedupWindow).Return(false, nil)
	tracker.On("Remember", mock.Anything, "p1", StockDedupWindow).
		Return(errors.New("redis unavailable"))

	store, scanner := newStockScanner(t, tracker)
	seedPart(store, "p1", "ROD-01", intp(2), intp(5))

	result, err := scanner.Run(t.Context(), ScheduledTrigger())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Notified)
	assert.Len(t, store.AllNotifications(), 1)
}

func TestStockScanner_UserTriggerNeedsPermission(t *testing.T) {
	_, scanner := newStockScanner(t, nil)

	_, err := scanner.Run(t.Context(), UserTrigger(tecnicoCaller))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestStockScanner_MetadataCarriesStockFigures(t *testing.T) {
	store, scanner := newStockScanner(t, nil)
	seedPart(store, "p1", "ROD-01", intp(2), intp(5))

	_, err := scanner.Run(t.Context(), ScheduledTrigger())
	require.NoError(t, err)

	notifications := store.AllNotifications()
	require.Len(t, notifications, 1)

	metadata := notifications[0].Metadata
	assert.Equal(t, "p1", metadata[models.MetadataSparePartID])
	assert.Equal(t, "ROD-01", metadata["code"])
	assert.Equal(t, 2, metadata["stock_actual"])
	assert.Equal(t, 5, metadata["stock_minimo"])
}
