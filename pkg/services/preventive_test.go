package services

import (
	"testing"
	"time"

	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/notifier"
	"github.com/maintops/maintops/pkg/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maintops/maintops/pkg/mocks"
)

var scanClock = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func newPreventiveScanner(t *testing.T) (*memory.Persistence, *PreventiveScanner) {
	t.Helper()

	store := memory.NewPersistence()
	store.SeedUser(&models.User{Email: "admin1@planta.cl", Role: models.RoleAdmin})
	store.SeedUser(&models.User{Email: "admin2@planta.cl", Role: models.RoleAdmin})

	transport := &mocks.MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).Return(nil).Maybe()

	logger := testLogger()
	engine := notifier.NewEngine(store.Notifications(), transport, logger)
	resolver := notifier.NewUserResolver(store.Users())

	scanner := NewPreventiveScanner(store, engine, resolver, nil, logger)
	scanner.WithClock(func() time.Time { return scanClock })

	return store, scanner
}

func seedEquipment(store *memory.Persistence, id string, status models.EquipmentStatus, due *time.Time) {
	store.SeedEquipment(&models.Equipment{
		ID:                 id,
		Name:               "Equipo " + id,
		InternalNumber:     "EQ-" + id,
		Status:             status,
		NextMaintenanceDue: due,
	})
}

func daysFromScan(days int) *time.Time {
	d := scanClock.AddDate(0, 0, days)

	return &d
}

func TestPreventiveScanner_Partition(t *testing.T) {
	store, scanner := newPreventiveScanner(t)

	seedEquipment(store, "e1", models.EquipmentStatusOperativo, daysFromScan(-1))   // overdue
	seedEquipment(store, "e2", models.EquipmentStatusOperativo, daysFromScan(0))    // due today, due-soon
	seedEquipment(store, "e3", models.EquipmentStatusOperativo, daysFromScan(7))    // horizon edge, due-soon
	seedEquipment(store, "e4", models.EquipmentStatusOperativo, daysFromScan(8))    // beyond horizon
	seedEquipment(store, "e5", models.EquipmentStatusFueraServicio, daysFromScan(-30)) // exempt
	seedEquipment(store, "e6", models.EquipmentStatusOperativo, nil)                // unscheduled

	result, err := scanner.Run(t.Context(), ScheduledTrigger())
	require.NoError(t, err)

	require.Len(t, result.Overdue, 1)
	assert.Equal(t, "e1", result.Overdue[0].ID)

	require.Len(t, result.DueSoon, 2)
	assert.Equal(t, "e2", result.DueSoon[0].ID)
	assert.Equal(t, "e3", result.DueSoon[1].ID)

	// One aggregated overdue notification and one aggregated reminder per
	// admin, never one per equipment.
	assert.Equal(t, 4, result.FanOut.NotificationsCreated)
	assert.Equal(t, 2, result.FanOut.EmailsSent)

	byType := map[models.NotificationType]int{}
	for _, n := range store.AllNotifications() {
		byType[n.Type]++
	}

	assert.Equal(t, 2, byType[models.NotificationMaintenanceOverdue])
	assert.Equal(t, 2, byType[models.NotificationMaintenanceReminder])
}

func TestPreventiveScanner_NothingDue(t *testing.T) {
	store, scanner := newPreventiveScanner(t)
	seedEquipment(store, "e1", models.EquipmentStatusOperativo, daysFromScan(30))

	result, err := scanner.Run(t.Context(), ScheduledTrigger())
	require.NoError(t, err)

	assert.Empty(t, result.Overdue)
	assert.Empty(t, result.DueSoon)
	assert.Empty(t, store.AllNotifications())
}

func TestPreventiveScanner_UserTriggerNeedsPermission(t *testing.T) {
	_, scanner := newPreventiveScanner(t)

	_, err := scanner.Run(t.Context(), UserTrigger(tecnicoCaller))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)

	result, err := scanner.Run(t.Context(), UserTrigger(supervisorCaller))
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestPreventiveScanner_AggregatedMessageListsEquipment(t *testing.T) {
	store, scanner := newPreventiveScanner(t)
	seedEquipment(store, "e1", models.EquipmentStatusOperativo, daysFromScan(-3))
	seedEquipment(store, "e2", models.EquipmentStatusEnMantencion, daysFromScan(-1))

	result, err := scanner.Run(t.Context(), ScheduledTrigger())
	require.NoError(t, err)
	require.Len(t, result.Overdue, 2)

	notifications := store.AllNotifications()
	require.NotEmpty(t, notifications)
	assert.Contains(t, notifications[0].Message, "Equipo e1")
	assert.Contains(t, notifications[0].Message, "Equipo e2")
}
