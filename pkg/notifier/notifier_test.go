package notifier

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/maintops/maintops/pkg/mailer"
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maintops/maintops/pkg/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_FanOut(t *testing.T) {
	store := memory.NewPersistence()
	transport := &mocks.MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).Return(nil)

	engine := NewEngine(store.Notifications(), transport, discardLogger())

	result := engine.FanOut(t.Context(), Request{
		Recipients:      []string{"a@planta.cl", "b@planta.cl"},
		Type:            models.NotificationWorkOrderApproved,
		Title:           "Orden aprobada",
		Message:         "La orden ot-1 fue aprobada",
		EmailRecipients: []string{"a@planta.cl"},
	})

	assert.Equal(t, 2, result.NotificationsCreated)
	assert.Equal(t, 1, result.EmailsSent)
	assert.False(t, result.PartialFailure())
	assert.Len(t, store.AllNotifications(), 2)
}

func TestEngine_FanOut_DedupesRecipients(t *testing.T) {
	store := memory.NewPersistence()
	transport := &mocks.MockTransport{}

	engine := NewEngine(store.Notifications(), transport, discardLogger())

	result := engine.FanOut(t.Context(), Request{
		Recipients: []string{"a@planta.cl", "a@planta.cl", "", "b@planta.cl"},
		Type:       models.NotificationWorkOrderAssigned,
		Title:      "Orden asignada",
	})

	assert.Equal(t, 2, result.NotificationsCreated)

	notifications := store.AllNotifications()
	require.Len(t, notifications, 2)

	emails := []string{notifications[0].UserEmail, notifications[1].UserEmail}
	assert.ElementsMatch(t, []string{"a@planta.cl", "b@planta.cl"}, emails)
}

func TestEngine_FanOut_EmailFailureIsIsolated(t *testing.T) {
	store := memory.NewPersistence()
	transport := &mocks.MockTransport{}
	transport.On("Send", mock.Anything, mock.MatchedBy(func(m mailer.Message) bool {
		return m.To == "broken@planta.cl"
	})).Return(errors.New("connection refused"))
	transport.On("Send", mock.Anything, mock.Anything).Return(nil)

	engine := NewEngine(store.Notifications(), transport, discardLogger())

	result := engine.FanOut(t.Context(), Request{
		Recipients:      []string{"ok@planta.cl", "broken@planta.cl"},
		Type:            models.NotificationStockLow,
		Title:           "Stock bajo",
		EmailRecipients: []string{"ok@planta.cl", "broken@planta.cl"},
	})

	// Notifications all land; the failing email does not block the other.
	assert.Equal(t, 2, result.NotificationsCreated)
	assert.Equal(t, 1, result.EmailsSent)
	assert.True(t, result.PartialFailure())

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "broken@planta.cl", result.Failures[0].Recipient)
	assert.Equal(t, "email", result.Failures[0].Stage)
}

func TestEngine_FanOut_NotificationFailureIsIsolated(t *testing.T) {
	repo := &mocks.MockNotificationRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserEmail == "broken@planta.cl"
	})).Return(errors.New("store unavailable"))
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	transport := &mocks.MockTransport{}
	engine := NewEngine(repo, transport, discardLogger())

	result := engine.FanOut(t.Context(), Request{
		Recipients: []string{"broken@planta.cl", "ok@planta.cl"},
		Type:       models.NotificationStockOut,
		Title:      "Repuesto agotado",
	})

	assert.Equal(t, 1, result.NotificationsCreated)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "notification", result.Failures[0].Stage)
}

func TestEngine_FanOut_EmailSubjectFallsBackToTitle(t *testing.T) {
	store := memory.NewPersistence()

	var sent []mailer.Message

	transport := &mocks.MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).(mailer.Message))
		}).
		Return(nil)

	engine := NewEngine(store.Notifications(), transport, discardLogger())

	engine.FanOut(t.Context(), Request{
		Type:            models.NotificationMaintenanceOverdue,
		Title:           "Mantenciones vencidas",
		Message:         "- Equipo A",
		EmailRecipients: []string{"a@planta.cl"},
	})

	require.Len(t, sent, 1)
	assert.Equal(t, "Mantenciones vencidas", sent[0].Subject)
	assert.Equal(t, "- Equipo A", sent[0].Body)
}

func TestResult_Merge(t *testing.T) {
	a := &Result{NotificationsCreated: 2, EmailsSent: 1}
	b := &Result{NotificationsCreated: 1, Failures: []Failure{{Recipient: "x@planta.cl", Stage: "email"}}}

	a.Merge(b)

	assert.Equal(t, 3, a.NotificationsCreated)
	assert.Equal(t, 1, a.EmailsSent)
	assert.Len(t, a.Failures, 1)
	assert.True(t, a.PartialFailure())
}
