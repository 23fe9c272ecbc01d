package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/maintops/maintops/pkg/channels/gochannel"
	"github.com/maintops/maintops/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *WatermillEventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	return NewWatermillEventBus(pub, sub)
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan *events.WorkOrderApproved, 1)

	err := bus.Handle(events.WorkOrderApprovedEvent, func(ctx context.Context, event any) error {
		approved, ok := event.(*events.WorkOrderApproved)
		require.True(t, ok)
		received <- approved

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(t.Context()))

	err = bus.Publish(t.Context(), "ot-1", events.WorkOrderApproved{
		BaseEvent: events.BaseEvent{
			ID:        "evt-1",
			Type:      events.WorkOrderApprovedEvent,
			Timestamp: time.Now().UTC(),
		},
		WorkOrderID: "ot-1",
		Actor:       "admin@planta.cl",
		AssignedTo:  "tecnico@planta.cl",
	})
	require.NoError(t, err)

	select {
	case event := <-received:
		assert.Equal(t, "ot-1", event.WorkOrderID)
		assert.Equal(t, "admin@planta.cl", event.Actor)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledTypeIsAcked(t *testing.T) {
	bus := newTestBus(t)

	require.NoError(t, bus.Subscribe(t.Context()))

	// No handler for this type; the message must be acked, not redelivered.
	err := bus.Publish(t.Context(), "stock", events.StockScanCompleted{
		BaseEvent: events.BaseEvent{
			ID:   "evt-2",
			Type: events.StockScanCompletedEvent,
		},
	})
	require.NoError(t, err)
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
