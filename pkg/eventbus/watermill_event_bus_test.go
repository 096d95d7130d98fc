package eventbus_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/draftflow/draftflow/pkg/channels/gochannel"
	"github.com/draftflow/draftflow/pkg/eventbus"
	"github.com/draftflow/draftflow/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestBus(t *testing.T) *eventbus.WatermillEventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub, slog.Default())
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	t.Parallel()

	bus := setupTestBus(t)

	received := make(chan *events.TriggerSet, 1)

	bus.Handle(events.TriggerSetEvent, func(_ context.Context, event any) error {
		triggerSet, ok := event.(*events.TriggerSet)
		require.True(t, ok)

		received <- triggerSet

		return nil
	})

	require.NoError(t, bus.Subscribe(t.Context()))

	event := events.TriggerSet{
		BaseEvent:   events.NewBaseEvent(events.TriggerSetEvent, "session-1"),
		DraftID:     "draft-1",
		Integration: "github",
		TriggerType: "new_issue",
	}
	require.NoError(t, bus.Publish(t.Context(), "draft-1", event))

	select {
	case got := <-received:
		assert.Equal(t, "session-1", got.SessionID)
		assert.Equal(t, "draft-1", got.DraftID)
		assert.Equal(t, "github", got.Integration)
		assert.Equal(t, "new_issue", got.TriggerType)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledTypeIsAcked(t *testing.T) {
	t.Parallel()

	bus := setupTestBus(t)

	received := make(chan *events.ConversationCompleted, 1)

	bus.Handle(events.ConversationCompletedEvent, func(_ context.Context, event any) error {
		completed, ok := event.(*events.ConversationCompleted)
		require.True(t, ok)

		received <- completed

		return nil
	})

	require.NoError(t, bus.Subscribe(t.Context()))

	// No handler registered for this type; it must be dropped, not wedge the
	// subscriber loop.
	first := events.DraftCreated{
		BaseEvent: events.NewBaseEvent(events.DraftCreatedEvent, "session-1"),
		DraftID:   "draft-1",
	}
	require.NoError(t, bus.Publish(t.Context(), "draft-1", first))

	second := events.ConversationCompleted{
		BaseEvent:   events.NewBaseEvent(events.ConversationCompletedEvent, "session-1"),
		DraftID:     "draft-1",
		ActionCount: 2,
	}
	require.NoError(t, bus.Publish(t.Context(), "draft-1", second))

	select {
	case got := <-received:
		assert.Equal(t, 2, got.ActionCount)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	t.Parallel()

	bus := setupTestBus(t)

	assert.NotEmpty(t, bus.GenerateID())
	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}
