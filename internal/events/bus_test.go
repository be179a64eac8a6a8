package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop(), 1)

	received := make(chan Event, 1)
	bus.Subscribe(KindMemberUpdated, func(ctx context.Context, e Event) {
		received <- e
	})
	bus.Start()
	defer bus.Stop()

	memberID := uuid.New()
	bus.Publish(Event{Kind: KindMemberUpdated, MemberID: memberID})

	select {
	case e := <-received:
		require.Equal(t, memberID, e.MemberID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestBusStopDrainsQueue(t *testing.T) {
	bus := NewBus(zap.NewNop(), 2)

	handled := make(chan struct{}, 100)
	bus.Subscribe(KindLogsRecorded, func(ctx context.Context, e Event) {
		handled <- struct{}{}
	})

	// Queue everything before the workers start, then stop immediately. Stop
	// must not return until the queue is empty.
	for i := 0; i < 50; i++ {
		bus.Publish(Event{Kind: KindLogsRecorded})
	}
	bus.Start()
	bus.Stop()

	require.Len(t, handled, 50)
}

func TestBusRecoversFromHandlerPanic(t *testing.T) {
	bus := NewBus(zap.NewNop(), 1)

	received := make(chan Event, 2)
	bus.Subscribe(KindIngredientsCreated, func(ctx context.Context, e Event) {
		if len(e.Ingredients) == 0 {
			panic("no ingredients")
		}
		received <- e
	})
	bus.Start()

	bus.Publish(Event{Kind: KindIngredientsCreated})
	bus.Publish(Event{Kind: KindIngredientsCreated, Ingredients: []IngredientSnapshot{{ID: uuid.New(), Name: "milk"}}})
	bus.Stop()

	require.Len(t, received, 1)
}

func TestBusIgnoresUnsubscribedKinds(t *testing.T) {
	bus := NewBus(zap.NewNop(), 1)
	bus.Start()

	bus.Publish(Event{Kind: KindMemberUpdated})
	bus.Stop()
}
