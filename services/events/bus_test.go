package events_test

import (
	"testing"
	"time"

	"survey-booking/services/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := events.NewBus()

	chA, cancelA := bus.Subscribe(1)
	defer cancelA()
	chB, cancelB := bus.Subscribe(1)
	defer cancelB()

	sent := events.Event{Name: events.EventCalendarRefresh, SurveyorID: 3}
	bus.Publish(sent)

	for _, ch := range []<-chan events.Event{chA, chB} {
		select {
		case got := <-ch:
			assert.Equal(t, sent.Name, got.Name)
			assert.Equal(t, sent.SurveyorID, got.SurveyorID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestBus_CancelClosesChannel(t *testing.T) {
	bus := events.NewBus()

	ch, cancel := bus.Subscribe(1)
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Publishing after cancel must not panic or deliver.
	bus.Publish(events.Event{Name: events.EventBookingCreated})
}

func TestBus_CancelIsIdempotent(t *testing.T) {
	bus := events.NewBus()
	_, cancel := bus.Subscribe(1)
	cancel()
	cancel()
}

func TestBus_FullBufferDoesNotBlockPublisher(t *testing.T) {
	bus := events.NewBus()

	ch, cancel := bus.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Publish(events.Event{Name: events.EventCalendarRefresh})
		bus.Publish(events.Event{Name: events.EventCalendarRefresh})
		bus.Publish(events.Event{Name: events.EventCalendarRefresh})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	// Only the buffered event is retained.
	assert.Len(t, ch, 1)
}
