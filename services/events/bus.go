package events

import (
	"sync"
	"time"
)

// Event names mirror the signals booking mutations broadcast to calendar
// views elsewhere on the page.
const (
	EventCalendarRefresh = "refresh-calendar"
	EventBookingCreated  = "booking-created"
)

// Event is a calendar-affecting notification.
type Event struct {
	Name       string
	SurveyorID uint
	Date       time.Time
}

// Bus is an in-process pub/sub channel between booking mutation handlers
// (publishers) and availability views (subscribers). It is injected into
// both sides; there is no package-level instance.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel function removes the
// subscription and closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, buffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber. Delivery is best-effort:
// a subscriber with a full buffer misses the event rather than blocking the
// mutation path.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
