package availability_test

import (
	"sync"
	"testing"
	"time"

	"survey-booking/services/availability"
	"survey-booking/services/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves canned calendars and counts every call, so tests can
// assert which operations reached persistence.
type fakeStore struct {
	mu      sync.Mutex
	booked  []time.Time
	blocked []availability.BlockedEntry

	fetchCalls  int
	toggleCalls int

	// When set, FetchCalendar blocks on this gate after snapshotting its
	// response, so tests can order overlapping fetches.
	fetchGate chan struct{}
}

func (f *fakeStore) FetchCalendar(month time.Month, year int, surveyorID uint) ([]time.Time, []availability.BlockedEntry, error) {
	f.mu.Lock()
	f.fetchCalls++
	booked := append([]time.Time(nil), f.booked...)
	blocked := append([]availability.BlockedEntry(nil), f.blocked...)
	gate := f.fetchGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return booked, blocked, nil
}

func (f *fakeStore) ToggleBlocked(date time.Time, reason, createdBy string, surveyorID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggleCalls++

	for i, e := range f.blocked {
		if e.Date.Equal(date) {
			f.blocked = append(f.blocked[:i], f.blocked[i+1:]...)
			return false, nil
		}
	}
	f.blocked = append(f.blocked, availability.BlockedEntry{Date: date, Reason: reason})
	return true, nil
}

func (f *fakeStore) EnsureSchedulable(date time.Time, surveyorID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.blocked {
		if e.Date.Equal(date) {
			return availability.ErrDateBlocked
		}
	}
	return nil
}

func (f *fakeStore) snapshotCalls() (fetch, toggle int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls, f.toggleCalls
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestView_ToggleBlockedDate_BookedDateRejectedLocally(t *testing.T) {
	booked := day(2100, time.February, 10)
	store := &fakeStore{booked: []time.Time{booked}}
	view := availability.NewView(store, events.NewBus(), 1, time.February, 2100)
	require.NoError(t, view.Refresh())
	require.True(t, view.IsBooked(booked))

	err := view.ToggleBlockedDate(booked, "Off-day", "admin")
	require.ErrorIs(t, err, availability.ErrDateBooked)

	_, toggles := store.snapshotCalls()
	assert.Zero(t, toggles, "booked-date rejection must not reach the store")
	assert.False(t, view.IsBlocked(booked))
}

func TestView_ToggleBlockedDate_PastDateRejectedLocally(t *testing.T) {
	store := &fakeStore{}
	view := availability.NewView(store, events.NewBus(), 1, time.January, 2000)
	require.NoError(t, view.Refresh())

	err := view.ToggleBlockedDate(day(2000, time.January, 5), "Off-day", "admin")
	require.ErrorIs(t, err, availability.ErrPastDate)

	_, toggles := store.snapshotCalls()
	assert.Zero(t, toggles, "past-date rejection must not reach the store")
}

func TestView_ToggleBlockedDate_BlocksAndRefreshes(t *testing.T) {
	target := day(2100, time.February, 11)
	store := &fakeStore{}
	view := availability.NewView(store, events.NewBus(), 1, time.February, 2100)
	require.NoError(t, view.Refresh())

	require.NoError(t, view.ToggleBlockedDate(target, "Off-day", "admin"))
	assert.True(t, view.IsBlocked(target))
	reason, ok := view.BlockedReason(target)
	require.True(t, ok)
	assert.Equal(t, "Off-day", reason)

	// Toggling again unblocks.
	require.NoError(t, view.ToggleBlockedDate(target, "", "admin"))
	assert.False(t, view.IsBlocked(target))
}

func TestView_Refresh_StaleResponseDropped(t *testing.T) {
	stale := day(2100, time.March, 3)
	fresh := day(2100, time.March, 20)

	gate := make(chan struct{})
	store := &fakeStore{booked: []time.Time{stale}, fetchGate: gate}
	view := availability.NewView(store, events.NewBus(), 1, time.March, 2100)

	firstDone := make(chan error, 1)
	go func() { firstDone <- view.Refresh() }()

	// Wait until the slow fetch has snapshotted its (stale) response.
	require.Eventually(t, func() bool {
		fetches, _ := store.snapshotCalls()
		return fetches == 1
	}, time.Second, 5*time.Millisecond)

	// A newer fetch completes while the first is still in flight.
	store.mu.Lock()
	store.booked = []time.Time{fresh}
	store.fetchGate = nil
	store.mu.Unlock()
	require.NoError(t, view.Refresh())

	close(gate)
	require.NoError(t, <-firstDone)

	assert.True(t, view.IsBooked(fresh))
	assert.False(t, view.IsBooked(stale), "stale response must not overwrite newer state")
}

func TestView_Listen_RefreshesOnBroadcast(t *testing.T) {
	store := &fakeStore{}
	bus := events.NewBus()
	view := availability.NewView(store, bus, 1, time.April, 2100)
	require.NoError(t, view.Refresh())

	cancel := view.Listen()
	defer cancel()

	before, _ := store.snapshotCalls()
	bus.Publish(events.Event{Name: events.EventCalendarRefresh, SurveyorID: 1})

	require.Eventually(t, func() bool {
		fetches, _ := store.snapshotCalls()
		return fetches == before+1
	}, time.Second, 5*time.Millisecond)
}

func TestView_Listen_IgnoresOtherSurveyors(t *testing.T) {
	store := &fakeStore{}
	bus := events.NewBus()
	view := availability.NewView(store, bus, 1, time.April, 2100)
	require.NoError(t, view.Refresh())

	cancel := view.Listen()
	defer cancel()

	before, _ := store.snapshotCalls()
	bus.Publish(events.Event{Name: events.EventCalendarRefresh, SurveyorID: 2})

	// Give the listener a chance to (incorrectly) react.
	time.Sleep(50 * time.Millisecond)
	fetches, _ := store.snapshotCalls()
	assert.Equal(t, before, fetches)
}

func TestView_SetMonth_Navigates(t *testing.T) {
	store := &fakeStore{}
	view := availability.NewView(store, events.NewBus(), 0, time.May, 2100)
	require.NoError(t, view.SetMonth(time.June, 2100))

	month, year := view.Month()
	assert.Equal(t, time.June, month)
	assert.Equal(t, 2100, year)
}
