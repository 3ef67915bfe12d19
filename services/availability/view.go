package availability

import (
	"fmt"
	"sync"
	"time"

	"survey-booking/logger"
	"survey-booking/services/events"
)

const dayFormat = "2006-01-02"

// View is the availability view-model for one displayed month: the set of
// booked dates and the set of blocked dates, with day-granularity membership
// predicates. It refreshes itself on month navigation and whenever a booking
// mutation publishes on the refresh bus.
type View struct {
	store      Store
	bus        *events.Bus
	surveyorID uint

	mu      sync.Mutex
	month   time.Month
	year    int
	booked  map[string]struct{}
	blocked map[string]string

	// Monotonic fetch fencing: a response from fetch N is discarded when a
	// fetch newer than N has already been applied.
	issued  uint64
	applied uint64

	nowFn func() time.Time
}

// NewView creates a view anchored on the given month. It does not fetch;
// call Refresh (or SetMonth) to populate it.
func NewView(store Store, bus *events.Bus, surveyorID uint, month time.Month, year int) *View {
	return &View{
		store:      store,
		bus:        bus,
		surveyorID: surveyorID,
		month:      month,
		year:       year,
		booked:     make(map[string]struct{}),
		blocked:    make(map[string]string),
		nowFn:      time.Now,
	}
}

// Month returns the currently displayed window.
func (v *View) Month() (time.Month, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.month, v.year
}

// SetMonth navigates the view to another month and re-fetches.
func (v *View) SetMonth(month time.Month, year int) error {
	v.mu.Lock()
	v.month = month
	v.year = year
	v.mu.Unlock()
	return v.Refresh()
}

// Refresh re-fetches both date sets for the current month. On failure the
// prior state is kept. A response that arrives after a newer fetch has been
// applied, or after the window moved, is dropped.
func (v *View) Refresh() error {
	v.mu.Lock()
	v.issued++
	seq := v.issued
	month, year := v.month, v.year
	v.mu.Unlock()

	bookedDates, blockedEntries, err := v.store.FetchCalendar(month, year, v.surveyorID)
	if err != nil {
		return fmt.Errorf("failed to fetch availability: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq <= v.applied {
		return nil // a newer response already landed
	}
	if month != v.month || year != v.year {
		return nil // window moved while the fetch was in flight
	}
	v.applied = seq

	v.booked = make(map[string]struct{}, len(bookedDates))
	for _, d := range bookedDates {
		v.booked[d.Format(dayFormat)] = struct{}{}
	}
	v.blocked = make(map[string]string, len(blockedEntries))
	for _, e := range blockedEntries {
		v.blocked[e.Date.Format(dayFormat)] = e.Reason
	}
	return nil
}

// IsBooked reports whether the day carries a scheduled booking.
func (v *View) IsBooked(d time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.booked[d.Format(dayFormat)]
	return ok
}

// IsBlocked reports whether the day is marked as an off-day.
func (v *View) IsBlocked(d time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.blocked[d.Format(dayFormat)]
	return ok
}

// BlockedReason returns the off-day reason, if the day is blocked.
func (v *View) BlockedReason(d time.Time) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	reason, ok := v.blocked[d.Format(dayFormat)]
	return reason, ok
}

// IsPast reports whether the day is strictly before today.
func (v *View) IsPast(d time.Time) bool {
	today := v.nowFn().Format(dayFormat)
	return d.Format(dayFormat) < today
}

// ToggleBlockedDate blocks or unblocks a day. Booked and past days are
// rejected locally, without touching the store; the store re-checks the
// same invariant for writers that bypass this view. On success the current
// month is re-fetched.
func (v *View) ToggleBlockedDate(d time.Time, reason, createdBy string) error {
	if v.IsBooked(d) {
		return ErrDateBooked
	}
	if v.IsPast(d) {
		return ErrPastDate
	}

	if _, err := v.store.ToggleBlocked(d, reason, createdBy, v.surveyorID); err != nil {
		return err
	}
	return v.Refresh()
}

// Listen subscribes the view to the refresh bus until the cancel function
// returned is called. Events for other surveyors are ignored unless the
// view watches all surveyors (surveyorID 0).
func (v *View) Listen() (cancel func()) {
	ch, unsubscribe := v.bus.Subscribe(8)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range ch {
			if v.surveyorID != 0 && e.SurveyorID != 0 && e.SurveyorID != v.surveyorID {
				continue
			}
			if err := v.Refresh(); err != nil {
				logger.Error("Calendar refresh after broadcast failed", err)
			}
		}
	}()

	return func() {
		unsubscribe()
		<-done
	}
}
