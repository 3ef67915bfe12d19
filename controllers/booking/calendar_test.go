package booking_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	bookingController "survey-booking/controllers/booking"
	"survey-booking/services/availability"
	"survey-booking/services/events"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toggleStore serves the blocked-date toggle with a canned outcome.
type toggleStore struct {
	toggleErr   error
	toggleCalls int
}

func (s *toggleStore) FetchCalendar(month time.Month, year int, surveyorID uint) ([]time.Time, []availability.BlockedEntry, error) {
	return nil, nil, nil
}

func (s *toggleStore) ToggleBlocked(date time.Time, reason, createdBy string, surveyorID uint) (bool, error) {
	s.toggleCalls++
	if s.toggleErr != nil {
		return false, s.toggleErr
	}
	return true, nil
}

func (s *toggleStore) EnsureSchedulable(date time.Time, surveyorID uint) error {
	return nil
}

func newToggleApp(store availability.Store, bus *events.Bus) *fiber.App {
	app := fiber.New()
	ctrl := bookingController.NewBookingController(nil, nil, bus, store)
	app.Post("/blocked-dates/toggle", func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"uuid": "admin-uuid"})
		return ctrl.ToggleBlockedDate(c)
	})
	return app
}

func postToggle(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/blocked-dates/toggle", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestToggleBlockedDate_PublishesExactlyOnceOnSuccess(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(4)
	defer cancel()

	store := &toggleStore{}
	app := newToggleApp(store, bus)

	status := postToggle(t, app, `{"date":"2100-02-11","reason":"Off-day"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, store.toggleCalls)

	require.Len(t, ch, 1)
	got := <-ch
	assert.Equal(t, events.EventCalendarRefresh, got.Name)
}

func TestToggleBlockedDate_NoPublishOnRejection(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(4)
	defer cancel()

	store := &toggleStore{toggleErr: availability.ErrDateBooked}
	app := newToggleApp(store, bus)

	status := postToggle(t, app, `{"date":"2100-02-11","reason":"Off-day"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Len(t, ch, 0, "a rejected mutation must not broadcast a refresh")
}

func TestToggleBlockedDate_NoPublishWithoutAuth(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(4)
	defer cancel()

	store := &toggleStore{}
	app := fiber.New()
	ctrl := bookingController.NewBookingController(nil, nil, bus, store)
	app.Post("/blocked-dates/toggle", ctrl.ToggleBlockedDate)

	status := postToggle(t, app, `{"date":"2100-02-11","reason":"Off-day"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Zero(t, store.toggleCalls)
	assert.Len(t, ch, 0)
}
