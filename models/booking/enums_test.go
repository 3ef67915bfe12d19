package booking_test

import (
	"testing"

	"survey-booking/models/booking"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    booking.BookingStatus
		to      booking.BookingStatus
		allowed bool
	}{
		{booking.BookingStatusPending, booking.BookingStatusScheduled, true},
		{booking.BookingStatusPending, booking.BookingStatusCancelled, true},
		{booking.BookingStatusPending, booking.BookingStatusCompleted, false},
		{booking.BookingStatusScheduled, booking.BookingStatusCompleted, true},
		{booking.BookingStatusScheduled, booking.BookingStatusCancelled, true},
		{booking.BookingStatusScheduled, booking.BookingStatusPending, false},
		{booking.BookingStatusCompleted, booking.BookingStatusScheduled, false},
		{booking.BookingStatusCompleted, booking.BookingStatusCancelled, false},
		{booking.BookingStatusCancelled, booking.BookingStatusPending, false},
		{booking.BookingStatusCancelled, booking.BookingStatusScheduled, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equalf(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, booking.BookingStatusPending.IsTerminal())
	assert.False(t, booking.BookingStatusScheduled.IsTerminal())
	assert.True(t, booking.BookingStatusCompleted.IsTerminal())
	assert.True(t, booking.BookingStatusCancelled.IsTerminal())
}

func TestBookingStatus_MarksDateBooked(t *testing.T) {
	for _, status := range booking.GetAllBookingStatuses() {
		assert.Equal(t, status == booking.BookingStatusScheduled, status.MarksDateBooked())
	}
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, status := range booking.GetAllBookingStatuses() {
		assert.True(t, status.IsValid())
	}
	assert.False(t, booking.BookingStatus("archived").IsValid())
}
