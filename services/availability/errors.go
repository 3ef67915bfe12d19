package availability

import "errors"

var (
	// ErrDateBooked means the date carries a scheduled booking and cannot
	// be blocked.
	ErrDateBooked = errors.New("date already has a scheduled booking")

	// ErrDateBlocked means the date is marked as an off-day and cannot take
	// a new booking.
	ErrDateBlocked = errors.New("date is blocked as an off-day")

	// ErrPastDate covers both directions: past days can be neither blocked
	// nor booked.
	ErrPastDate = errors.New("date is in the past")
)
