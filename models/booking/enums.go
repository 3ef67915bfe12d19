package booking

// BookingStatus is the lifecycle state of a survey appointment.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusScheduled BookingStatus = "scheduled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusScheduled, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once a booking can no longer change status.
// Completed bookings are immutable history.
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusCompleted || bs == BookingStatusCancelled
}

// CanTransitionTo reports whether a status change is allowed. Transitions
// are one-directional: pending -> scheduled/cancelled,
// scheduled -> completed/cancelled. There is no un-complete.
func (bs BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch bs {
	case BookingStatusPending:
		return next == BookingStatusScheduled || next == BookingStatusCancelled
	case BookingStatusScheduled:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	default:
		return false
	}
}

// MarksDateBooked reports whether a booking in this status occupies its
// date on the availability calendar.
func (bs BookingStatus) MarksDateBooked() bool {
	return bs == BookingStatusScheduled
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusScheduled,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}
