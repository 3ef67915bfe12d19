package booking_event

import (
	bookingModel "survey-booking/models/booking"

	"gorm.io/gorm"
)

// RecordStatusTransition writes one BookingStatusEvent row for a transition.
// Call inside the same transaction that updates the booking so the history
// never diverges from the row it describes.
func RecordStatusTransition(tx *gorm.DB, b *bookingModel.Booking, from, to bookingModel.BookingStatus, updatedBy string) error {
	ev := bookingModel.BookingStatusEvent{
		BookingID:     b.ID,
		FromStatus:    from,
		ToStatus:      to,
		ScheduledDate: b.ScheduledDate,
		CreatedBy:     updatedBy,
	}
	return tx.Create(&ev).Error
}

// RecordReschedule snapshots a date change without a status change.
func RecordReschedule(tx *gorm.DB, b *bookingModel.Booking, updatedBy string) error {
	return RecordStatusTransition(tx, b, b.Status, b.Status, updatedBy)
}
