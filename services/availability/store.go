package availability

import (
	"errors"
	"fmt"
	"time"

	"survey-booking/models/blockeddate"
	bookingModel "survey-booking/models/booking"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// BlockedEntry is one off-day with its optional reason.
type BlockedEntry struct {
	Date   time.Time
	Reason string
}

// Store is the persistence boundary of the availability view. It owns both
// date sets, so the "a blocked date cannot carry a scheduled booking"
// invariant is checked here, once, for every caller.
type Store interface {
	FetchCalendar(month time.Month, year int, surveyorID uint) (booked []time.Time, blocked []BlockedEntry, err error)
	ToggleBlocked(date time.Time, reason, createdBy string, surveyorID uint) (nowBlocked bool, err error)
	EnsureSchedulable(date time.Time, surveyorID uint) error
}

// GormStore implements Store on the bookings and blocked_dates tables.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FetchCalendar returns the scheduled-booking dates and blocked dates inside
// the given month. surveyorID 0 means all surveyors.
func (s *GormStore) FetchCalendar(month time.Month, year int, surveyorID uint) ([]time.Time, []BlockedEntry, error) {
	anchor := now.New(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	from := anchor.BeginningOfMonth()
	to := anchor.EndOfMonth()

	bookingQuery := s.db.Model(&bookingModel.Booking{}).
		Where("status = ?", bookingModel.BookingStatusScheduled).
		Where("scheduled_date BETWEEN ? AND ?", from, to)
	if surveyorID != 0 {
		bookingQuery = bookingQuery.Where("surveyor_id = ?", surveyorID)
	}

	var bookedDates []time.Time
	if err := bookingQuery.Pluck("scheduled_date", &bookedDates).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load booked dates: %w", err)
	}

	blockedQuery := s.db.Model(&blockeddate.BlockedDate{}).
		Where("date BETWEEN ? AND ?", from, to)
	if surveyorID != 0 {
		blockedQuery = blockedQuery.Where("surveyor_id = ?", surveyorID)
	}

	var rows []blockeddate.BlockedDate
	if err := blockedQuery.Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load blocked dates: %w", err)
	}

	blocked := make([]BlockedEntry, 0, len(rows))
	for _, row := range rows {
		entry := BlockedEntry{Date: row.Date}
		if row.Reason != nil {
			entry.Reason = *row.Reason
		}
		blocked = append(blocked, entry)
	}

	return bookedDates, blocked, nil
}

// ToggleBlocked blocks the date if it is free, unblocks it if it is already
// blocked. Blocking is refused for past dates and for dates carrying a
// scheduled booking; unblocking is always allowed.
func (s *GormStore) ToggleBlocked(date time.Time, reason, createdBy string, surveyorID uint) (bool, error) {
	day := now.New(date).BeginningOfDay()

	var existing blockeddate.BlockedDate
	err := s.db.Where("surveyor_id = ? AND date = ?", surveyorID, day).First(&existing).Error
	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return true, fmt.Errorf("failed to unblock date: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up blocked date: %w", err)
	}

	if err := s.ensureBlockable(day, surveyorID); err != nil {
		return false, err
	}

	entry := blockeddate.BlockedDate{
		SurveyorID: surveyorID,
		Date:       day,
		CreatedBy:  createdBy,
	}
	if reason != "" {
		entry.Reason = &reason
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return false, fmt.Errorf("failed to block date: %w", err)
	}
	return true, nil
}

// isPastDay compares at day granularity. The parsed date is UTC midnight
// while the server clock may sit in another zone, so both sides reduce to
// their calendar-day strings.
func isPastDay(day time.Time) bool {
	return day.Format(dayFormat) < time.Now().Format(dayFormat)
}

// ensureBlockable is the single home of the blocked-excludes-booked check.
func (s *GormStore) ensureBlockable(day time.Time, surveyorID uint) error {
	if isPastDay(day) {
		return ErrPastDate
	}

	var count int64
	query := s.db.Model(&bookingModel.Booking{}).
		Where("status = ?", bookingModel.BookingStatusScheduled).
		Where("scheduled_date = ?", day)
	if surveyorID != 0 {
		query = query.Where("surveyor_id = ?", surveyorID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check bookings on date: %w", err)
	}
	if count > 0 {
		return ErrDateBooked
	}
	return nil
}

// EnsureSchedulable is the mirror check used by booking creation and
// reschedule: the target day must not be in the past or blocked.
func (s *GormStore) EnsureSchedulable(date time.Time, surveyorID uint) error {
	day := now.New(date).BeginningOfDay()
	if isPastDay(day) {
		return ErrPastDate
	}

	var count int64
	query := s.db.Model(&blockeddate.BlockedDate{}).Where("date = ?", day)
	if surveyorID != 0 {
		query = query.Where("surveyor_id = ?", surveyorID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check blocked dates: %w", err)
	}
	if count > 0 {
		return ErrDateBlocked
	}
	return nil
}
