package booking

import (
	"errors"
	"fmt"
	"time"

	"survey-booking/logger"
	"survey-booking/models/blockeddate"
	"survey-booking/services/availability"
	"survey-booking/services/events"
	"survey-booking/types"
	bookingTypes "survey-booking/types/booking"
	"survey-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// Calendar returns the booked and blocked dates for one month, the payload
// the dashboard calendar renders its markers from.
func (bc *BookingController) Calendar(c *fiber.Ctx) error {
	month := c.QueryInt("month")
	year := c.QueryInt("year")
	if month < 1 || month > 12 || year < 2000 || year > 2200 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "month and year are required",
		})
	}
	surveyorID := uint(0)
	if id := c.QueryInt("surveyor_id"); id > 0 {
		surveyorID = uint(id)
	}

	booked, blocked, err := bc.Store.FetchCalendar(time.Month(month), year, surveyorID)
	if err != nil {
		logger.Error("Failed to fetch calendar", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch calendar",
		})
	}

	bookedDates := make([]string, 0, len(booked))
	for _, d := range booked {
		bookedDates = append(bookedDates, d.Format("2006-01-02"))
	}
	type blockedDate struct {
		Date   string `json:"date"`
		Reason string `json:"reason,omitempty"`
	}
	blockedDates := make([]blockedDate, 0, len(blocked))
	for _, e := range blocked {
		blockedDates = append(blockedDates, blockedDate{
			Date:   e.Date.Format("2006-01-02"),
			Reason: e.Reason,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Calendar fetched",
		Data: fiber.Map{
			"month":         month,
			"year":          year,
			"booked_dates":  bookedDates,
			"blocked_dates": blockedDates,
		},
	})
}

// ToggleBlockedDate marks a day as an off-day, or clears the mark if it is
// already set. Booked and past dates are refused by the availability store.
func (bc *BookingController) ToggleBlockedDate(c *fiber.Ctx) error {
	var req bookingTypes.ToggleBlockedDateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	createdBy, err := bc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	day, err := utils.ParseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid date",
		})
	}

	surveyorID := uint(0)
	if id := c.QueryInt("surveyor_id"); id > 0 {
		surveyorID = uint(id)
	}

	nowBlocked, err := bc.Store.ToggleBlocked(day, req.Reason, createdBy, surveyorID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrDateBooked), errors.Is(err, availability.ErrPastDate):
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: err.Error(),
			})
		default:
			logger.Error("Failed to toggle blocked date", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to toggle blocked date",
			})
		}
	}

	bc.Bus.Publish(events.Event{
		Name:       events.EventCalendarRefresh,
		SurveyorID: surveyorID,
		Date:       day,
	})

	message := "Date unblocked"
	if nowBlocked {
		message = "Date blocked"
	}
	logger.Success(fmt.Sprintf("%s: %s", message, req.Date))
	return utils.SendResponseWithLog(c, bc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data: fiber.Map{
			"date":    req.Date,
			"blocked": nowBlocked,
		},
	})
}

// ListBlockedDates lists all off-days, optionally for one surveyor.
func (bc *BookingController) ListBlockedDates(c *fiber.Ctx) error {
	query := bc.DB.Model(&blockeddate.BlockedDate{}).Order("date ASC")
	if id := c.QueryInt("surveyor_id"); id > 0 {
		query = query.Where("surveyor_id = ?", id)
	}

	var rows []blockeddate.BlockedDate
	if err := query.Find(&rows).Error; err != nil {
		logger.Error("Failed to list blocked dates", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Blocked dates fetched",
		Data:    rows,
	})
}
