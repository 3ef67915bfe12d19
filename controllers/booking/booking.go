package booking

import (
	"errors"
	"fmt"
	"time"

	"survey-booking/logger"
	"survey-booking/middleware"
	bookingModel "survey-booking/models/booking"
	clientModel "survey-booking/models/client"
	"survey-booking/services/availability"
	bookingEvent "survey-booking/services/booking_event"
	"survey-booking/services/events"
	"survey-booking/types"
	bookingTypes "survey-booking/types/booking"
	"survey-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Bus    *events.Bus
	Store  availability.Store
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger, bus *events.Bus, store availability.Store) *BookingController {
	return &BookingController{
		DB:     db,
		Logger: asyncLogger,
		Bus:    bus,
		Store:  store,
	}
}

// currentUser is the audit identity for mutations, taken from the verified
// token claims.
func (bc *BookingController) currentUser(c *fiber.Ctx) (string, error) {
	accountUUID, ok := middleware.UserUUID(c)
	if !ok {
		return "", fmt.Errorf("invalid user claims")
	}
	return accountUUID, nil
}

// Create stores a new booking request in pending status.
func (bc *BookingController) Create(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
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

	scheduledDate, err := utils.ParseDate(req.ScheduledDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid scheduled_date",
		})
	}

	// Requested dates must be open: not in the past, not an off-day.
	if err := bc.Store.EnsureSchedulable(scheduledDate, req.SurveyorID); err != nil {
		return bc.availabilityError(c, err)
	}

	var existing clientModel.Client
	if err := bc.DB.First(&existing, req.ClientID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Unknown client",
		})
	}

	newBooking := bookingModel.Booking{
		SurveyorID:      req.SurveyorID,
		ClientID:        req.ClientID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledDate:   scheduledDate,
		Status:          bookingModel.BookingStatusPending,
		PropertyAddress: req.PropertyAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		AmountDue:       req.AmountDue,
		CreatedBy:       createdBy,
	}
	if req.ScheduledTime != "" {
		newBooking.ScheduledTime = &req.ScheduledTime
	}

	if err := bc.DB.Create(&newBooking).Error; err != nil {
		logger.Error("Failed to create booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save booking",
		})
	}

	bc.Bus.Publish(events.Event{
		Name:       events.EventBookingCreated,
		SurveyorID: newBooking.SurveyorID,
		Date:       newBooking.ScheduledDate,
	})

	var created bookingModel.Booking
	if err := bc.DB.Preload("Surveyor").Preload("Client").First(&created, newBooking.ID).Error; err != nil {
		logger.Error("Failed to load created booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Booking created but failed to retrieve complete data",
		})
	}

	logger.Success(fmt.Sprintf("Booking created successfully with ID: %d", created.ID))
	return utils.SendResponseWithLog(c, bc.Logger, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    created,
	})
}

// Index lists bookings, filtered by tab (pending/upcoming/completed/
// cancelled), free-text search and pagination.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	q := utils.ParseListQuery(c)
	tab := c.Query("tab", "all")

	query := bc.DB.Model(&bookingModel.Booking{}).Preload("Surveyor").Preload("Client")

	switch tab {
	case "pending":
		query = query.Where("status = ?", bookingModel.BookingStatusPending)
	case "upcoming":
		query = query.Where("status = ? AND scheduled_date >= ?",
			bookingModel.BookingStatusScheduled, time.Now().Format("2006-01-02"))
	case "completed":
		query = query.Where("status = ?", bookingModel.BookingStatusCompleted)
	case "cancelled":
		query = query.Where("status = ?", bookingModel.BookingStatusCancelled)
	case "all":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Unknown tab",
		})
	}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("title ILIKE ? OR property_address ILIKE ?", pattern, pattern)
	}
	if surveyorID := c.QueryInt("surveyor_id"); surveyorID > 0 {
		query = query.Where("surveyor_id = ?", surveyorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var bookings []bookingModel.Booking
	if err := query.Order("scheduled_date ASC").Offset(q.Offset()).Limit(q.Limit).Find(&bookings).Error; err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings fetched",
		Data:    utils.Paginate(bookings, q, total),
	})
}

// Show returns one booking with its status history.
func (bc *BookingController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	var record bookingModel.Booking
	if err := bc.DB.Preload("Surveyor").Preload("Client").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		}
		logger.Error("Failed to load booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var history []bookingModel.BookingStatusEvent
	if err := bc.DB.Where("booking_id = ?", record.ID).Order("created_at ASC").Find(&history).Error; err != nil {
		logger.Error("Failed to load booking history", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking fetched",
		Data: fiber.Map{
			"booking": record,
			"history": history,
		},
	})
}

// Update edits booking details. Dates and status are changed through the
// Reschedule and Transition endpoints; completed bookings are immutable.
func (bc *BookingController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	var req bookingTypes.BookingUpdateRequest
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

	updatedBy, err := bc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	var record bookingModel.Booking
	if err := bc.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Booking not found",
		})
	}

	if record.Status == bookingModel.BookingStatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Completed bookings cannot be edited",
		})
	}

	updates := map[string]interface{}{"updated_by": updatedBy}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.PropertyAddress != "" {
		updates["property_address"] = req.PropertyAddress
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.AmountDue != nil {
		updates["amount_due"] = *req.AmountDue
	}

	if err := bc.DB.Model(&record).Updates(updates).Error; err != nil {
		logger.Error("Failed to update booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update booking",
		})
	}

	return utils.SendResponseWithLog(c, bc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking updated",
		Data:    record,
	})
}

// Transition applies one status change: approve a pending request
// (-> scheduled), cancel, or mark complete with payment capture. Each
// successful transition records a status event and broadcasts exactly one
// calendar refresh.
func (bc *BookingController) Transition(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	var req bookingTypes.StatusTransitionRequest
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

	updatedBy, err := bc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	var record bookingModel.Booking
	if err := bc.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Booking not found",
		})
	}

	next := bookingModel.BookingStatus(req.Status)
	if !record.Status.CanTransitionTo(next) {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: fmt.Sprintf("Cannot move a %s booking to %s", record.Status, next),
		})
	}

	// Approving a pending request occupies the date, so the date must
	// still be open.
	if next == bookingModel.BookingStatusScheduled {
		if err := bc.Store.EnsureSchedulable(record.ScheduledDate, record.SurveyorID); err != nil {
			return bc.availabilityError(c, err)
		}
	}

	from := record.Status
	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     next,
			"updated_by": updatedBy,
		}
		if next == bookingModel.BookingStatusCompleted {
			updates["amount_received"] = req.AmountReceived
			if req.PaymentNote != "" {
				updates["payment_note"] = req.PaymentNote
			}
		}
		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			return err
		}
		record.Status = next
		return bookingEvent.RecordStatusTransition(tx, &record, from, next, updatedBy)
	})
	if err != nil {
		logger.Error("Failed to apply status transition", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update booking status",
		})
	}

	bc.Bus.Publish(events.Event{
		Name:       events.EventCalendarRefresh,
		SurveyorID: record.SurveyorID,
		Date:       record.ScheduledDate,
	})

	logger.Success(fmt.Sprintf("Booking %d moved from %s to %s", record.ID, from, next))
	return utils.SendResponseWithLog(c, bc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking status updated",
		Data:    record,
	})
}

// Reschedule moves a pending or scheduled booking to a new date/time. The
// request must carry the confirmation flag; the target day must be open.
func (bc *BookingController) Reschedule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	var req bookingTypes.RescheduleRequest
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

	updatedBy, err := bc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	var record bookingModel.Booking
	if err := bc.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Booking not found",
		})
	}

	if record.Status.IsTerminal() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: fmt.Sprintf("A %s booking cannot be rescheduled", record.Status),
		})
	}

	newDate, err := utils.ParseDate(req.ScheduledDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid scheduled_date",
		})
	}

	if err := bc.Store.EnsureSchedulable(newDate, record.SurveyorID); err != nil {
		return bc.availabilityError(c, err)
	}

	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"scheduled_date": newDate,
			"updated_by":     updatedBy,
		}
		if req.ScheduledTime != "" {
			updates["scheduled_time"] = req.ScheduledTime
		}
		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			return err
		}
		record.ScheduledDate = newDate
		return bookingEvent.RecordReschedule(tx, &record, updatedBy)
	})
	if err != nil {
		logger.Error("Failed to reschedule booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to reschedule booking",
		})
	}

	bc.Bus.Publish(events.Event{
		Name:       events.EventCalendarRefresh,
		SurveyorID: record.SurveyorID,
		Date:       newDate,
	})

	logger.Success(fmt.Sprintf("Booking %d rescheduled to %s", record.ID, req.ScheduledDate))
	return utils.SendResponseWithLog(c, bc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking rescheduled",
		Data:    record,
	})
}

// availabilityError maps the availability sentinel errors to client errors.
func (bc *BookingController) availabilityError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, availability.ErrDateBlocked),
		errors.Is(err, availability.ErrDateBooked),
		errors.Is(err, availability.ErrPastDate):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: err.Error(),
	})
}
