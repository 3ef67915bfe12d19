package dashboard

import (
	"time"

	"survey-booking/logger"
	bookingModel "survey-booking/models/booking"
	clientModel "survey-booking/models/client"
	reportModel "survey-booking/models/report"
	"survey-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// DashboardController serves the admin landing page stats
type DashboardController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewDashboardController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *DashboardController {
	return &DashboardController{DB: db, Logger: asyncLogger}
}

// Stats returns booking counts by status, this month's revenue and the
// most recent bookings.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	statusCounts := make(map[string]int64, 4)
	for _, status := range bookingModel.GetAllBookingStatuses() {
		var count int64
		if err := dc.DB.Model(&bookingModel.Booking{}).Where("status = ?", status).Count(&count).Error; err != nil {
			logger.Error("Failed to count bookings by status", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Database error",
			})
		}
		statusCounts[status.String()] = count
	}

	var clientCount int64
	if err := dc.DB.Model(&clientModel.Client{}).Count(&clientCount).Error; err != nil {
		logger.Error("Failed to count clients", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var reportCount int64
	if err := dc.DB.Model(&reportModel.Report{}).Count(&reportCount).Error; err != nil {
		logger.Error("Failed to count reports", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	// Revenue = payments captured on completions this month
	monthStart := now.BeginningOfMonth()
	monthEnd := now.EndOfMonth()
	var monthlyRevenue float64
	err := dc.DB.Model(&bookingModel.Booking{}).
		Where("status = ?", bookingModel.BookingStatusCompleted).
		Where("updated_at BETWEEN ? AND ?", monthStart, monthEnd).
		Select("COALESCE(SUM(amount_received), 0)").
		Scan(&monthlyRevenue).Error
	if err != nil {
		logger.Error("Failed to compute monthly revenue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var recent []bookingModel.Booking
	if err := dc.DB.Preload("Client").Order("created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		logger.Error("Failed to load recent bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard stats fetched",
		Data: fiber.Map{
			"bookings_by_status": statusCounts,
			"total_clients":      clientCount,
			"total_reports":      reportCount,
			"monthly_revenue":    monthlyRevenue,
			"recent_bookings":    recent,
			"generated_at":       time.Now(),
		},
	})
}
