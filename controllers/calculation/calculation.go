package calculation

import (
	"fmt"

	"survey-booking/logger"
	"survey-booking/middleware"
	calcModel "survey-booking/models/calculation"
	"survey-booking/services/landcalc"
	"survey-booking/types"
	calcTypes "survey-booking/types/calculation"
	"survey-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CalculationController handles the land-area calculator
type CalculationController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewCalculationController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *CalculationController {
	return &CalculationController{DB: db, Logger: asyncLogger}
}

// Create computes the area from the four side lengths and saves the run.
func (cc *CalculationController) Create(c *fiber.Ctx) error {
	var req calcTypes.CalculationRequest
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

	result, err := landcalc.Area(req.NorthFt, req.SouthFt, req.EastFt, req.WestFt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	createdBy := "anonymous"
	if accountUUID, ok := middleware.UserUUID(c); ok {
		createdBy = accountUUID
	}

	record := calcModel.Calculation{
		BookingID:   req.BookingID,
		NorthFt:     req.NorthFt,
		SouthFt:     req.SouthFt,
		EastFt:      req.EastFt,
		WestFt:      req.WestFt,
		AreaSqFt:    result.AreaSqFt,
		AreaKatha:   result.AreaKatha,
		AreaDecimal: result.AreaDecimal,
		CreatedBy:   createdBy,
	}

	if err := cc.DB.Create(&record).Error; err != nil {
		logger.Error("Failed to save calculation", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save calculation",
		})
	}

	logger.Success(fmt.Sprintf("Calculation saved with ID: %d (%.2f sq ft)", record.ID, record.AreaSqFt))
	return utils.SendResponseWithLog(c, cc.Logger, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Calculation saved",
		Data:    record,
	})
}

// Index lists past calculator runs, newest first.
func (cc *CalculationController) Index(c *fiber.Ctx) error {
	q := utils.ParseListQuery(c)

	query := cc.DB.Model(&calcModel.Calculation{})
	if bookingID := c.QueryInt("booking_id"); bookingID > 0 {
		query = query.Where("booking_id = ?", bookingID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count calculations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var calculations []calcModel.Calculation
	if err := query.Order("created_at DESC").Offset(q.Offset()).Limit(q.Limit).Find(&calculations).Error; err != nil {
		logger.Error("Failed to list calculations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Calculations fetched",
		Data:    utils.Paginate(calculations, q, total),
	})
}
