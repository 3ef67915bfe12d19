package mapdata

import (
	"errors"
	"fmt"

	"survey-booking/logger"
	"survey-booking/middleware"
	mapModel "survey-booking/models/mapdata"
	"survey-booking/types"
	mapTypes "survey-booking/types/mapdata"
	"survey-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MapDataController persists map features drawn in the dashboard map tool
type MapDataController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewMapDataController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *MapDataController {
	return &MapDataController{DB: db, Logger: asyncLogger}
}

// Create saves a GeoJSON feature.
func (mc *MapDataController) Create(c *fiber.Ctx) error {
	var req mapTypes.MapDataCreateRequest
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

	createdBy := "anonymous"
	if accountUUID, ok := middleware.UserUUID(c); ok {
		createdBy = accountUUID
	}

	record := mapModel.MapData{
		BookingID:  req.BookingID,
		Name:       req.Name,
		GeoJSON:    req.GeoJSON,
		AreaSqM:    req.AreaSqM,
		PerimeterM: req.PerimeterM,
		CreatedBy:  createdBy,
	}

	if err := mc.DB.Create(&record).Error; err != nil {
		logger.Error("Failed to save map data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save map data",
		})
	}

	logger.Success(fmt.Sprintf("Map data saved with ID: %d", record.ID))
	return utils.SendResponseWithLog(c, mc.Logger, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Map data saved",
		Data:    record,
	})
}

// Index lists saved map features.
func (mc *MapDataController) Index(c *fiber.Ctx) error {
	q := utils.ParseListQuery(c)

	query := mc.DB.Model(&mapModel.MapData{})
	if q.Search != "" {
		query = query.Where("name ILIKE ?", "%"+q.Search+"%")
	}
	if bookingID := c.QueryInt("booking_id"); bookingID > 0 {
		query = query.Where("booking_id = ?", bookingID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count map data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var rows []mapModel.MapData
	if err := query.Order("created_at DESC").Offset(q.Offset()).Limit(q.Limit).Find(&rows).Error; err != nil {
		logger.Error("Failed to list map data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Map data fetched",
		Data:    utils.Paginate(rows, q, total),
	})
}

// Show returns one map feature.
func (mc *MapDataController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid map data id",
		})
	}

	var record mapModel.MapData
	if err := mc.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Map data not found",
			})
		}
		logger.Error("Failed to load map data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Map data fetched",
		Data:    record,
	})
}

// Delete removes a map feature.
func (mc *MapDataController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid map data id",
		})
	}

	if err := mc.DB.Delete(&mapModel.MapData{}, id).Error; err != nil {
		logger.Error("Failed to delete map data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete map data",
		})
	}

	return utils.SendResponseWithLog(c, mc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Map data deleted",
	})
}
