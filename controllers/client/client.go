package client

import (
	"errors"
	"fmt"

	"survey-booking/logger"
	clientModel "survey-booking/models/client"
	"survey-booking/types"
	clientTypes "survey-booking/types/client"
	"survey-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClientController handles client directory requests
type ClientController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewClientController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ClientController {
	return &ClientController{DB: db, Logger: asyncLogger}
}

// Create adds a client to the directory.
func (cc *ClientController) Create(c *fiber.Ctx) error {
	var req clientTypes.ClientCreateRequest
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

	record := clientModel.Client{
		Name:  req.Name,
		Phone: req.Phone,
	}
	if req.Email != "" {
		record.Email = &req.Email
	}
	if req.Address != "" {
		record.Address = &req.Address
	}

	if err := cc.DB.Create(&record).Error; err != nil {
		logger.Error("Failed to create client", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save client",
		})
	}

	logger.Success(fmt.Sprintf("Client created successfully with ID: %d", record.ID))
	return utils.SendResponseWithLog(c, cc.Logger, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Client created successfully",
		Data:    record,
	})
}

// Index lists clients with search and pagination.
func (cc *ClientController) Index(c *fiber.Ctx) error {
	q := utils.ParseListQuery(c)

	query := cc.DB.Model(&clientModel.Client{})
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count clients", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var clients []clientModel.Client
	if err := query.Order("name ASC").Offset(q.Offset()).Limit(q.Limit).Find(&clients).Error; err != nil {
		logger.Error("Failed to list clients", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Clients fetched",
		Data:    utils.Paginate(clients, q, total),
	})
}

// Show returns one client.
func (cc *ClientController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid client id",
		})
	}

	var record clientModel.Client
	if err := cc.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Client not found",
			})
		}
		logger.Error("Failed to load client", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Client fetched",
		Data:    record,
	})
}

// Update edits a client record.
func (cc *ClientController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid client id",
		})
	}

	var req clientTypes.ClientUpdateRequest
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

	var record clientModel.Client
	if err := cc.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Client not found",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}

	if len(updates) > 0 {
		if err := cc.DB.Model(&record).Updates(updates).Error; err != nil {
			logger.Error("Failed to update client", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update client",
			})
		}
	}

	return utils.SendResponseWithLog(c, cc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Client updated",
		Data:    record,
	})
}

// Delete soft-deletes a client that has no bookings.
func (cc *ClientController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid client id",
		})
	}

	var bookingCount int64
	if err := cc.DB.Table("bookings").Where("client_id = ? AND deleted_at IS NULL", id).Count(&bookingCount).Error; err != nil {
		logger.Error("Failed to check client bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
	if bookingCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Client has bookings and cannot be deleted",
		})
	}

	if err := cc.DB.Delete(&clientModel.Client{}, id).Error; err != nil {
		logger.Error("Failed to delete client", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete client",
		})
	}

	return utils.SendResponseWithLog(c, cc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Client deleted",
	})
}
