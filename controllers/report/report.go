package report

import (
	"errors"
	"fmt"
	"time"

	"survey-booking/logger"
	"survey-booking/middleware"
	reportModel "survey-booking/models/report"
	"survey-booking/services/reportexport"
	"survey-booking/types"
	reportTypes "survey-booking/types/report"
	"survey-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportController handles survey report requests
type ReportController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewReportController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ReportController {
	return &ReportController{DB: db, Logger: asyncLogger}
}

func (rc *ReportController) currentUser(c *fiber.Ctx) (string, error) {
	accountUUID, ok := middleware.UserUUID(c)
	if !ok {
		return "", fmt.Errorf("invalid user claims")
	}
	return accountUUID, nil
}

// Create stores a survey report.
func (rc *ReportController) Create(c *fiber.Ctx) error {
	var req reportTypes.ReportCreateRequest
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

	createdBy, err := rc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	record := reportModel.Report{
		ClientID:    req.ClientID,
		BookingID:   req.BookingID,
		Title:       req.Title,
		Content:     req.Content,
		Mouza:       req.Mouza,
		PlotNumber:  req.PlotNumber,
		AreaSqFt:    req.AreaSqFt,
		AreaKatha:   req.AreaKatha,
		AreaDecimal: req.AreaDecimal,
		CreatedBy:   createdBy,
	}
	if req.Notes != "" {
		record.Notes = &req.Notes
	}
	if req.FileURL != "" {
		record.FileURL = &req.FileURL
	}

	if err := rc.DB.Create(&record).Error; err != nil {
		logger.Error("Failed to create report", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save report",
		})
	}

	logger.Success(fmt.Sprintf("Report created successfully with ID: %d", record.ID))
	return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Report created successfully",
		Data:    record,
	})
}

// Index lists reports with search over title, mouza and plot number.
func (rc *ReportController) Index(c *fiber.Ctx) error {
	q := utils.ParseListQuery(c)

	query := rc.DB.Model(&reportModel.Report{}).Preload("Client")
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("title ILIKE ? OR mouza ILIKE ? OR plot_number ILIKE ?", pattern, pattern, pattern)
	}
	if clientID := c.QueryInt("client_id"); clientID > 0 {
		query = query.Where("client_id = ?", clientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count reports", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var reports []reportModel.Report
	if err := query.Order("created_at DESC").Offset(q.Offset()).Limit(q.Limit).Find(&reports).Error; err != nil {
		logger.Error("Failed to list reports", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reports fetched",
		Data:    utils.Paginate(reports, q, total),
	})
}

// Show returns one report.
func (rc *ReportController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid report id",
		})
	}

	var record reportModel.Report
	if err := rc.DB.Preload("Client").Preload("Booking").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Report not found",
			})
		}
		logger.Error("Failed to load report", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Report fetched",
		Data:    record,
	})
}

// Update edits a report.
func (rc *ReportController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid report id",
		})
	}

	var req reportTypes.ReportUpdateRequest
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

	updatedBy, err := rc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	var record reportModel.Report
	if err := rc.DB.First(&record, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Report not found",
		})
	}

	updates := map[string]interface{}{"updated_by": updatedBy}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Content != "" {
		updates["content"] = req.Content
	}
	if req.Mouza != "" {
		updates["mouza"] = req.Mouza
	}
	if req.PlotNumber != "" {
		updates["plot_number"] = req.PlotNumber
	}
	if req.AreaSqFt != nil {
		updates["area_sq_ft"] = *req.AreaSqFt
	}
	if req.AreaKatha != nil {
		updates["area_katha"] = *req.AreaKatha
	}
	if req.AreaDecimal != nil {
		updates["area_decimal"] = *req.AreaDecimal
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.FileURL != "" {
		updates["file_url"] = req.FileURL
	}

	if err := rc.DB.Model(&record).Updates(updates).Error; err != nil {
		logger.Error("Failed to update report", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update report",
		})
	}

	return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Report updated",
		Data:    record,
	})
}

// Delete soft-deletes a report.
func (rc *ReportController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid report id",
		})
	}

	if err := rc.DB.Delete(&reportModel.Report{}, id).Error; err != nil {
		logger.Error("Failed to delete report", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete report",
		})
	}

	return utils.SendResponseWithLog(c, rc.Logger, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Report deleted",
	})
}

// Export downloads the current report list as an Excel workbook, honoring
// the same search filters as Index.
func (rc *ReportController) Export(c *fiber.Ctx) error {
	query := rc.DB.Model(&reportModel.Report{}).Preload("Client").Order("created_at DESC")
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR mouza ILIKE ? OR plot_number ILIKE ?", pattern, pattern, pattern)
	}
	if clientID := c.QueryInt("client_id"); clientID > 0 {
		query = query.Where("client_id = ?", clientID)
	}

	var reports []reportModel.Report
	if err := query.Find(&reports).Error; err != nil {
		logger.Error("Failed to load reports for export", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	payload, err := reportexport.GenerateReportExport(reports)
	if err != nil {
		logger.Error("Failed to generate report export", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to generate export",
		})
	}

	fileName := fmt.Sprintf("survey-reports_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Send(payload)
}
