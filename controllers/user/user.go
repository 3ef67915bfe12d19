package user

import (
	"survey-booking/constants"
	"survey-booking/logger"
	userModel "survey-booking/models/user"
	"survey-booking/types"
	"survey-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{DB: db, Logger: asyncLogger}
}

// Surveyors lists accounts holding the surveyor permission so bookings
// can be assigned from a dropdown.
func (uc *UserController) Surveyors(c *fiber.Ctx) error {
	q := utils.ParseListQuery(c)

	query := uc.DB.Model(&userModel.User{}).
		Where("permissions::text LIKE ?", "%"+constants.PermSurveyorFull+"%")
	if q.Search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?", "%"+q.Search+"%", "%"+q.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count surveyors", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var surveyors []userModel.User
	if err := query.Order("name ASC").Offset(q.Offset()).Limit(q.Limit).Find(&surveyors).Error; err != nil {
		logger.Error("Failed to list surveyors", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Surveyors fetched",
		Data:    utils.Paginate(surveyors, q, total),
	})
}
