package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"survey-booking/database"
	"survey-booking/logger"
	"survey-booking/models/user"
	"survey-booking/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetUserByUUID retrieves a user by their UUID from the database
func GetUserByUUID(uuid string) (*user.User, error) {
	if uuid == "" {
		return nil, errors.New("UUID cannot be empty")
	}

	var userModel user.User
	if err := database.DB.Where("uuid = ?", uuid).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &userModel, nil
}

// ListQuery is the paging/search state every list endpoint reads from the
// query string.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ParseListQuery reads page/limit/search with sane bounds.
func ParseListQuery(c *fiber.Ctx) ListQuery {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return ListQuery{Page: page, Limit: limit, Search: c.Query("search")}
}

// Paginate builds the standard paging envelope.
func Paginate(items interface{}, q ListQuery, total int64) types.PaginatedData {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return types.PaginatedData{
		Items:      items,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// ParseDate parses a calendar day in the API's wire format.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// SendResponseWithLog writes the response and queues a request log entry.
func SendResponseWithLog(c *fiber.Ctx, asyncLogger *logger.AsyncLogger, status int, resp types.ApiResponse) error {
	if asyncLogger != nil {
		respBody, err := json.Marshal(resp)
		if err != nil {
			respBody = []byte("{}")
		}
		asyncLogger.Log(types.LogEntry{
			Method:       c.Method(),
			URL:          c.OriginalURL(),
			RequestBody:  string(c.Body()),
			ResponseBody: string(respBody),
			StatusCode:   status,
			CreatedAt:    time.Now(),
		})
	}
	return c.Status(status).JSON(resp)
}
