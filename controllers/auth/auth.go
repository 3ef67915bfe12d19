package auth

import (
	"errors"
	"fmt"
	"os"

	"survey-booking/constants"
	"survey-booking/logger"
	"survey-booking/middleware"
	"survey-booking/models/user"
	"survey-booking/types"
	"survey-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, loggerInstance: asyncLogger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Register creates a new account. Public registrations are limited to
// client accounts; surveyor and admin accounts can only be created by an
// admin through the guarded user-creation route.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req types.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Register validation failed", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	if req.Role != "client" && !middleware.CheckPermissionInController(c, constants.PermAdminFull) {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Only admins can create surveyor or admin accounts",
			Status:  fiber.StatusForbidden,
		})
	}

	var existing user.User
	err := h.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "An account with this email already exists",
			Status:  fiber.StatusConflict,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newUser := user.User{
		Uuid:         uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Permissions:  user.StringSlice(constants.RolePermissions[req.Role]),
	}
	if req.Phone != "" {
		newUser.Phone = &req.Phone
	}

	if err := h.db.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success(fmt.Sprintf("User registered successfully with ID: %d", newUser.ID))
	return utils.SendResponseWithLog(c, h.loggerInstance, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Account created successfully",
		Data:    newUser,
	})
}

// Login verifies credentials and returns a token pair. The access token is
// also set as an http-only cookie for the dashboard.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var account user.User
	if err := h.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		// Same message for unknown email and bad password
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	pair, err := middleware.IssueTokenPair(&account)
	if err != nil {
		logger.Error("Failed to issue tokens", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to sign in",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", pair.AccessToken, int(middleware.AccessTokenTTL.Seconds()))
	h.setSecureCookie(c, "refresh", pair.RefreshToken, int(middleware.RefreshTokenTTL.Seconds()))

	logger.Success(fmt.Sprintf("User %d signed in", account.ID))
	return utils.SendResponseWithLog(c, h.loggerInstance, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Signed in successfully",
		Token:   pair.AccessToken,
		Data:    pair,
	})
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req types.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		// Fall back to the refresh cookie
		req.RefreshToken = c.Cookies("refresh")
	}
	if req.RefreshToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Refresh token missing",
			Status:  fiber.StatusUnauthorized,
		})
	}

	accountUUID, err := middleware.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid or expired refresh token",
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := utils.GetUserByUUID(accountUUID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Account no longer exists",
			Status:  fiber.StatusUnauthorized,
		})
	}

	pair, err := middleware.IssueTokenPair(account)
	if err != nil {
		logger.Error("Failed to issue tokens", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to refresh session",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", pair.AccessToken, int(middleware.AccessTokenTTL.Seconds()))
	h.setSecureCookie(c, "refresh", pair.RefreshToken, int(middleware.RefreshTokenTTL.Seconds()))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Session refreshed",
		Token:   pair.AccessToken,
		Data:    pair,
	})
}

// Profile returns the authenticated user's account.
func (h *AuthController) Profile(c *fiber.Ctx) error {
	accountUUID, ok := middleware.UserUUID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := utils.GetUserByUUID(accountUUID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "User not found",
			Status:  fiber.StatusNotFound,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile fetched",
		Data:    account,
	})
}

// LogOut clears the session cookies.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1)
	h.setSecureCookie(c, "refresh", "", -1)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Signed out",
	})
}
