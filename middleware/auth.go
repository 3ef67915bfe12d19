package middleware

import (
	"survey-booking/constants"

	"github.com/gofiber/fiber/v2"
)

// Permission helper functions to work with existing middleware

// RequirePermissions is a helper function that creates a middleware with specific permissions
func RequirePermissions(permissions ...string) fiber.Handler {
	return IsAuthenticated(permissions)
}

// RequireAnyPermission allows access if user has any of the specified permissions
func RequireAnyPermission(permissions ...string) fiber.Handler {
	allPerms := append(permissions, constants.PermAny)
	return IsAuthenticated(allPerms)
}

// RequireAuthentication only requires valid authentication without specific permissions
func RequireAuthentication() fiber.Handler {
	return IsAuthenticated([]string{constants.PermAny})
}

// CheckPermissionInController checks if user has specific permission within a controller
func CheckPermissionInController(c *fiber.Ctx, requiredPermission string) bool {
	userPermissions, ok := c.Locals("permissions").(map[string]bool)
	if !ok {
		return false
	}
	return userPermissions[requiredPermission]
}

// UserUUID extracts the authenticated user's uuid from the request context.
func UserUUID(c *fiber.Ctx) (string, bool) {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return "", false
	}
	uuid, ok := claims["uuid"].(string)
	return uuid, ok && uuid != ""
}
