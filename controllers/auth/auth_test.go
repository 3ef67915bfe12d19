package auth_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	authController "survey-booking/controllers/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Public registration must not mint privileged accounts; the role guard
// rejects admin and surveyor roles before any database work.
func TestRegister_PublicCannotCreatePrivilegedAccounts(t *testing.T) {
	app := fiber.New()
	ctrl := authController.NewAuthController(nil, nil)
	app.Post("/api/auth/register", ctrl.Register)

	for _, role := range []string{"admin", "surveyor"} {
		t.Run(role, func(t *testing.T) {
			body := `{"name":"Mallory","email":"mallory@example.com","password":"hunter2hunter2","role":"` + role + `"}`
			req := httptest.NewRequest(fiber.MethodPost, "/api/auth/register", strings.NewReader(body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	app := fiber.New()
	ctrl := authController.NewAuthController(nil, nil)
	app.Post("/api/auth/register", ctrl.Register)

	body := `{"name":"Mallory","email":"mallory@example.com","password":"hunter2hunter2","role":"superuser"}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
