package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-activities-api/internal/models"
)

func newRoleApp(username, role string, gate fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if username != "" {
			c.Locals(localUsername, username)
		}
		if role != "" {
			c.Locals(localUserRole, role)
		}
		return c.Next()
	})
	app.Use(gate)
	app.Get("/staff", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRoleAllowsAuthorizedRoles(t *testing.T) {
	for _, role := range []string{"Admin", "teacher"} {
		app := newRoleApp("mrs.lee", role, RequireRole(models.RoleAdmin, models.RoleTeacher))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/staff", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, role)
	}
}

func TestRequireRoleRejectsUnauthorizedRoles(t *testing.T) {
	app := newRoleApp("ana", "Student", StaffOnly())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/staff", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	app := newRoleApp("", "Admin", AdminOnly())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/staff", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminOnlyRejectsTeachers(t *testing.T) {
	app := newRoleApp("mrs.lee", "Teacher", AdminOnly())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/staff", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
