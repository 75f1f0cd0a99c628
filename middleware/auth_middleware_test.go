package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret, email, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "u-1",
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newGuardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin-only", Protected(), AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendString("admin ok")
	})
	app.Get("/me", Protected(), func(c *fiber.Ctx) error {
		return c.SendString(CurrentEmail(c))
	})
	return app
}

func TestAdminRequired_AllowsAdminRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", "admin@example.com", "admin"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminRequired_RejectsCandidateRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", "candidate@example.com", "candidate"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestProtected_RejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCurrentEmail_ReadsClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", "candidate@example.com", "candidate"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "candidate@example.com", string(body))
}
