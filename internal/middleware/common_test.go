package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/escolalab/escolar-api/internal/middleware"
)

func TestRegisterStampsCorrelationAndCORSHeaders(t *testing.T) {
	app := fiber.New()
	logger := zerolog.Nop()
	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: "https://app.escolar.test"})
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.escolar.test")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))
	require.Equal(t, "https://app.escolar.test", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRegisterKeepsIncomingCorrelationID(t *testing.T) {
	app := fiber.New()
	middleware.Register(app, middleware.Config{})
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Correlation-ID", "req-12345")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "req-12345", resp.Header.Get("X-Correlation-ID"))
}
