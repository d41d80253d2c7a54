package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tripautostrade/area-directory/internal/delivery/http/middleware"
)

func TestLogger_RequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	app := fiber.New()
	app.Use(middleware.Logger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString(middleware.RequestID(c))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	req := httptest.NewRequest("GET", "/ok", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(middleware.RequestIDHeader))

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(middleware.RequestIDHeader), 36)

	_, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)

	require.Equal(t, 3, logs.Len())
	assert.Equal(t, "Request handled", logs.All()[0].Message)
	assert.Equal(t, "abc-123", logs.All()[0].ContextMap()["request_id"])
	assert.Equal(t, "Request rejected", logs.All()[2].Message)
}

func TestRecovery(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Recovery())
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CORS("https://tripautostrade.it"))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://tripautostrade.it")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "https://tripautostrade.it", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
