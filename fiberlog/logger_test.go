package fiberlog

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newTestApp(logger *logrus.Logger) *fiber.App {
	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagMethod, TagPath, TagStatus, TagBody, TagResBody, TagUserID},
	}))
	app.Post("/ok", func(c *fiber.Ctx) error {
		c.Locals(TagUserID, "user-1")
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("not found")
	})
	return app
}

func TestLogger(t *testing.T) {
	t.Run(`success is logged as info with tags`, func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		app := newTestApp(logger)
		req := httptest.NewRequest(fiber.MethodPost, "/ok", strings.NewReader(`{"a":1}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		_, err := app.Test(req)
		require.NoError(t, err)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.InfoLevel, entry.Level)
		require.Equal(t, "api request", entry.Message)
		require.Equal(t, "POST", entry.Data[TagMethod])
		require.Equal(t, "/ok", entry.Data[TagPath])
		require.Equal(t, fiber.StatusOK, entry.Data[TagStatus])
		require.Equal(t, `{"a":1}`, entry.Data[TagBody])
		require.Equal(t, `{"status":"ok"}`, entry.Data[TagResBody])
		require.Equal(t, "user-1", entry.Data[TagUserID])
	})

	t.Run(`error status is logged as warn, plain body skipped`, func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		app := newTestApp(logger)
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
		require.NoError(t, err)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.WarnLevel, entry.Level)
		_, ok := entry.Data[TagResBody]
		require.False(t, ok)
		_, ok = entry.Data[TagUserID]
		require.False(t, ok)
	})

	t.Run(`multipart body is not logged`, func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		app := newTestApp(logger)
		req := httptest.NewRequest(fiber.MethodPost, "/ok", strings.NewReader("--x--"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEMultipartForm+"; boundary=x")
		_, err := app.Test(req)
		require.NoError(t, err)

		_, ok := hook.LastEntry().Data[TagBody]
		require.False(t, ok)
	})
}

func TestSkipPaths(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: []string{TagPath}, SkipPaths: []string{"/health"}}))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Empty(t, hook.AllEntries())
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", maxBodyLen+10)
	require.Equal(t, maxBodyLen+3, len(truncate([]byte(long))))
	require.Equal(t, "short", truncate([]byte("short")))
}
