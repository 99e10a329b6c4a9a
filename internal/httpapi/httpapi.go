// Package httpapi serves a Calculator over HTTP with JSON bodies.
package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/zephyrtronium/procalc/internal/service"
)

// New creates the HTTP application. Routes:
//
//	POST /api/v1/evaluate       evaluate and record in history
//	POST /api/v1/preview        evaluate without recording
//	GET  /api/v1/history        list history, oldest first
//	POST /api/v1/history/clear  clear history
//	GET  /api/v1/memory         read the memory register
//	POST /api/v1/memory         apply a memory operation
//	GET  /health                liveness
func New(calc *service.Calculator, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "procalc",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})
	app.Use(withLogging(logger), recover.New())

	h := &handler{calc: calc, logger: logger}
	app.Get("/health", health)

	v1 := app.Group("/api/v1")
	v1.Post("/evaluate", h.evaluate)
	v1.Post("/preview", h.preview)
	v1.Get("/history", h.history)
	v1.Post("/history/clear", h.clearHistory)
	v1.Get("/memory", h.memory)
	v1.Post("/memory", h.applyMemory)

	return app
}

// withLogging writes one access log record per request.
func withLogging(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Render now so the logged status is the one sent.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				return herr
			}
		}
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", c.IP()),
		)
		return nil
	}
}
