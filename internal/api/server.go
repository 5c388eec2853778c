package api

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// ServerOptions configures NewApp.
type ServerOptions struct {
	// MaxUploadMB caps the request body. Zero means 32.
	MaxUploadMB int
	// Gatherer is served on /metrics when set.
	Gatherer prometheus.Gatherer
}

// NewApp returns a fiber app with the API routes, CORS, panic recovery and
// request logging installed.
func NewApp(h *Handler, opts ServerOptions) *fiber.App {
	limit := opts.MaxUploadMB
	if limit <= 0 {
		limit = 32
	}

	app := fiber.New(fiber.Config{
		AppName:               "statement-categorizer",
		BodyLimit:             limit << 20,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(requestLogger(h.logger()))

	h.RegisterRoutes(app)

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	return app
}

// errorHandler renders errors that escape a handler, including recovered
// panics, in the API's JSON shape.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := fmt.Sprintf("Internal server error: %v", err)
	if e, ok := err.(*fiber.Error); ok {
		status = e.Code
		msg = e.Message
	}
	return writeError(c, status, msg)
}

func requestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			// Render the error now so the logged status is the one sent.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).Round(time.Millisecond).String(),
		}).Info("request")
		return nil
	}
}

func (h *Handler) logger() *logrus.Logger {
	if h.Log != nil {
		return h.Log
	}
	return logrus.StandardLogger()
}
