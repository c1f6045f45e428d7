package api

import (
	"copymill/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	genHandler *handlers.GenerationHandler,
	contentHandler *handlers.ContentHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	v1.Post("/generate", genHandler.Generate)

	content := v1.Group("/content")
	content.Get("", contentHandler.History)
	content.Get("/:id", contentHandler.GetByID)
	content.Post("/:id/approve", genHandler.Approve)
	content.Post("/:id/reject", genHandler.Reject)
	content.Post("/:id/regenerate", genHandler.Regenerate)

	v1.Post("/companies/:id/style/analyze", genHandler.AnalyzeStyle)

	return app
}
