package routes

import (
	"log"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/aebonlee/stepup-cloud/backend/config"
	"github.com/aebonlee/stepup-cloud/backend/controllers"
	"github.com/aebonlee/stepup-cloud/backend/middleware"
	"github.com/aebonlee/stepup-cloud/backend/utils"
)

// NewApp builds the fiber application with the shared middleware stack. Routes are added by SetupRoutes.
func NewApp(cfg *config.Config, logger *log.Logger, logCfg utils.LoggerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "StepUp Cloud",
		DisableStartupMessage: true,
		ErrorHandler:          controllers.ErrorHandler(cfg, logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(recover.New())
	if logger != nil {
		app.Use(middleware.LoggingMiddleware(logger, logCfg))
	}

	origins := strings.TrimSpace(cfg.CORSOrigins)
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowCredentials: origins != "*",
	}))

	return app
}
