package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/aebonlee/stepup-cloud/backend/config"
	"github.com/aebonlee/stepup-cloud/backend/controllers"
	"github.com/aebonlee/stepup-cloud/backend/middleware"
	"github.com/aebonlee/stepup-cloud/backend/revocation"
	"github.com/aebonlee/stepup-cloud/backend/services"
	"github.com/aebonlee/stepup-cloud/backend/store"
	"github.com/aebonlee/stepup-cloud/backend/utils"
)

func SetupRoutes(app *fiber.App, st store.Store, revoked revocation.List, cfg *config.Config, logger *log.Logger) {
	authService := services.NewAuthService(st, revoked, cfg)
	recordService := services.NewRecordService(st)
	statsService := services.NewStatsService(st)

	authMiddleware := middleware.AuthMiddleware(authService)

	// Auth routes
	authController := controllers.NewAuthController(authService)
	auth := app.Group("/api/auth")
	if cfg.AuthRateLimit > 0 {
		auth.Use(limiter.New(limiter.Config{
			Max:        cfg.AuthRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return utils.Error(c, fiber.StatusTooManyRequests, "Too many requests, try again later")
			},
		}))
	}
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authMiddleware, authController.Logout)

	// User routes
	userController := controllers.NewUserController(authService)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)

	// Record routes
	recordsController := controllers.NewRecordsController(recordService)
	app.Post("/api/study-records", authMiddleware, recordsController.CreateStudyRecord)
	app.Get("/api/study-records", authMiddleware, recordsController.GetStudyRecords)
	app.Post("/api/reading-records", authMiddleware, recordsController.CreateReadingRecord)
	app.Get("/api/reading-records", authMiddleware, recordsController.GetReadingRecords)
	app.Post("/api/awards-activities", authMiddleware, recordsController.CreateAwardActivity)
	app.Get("/api/awards-activities", authMiddleware, recordsController.GetAwardActivities)

	// Stats routes
	statsController := controllers.NewStatsController(statsService)
	stats := app.Group("/api/stats", authMiddleware)
	stats.Get("/study", statsController.GetStudyStats)
	stats.Get("/reading", statsController.GetReadingStats)
	stats.Get("/overview", statsController.GetOverview)

	healthController := controllers.NewHealthController(st, logger)
	app.Get("/api/health", healthController.Health)

	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFound(c, "API endpoint not found")
	})
}
