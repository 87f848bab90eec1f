package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by store.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB     Pinger
	Logger *log.Logger
}

func NewHealthController(db Pinger, logger *log.Logger) *HealthController {
	return &HealthController{DB: db, Logger: logger}
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func (hc *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	resp := healthResponse{
		Status:    "OK",
		Message:   "StepUp Cloud API server is running",
		Database:  "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := hc.DB.Ping(ctx); err != nil {
		if hc.Logger != nil {
			hc.Logger.Printf("health: database ping failed: %v", err)
		}
		resp.Status = "DEGRADED"
		resp.Database = "unavailable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
