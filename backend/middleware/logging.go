package middleware

import (
	"log"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/aebonlee/stepup-cloud/backend/utils"
)

type requestLog struct {
	Time      string `json:"time"`
	RequestID string `json:"request_id,omitempty"`
	IP        string `json:"ip"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Latency   string `json:"latency"`
}

func LoggingMiddleware(logger *log.Logger, cfg utils.LoggerConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Let the error handler write the response first so the logged status is final.
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		entry := requestLog{
			Time:      time.Now().Format("2006-01-02 15:04:05"),
			RequestID: c.GetRespHeader(fiber.HeaderXRequestID),
			IP:        c.IP(),
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start).String(),
		}

		switch {
		case cfg.Format == "json":
			line, _ := json.Marshal(entry)
			logger.Println(string(line))
		case cfg.EnableColors:
			logger.Printf("[%s] %s %s%s%s %s %s%d%s %s %s",
				entry.Time, entry.IP,
				utils.MethodColor(entry.Method), entry.Method, utils.ColorReset,
				entry.Path,
				utils.StatusColor(entry.Status), entry.Status, utils.ColorReset,
				entry.Latency, entry.RequestID)
		default:
			logger.Printf("[%s] %s %s %s %d %s %s",
				entry.Time, entry.IP, entry.Method, entry.Path, entry.Status, entry.Latency, entry.RequestID)
		}

		return nil
	}
}
