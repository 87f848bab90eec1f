package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/aebonlee/stepup-cloud/backend/config"
	"github.com/aebonlee/stepup-cloud/backend/middleware"
	"github.com/aebonlee/stepup-cloud/backend/services"
	"github.com/aebonlee/stepup-cloud/backend/utils"
)

// ErrorHandler is installed as the fiber.Config ErrorHandler. Handlers and middleware return
// service errors and let it pick the status.
func ErrorHandler(cfg *config.Config, logger *log.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return handleError(c, err, cfg, logger)
	}
}

func handleError(c *fiber.Ctx, err error, cfg *config.Config, logger *log.Logger) error {
	var (
		validationErr  *services.ValidationError
		aggregationErr *services.AggregationError
		fiberErr       *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return utils.BadRequest(c, validationErr.Message)
	case errors.Is(err, services.ErrDuplicateEmail):
		return utils.BadRequest(c, "Email is already registered")
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrInvalidCredentials):
		return utils.BadRequest(c, "Invalid email or password")
	case errors.Is(err, services.ErrUnauthenticated):
		return utils.Unauthorized(c, "Access token required")
	case errors.Is(err, services.ErrForbidden):
		return utils.Forbidden(c, "Invalid or expired token")
	case errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound:
		return utils.NotFound(c, "API endpoint not found")
	case errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError:
		return utils.Error(c, fiberErr.Code, fiberErr.Message)
	}

	if logger != nil {
		logger.Printf("ERROR %s %s: %v", c.Method(), c.Path(), err)
	}

	message := "Internal server error"
	if errors.As(err, &aggregationErr) {
		message = "Failed to load " + aggregationErr.Stats + " statistics"
	}
	return utils.InternalServerError(c, message, err.Error(), !cfg.IsProduction())
}

// currentUser returns the caller resolved by middleware.AuthMiddleware.
func currentUser(c *fiber.Ctx) (*services.Identity, error) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return nil, services.ErrUnauthenticated
	}
	return identity, nil
}
