package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error writes an ErrorResponse with the given status. An optional detail fills Message.
func Error(c *fiber.Ctx, status int, message string, detail ...string) error {
	response := ErrorResponse{Error: message}
	if len(detail) > 0 {
		response.Message = detail[0]
	}
	return c.Status(status).JSON(response)
}

// Created sends 201 Created.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// InternalServerError hides detail unless expose is set (non-production).
func InternalServerError(c *fiber.Ctx, message string, detail string, expose bool) error {
	if !expose {
		detail = "server error"
	}
	return Error(c, fiber.StatusInternalServerError, message, detail)
}
