package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aebonlee/stepup-cloud/backend/services"
	"github.com/aebonlee/stepup-cloud/backend/utils"
)

type UserController struct {
	Auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{Auth: auth}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the authenticated user's account
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := uc.Auth.Profile(c.UserContext(), identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return err
	}
	return c.JSON(user)
}
