package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aebonlee/stepup-cloud/backend/services"
	"github.com/aebonlee/stepup-cloud/backend/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type credentials struct {
	Email    string `json:"email" example:"test@sample.com"`
	Password string `json:"password" example:"1234"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body credentials true "Email and password"
// @Success 200 {object} services.Session
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input credentials
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	session, err := ac.Auth.Register(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body credentials true "Email and password"
// @Success 200 {object} services.Session
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input credentials
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	session, err := ac.Auth.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// Logout revokes the token used for this request.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	identity, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := ac.Auth.Logout(c.UserContext(), identity); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}
