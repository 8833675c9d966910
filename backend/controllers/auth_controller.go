package controllers

import (
	"cookmastery/backend/services"
	"cookmastery/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Username string `json:"username" validate:"required,min=3,max=30,username"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account with a BEGINNER profile
// @Tags auth
// @Accept json
// @Produce json
// @Param user body registerRequest true "User registration data"
// @Success 201 {object} services.AuthResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if details := utils.Validate(req); details != nil {
		return utils.ValidationFailed(c, details)
	}

	result, err := ac.Auth.Register(c.UserContext(), req.Email, req.Password, req.Username)
	if err != nil {
		return serviceError(c, err, "")
	}
	return utils.Created(c, result)
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Login credentials"
// @Success 200 {object} services.AuthResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if details := utils.Validate(req); details != nil {
		return utils.ValidationFailed(c, details)
	}

	result, err := ac.Auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err, "")
	}
	return c.JSON(result)
}
