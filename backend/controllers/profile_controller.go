package controllers

import (
	"strings"

	"cookmastery/backend/models"
	"cookmastery/backend/services"
	"cookmastery/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: profiles}
}

type updateProfileRequest struct {
	Username      *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	SelectedLevel *string `json:"selected_level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE EXPERIENCED"`
}

func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	profile, err := pc.Profiles.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return utils.NotFound(c, "Profile not found")
	}
	return c.JSON(profile)
}

// UpdateProfile godoc
// @Summary Change username and/or selected level
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body updateProfileRequest true "Fields to change"
// @Success 200 {object} models.Profile
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /profile [patch]
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if req.Username != nil {
		*req.Username = strings.TrimSpace(*req.Username)
	}
	if details := utils.Validate(req); details != nil {
		return utils.ValidationFailed(c, details)
	}

	patch := models.ProfilePatch{Username: req.Username}
	if req.SelectedLevel != nil {
		level := models.Level(*req.SelectedLevel)
		patch.SelectedLevel = &level
	}
	profile, err := pc.Profiles.Update(c.UserContext(), userID, patch)
	if err != nil {
		return serviceError(c, err, "Profile not found")
	}
	return c.JSON(profile)
}
