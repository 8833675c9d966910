package controllers

import (
	"cookmastery/backend/services"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Progress *services.ProgressService
	Profiles *services.ProfileService
}

func NewProgressController(progress *services.ProgressService, profiles *services.ProfileService) *ProgressController {
	return &ProgressController{Progress: progress, Profiles: profiles}
}

// GetSummary reports per-level completion for the caller's selected level.
func (pc *ProgressController) GetSummary(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	level, err := pc.Profiles.SelectedLevel(c.UserContext(), userID)
	if err != nil {
		return err
	}
	summary, err := pc.Progress.Summarize(c.UserContext(), userID, level)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
