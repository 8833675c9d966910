package controllers

import (
	"context"
	"time"

	"cookmastery/backend/database"
	"cookmastery/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthController struct {
	DB     *gorm.DB
	Logger *utils.Logger
}

func NewHealthController(db *gorm.DB, logger *utils.Logger) *HealthController {
	return &HealthController{DB: db, Logger: logger}
}

func (hc *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, hc.DB); err != nil {
		hc.Logger.Warn("health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
