package controllers

import (
	"errors"
	"strings"

	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/services"
	"cookmastery/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// listQuery holds the query string of content listings.
type listQuery struct {
	Level            string `query:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE EXPERIENCED"`
	Category         string `query:"category" validate:"omitempty,oneof=PRACTICAL THEORETICAL EQUIPMENT"`
	Sort             string `query:"sort" validate:"omitempty,oneof=difficulty_asc newest"`
	Page             int    `query:"page" validate:"min=1"`
	Limit            int    `query:"limit" validate:"min=1,max=100"`
	IncludeCompleted *bool  `query:"include_completed"`
}

// parseListQuery reads and validates listing parameters. It writes the
// error response itself and returns ok=false when the request is bad.
func parseListQuery(c *fiber.Ctx, kind models.ContentKind) (services.ListParams, bool, error) {
	q := listQuery{Page: defaultPage, Limit: defaultLimit}
	if err := c.QueryParser(&q); err != nil {
		return services.ListParams{}, false, utils.BadRequest(c, "Invalid query parameters")
	}
	details := utils.Validate(q)
	if q.Category != "" && kind == models.KindArticle {
		if details == nil {
			details = map[string]string{}
		}
		details["category"] = "is not supported for articles"
	}
	if details != nil {
		return services.ListParams{}, false, utils.ValidationFailed(c, details)
	}

	p := services.ListParams{
		Sort:             repository.SortDifficultyAsc,
		Page:             q.Page,
		Limit:            q.Limit,
		IncludeCompleted: q.IncludeCompleted == nil || *q.IncludeCompleted,
	}
	if q.Sort != "" {
		p.Sort = repository.ContentSort(q.Sort)
	}
	if q.Level != "" {
		level := models.Level(q.Level)
		p.Level = &level
	}
	if q.Category != "" {
		category := models.Category(q.Category)
		p.Category = &category
	}
	return p, true, nil
}

// parseID reads the :id route parameter. On failure it writes a 400.
func parseID(c *fiber.Ctx) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false, utils.ValidationFailed(c, map[string]string{"id": "must be a valid UUID"})
	}
	return id, true, nil
}

func viewer(c *fiber.Ctx) *uuid.UUID {
	if id, ok := utils.CurrentUserID(c); ok {
		return &id
	}
	return nil
}

// currentUser returns the authenticated caller; routes using it sit
// behind AuthMiddleware.
func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := utils.CurrentUserID(c)
	if !ok {
		return uuid.Nil, utils.NewAPIError(fiber.StatusUnauthorized, utils.CodeUnauthorized, "Unauthorized")
	}
	return id, nil
}

// serviceError maps service sentinels to responses and passes anything
// else to the app error handler.
func serviceError(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound(c, notFound)
	case errors.Is(err, services.ErrConflict):
		return utils.Conflict(c, conflictMessage(err))
	case errors.Is(err, services.ErrEmptyUpdate):
		return utils.ValidationFailed(c, map[string]string{"_": "at least one field must be provided"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.Unauthorized(c, "Invalid credentials")
	}
	return err
}

// conflictMessage strips the sentinel text from a wrapped ErrConflict.
func conflictMessage(err error) string {
	msg := err.Error()
	detail := strings.TrimPrefix(msg, services.ErrConflict.Error()+": ")
	if detail == msg || detail == "" {
		return "Conflict"
	}
	return detail
}
