package controllers

import (
	"cookmastery/backend/models"
	"cookmastery/backend/services"
	"cookmastery/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ContentController struct {
	Content     *services.ContentService
	Completions *services.CompletionService
	Profiles    *services.ProfileService
}

func NewContentController(content *services.ContentService, completions *services.CompletionService, profiles *services.ProfileService) *ContentController {
	return &ContentController{Content: content, Completions: completions, Profiles: profiles}
}

// List godoc
// @Summary List tutorials or articles
// @Tags content
// @Produce json
// @Param level query string false "BEGINNER, INTERMEDIATE or EXPERIENCED"
// @Param category query string false "Tutorials only"
// @Param sort query string false "difficulty_asc (default) or newest"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, 1-100"
// @Param include_completed query bool false "Mark items the caller completed"
// @Success 200 {object} models.ContentPage
// @Failure 400 {object} utils.ErrorResponse
// @Router /tutorials [get]
// @Router /articles [get]
func (cc *ContentController) List(kind models.ContentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, ok, err := parseListQuery(c, kind)
		if !ok {
			return err
		}
		page, err := cc.Content.List(c.UserContext(), kind, params, viewer(c))
		if err != nil {
			return err
		}
		return utils.Paginate(c, page.Items, page.Pagination)
	}
}

func (cc *ContentController) Get(kind models.ContentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		detail, err := cc.Content.Get(c.UserContext(), kind, id, viewer(c))
		if err != nil {
			return err
		}
		if detail == nil {
			return utils.NotFound(c, notFoundMessage(kind))
		}
		return c.JSON(detail)
	}
}

// Complete godoc
// @Summary Mark a tutorial or article as completed
// @Description Idempotent. The first call answers 201, repeats answer 200 with the first timestamp.
// @Tags content
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.CompletionResult
// @Success 200 {object} models.CompletionResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /tutorials/{id}/complete [post]
// @Router /articles/{id}/complete [post]
func (cc *ContentController) Complete(kind models.ContentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return err
		}
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		result, err := cc.Completions.Complete(c.UserContext(), kind, id, userID)
		if err != nil {
			return serviceError(c, err, notFoundMessage(kind))
		}
		if result.Status == models.StatusCreated {
			return utils.Created(c, result)
		}
		return utils.Success(c, fiber.StatusOK, result)
	}
}

// ListAll returns one page of tutorials and one page of articles.
func (cc *ContentController) ListAll(c *fiber.Ctx) error {
	params, ok, err := parseListQuery(c, models.KindTutorial)
	if !ok {
		return err
	}
	all, err := cc.Content.ListAll(c.UserContext(), params, viewer(c))
	if err != nil {
		return err
	}
	return c.JSON(all)
}

// Recommendations is ListAll narrowed to the caller's selected level.
func (cc *ContentController) Recommendations(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	params, ok, err := parseListQuery(c, models.KindTutorial)
	if !ok {
		return err
	}
	level, err := cc.Profiles.SelectedLevel(c.UserContext(), userID)
	if err != nil {
		return err
	}
	params.Level = &level

	all, err := cc.Content.ListAll(c.UserContext(), params, &userID)
	if err != nil {
		return err
	}
	return c.JSON(all)
}

func notFoundMessage(kind models.ContentKind) string {
	if kind == models.KindArticle {
		return "Article not found"
	}
	return "Tutorial not found"
}
