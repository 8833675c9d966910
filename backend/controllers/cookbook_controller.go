package controllers

import (
	"strings"

	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/services"
	"cookmastery/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CookbookController struct {
	Cookbook *services.CookbookService
}

func NewCookbookController(cookbook *services.CookbookService) *CookbookController {
	return &CookbookController{Cookbook: cookbook}
}

type createCookbookRequest struct {
	URL   string  `json:"url" validate:"required,max=2048,http_url"`
	Title string  `json:"title" validate:"required,max=200"`
	Notes *string `json:"notes" validate:"omitempty,max=5000"`
}

type updateCookbookRequest struct {
	URL   *string `json:"url" validate:"omitempty,max=2048,http_url"`
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Notes *string `json:"notes" validate:"omitempty,max=5000"`
}

type cookbookListQuery struct {
	Sort  string `query:"sort" validate:"omitempty,oneof=newest oldest title_asc"`
	Page  int    `query:"page" validate:"min=1"`
	Limit int    `query:"limit" validate:"min=1,max=100"`
}

const entryNotFound = "Cookbook entry not found"

func (cc *CookbookController) List(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	q := cookbookListQuery{Page: defaultPage, Limit: defaultLimit}
	if err := c.QueryParser(&q); err != nil {
		return utils.BadRequest(c, "Invalid query parameters")
	}
	if details := utils.Validate(q); details != nil {
		return utils.ValidationFailed(c, details)
	}
	sort := repository.SortCookbookNewest
	if q.Sort != "" {
		sort = repository.CookbookSort(q.Sort)
	}

	page, err := cc.Cookbook.List(c.UserContext(), userID, repository.CookbookQuery{Sort: sort, Page: q.Page, Limit: q.Limit})
	if err != nil {
		return err
	}
	return utils.Paginate(c, page.Items, page.Pagination)
}

// Create godoc
// @Summary Save a recipe link to the caller's cookbook
// @Tags cookbook
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body createCookbookRequest true "Cookbook entry"
// @Success 201 {object} models.CookbookEntry
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /cookbook [post]
func (cc *CookbookController) Create(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createCookbookRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	req.URL = strings.TrimSpace(req.URL)
	req.Title = strings.TrimSpace(req.Title)
	if details := utils.Validate(req); details != nil {
		return utils.ValidationFailed(c, details)
	}

	entry, err := cc.Cookbook.Create(c.UserContext(), userID, services.CookbookInput{URL: req.URL, Title: req.Title, Notes: req.Notes})
	if err != nil {
		return err
	}
	return utils.Created(c, entry)
}

func (cc *CookbookController) Get(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, ok, err := parseID(c)
	if !ok {
		return err
	}
	entry, err := cc.Cookbook.Get(c.UserContext(), userID, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return utils.NotFound(c, entryNotFound)
	}
	return c.JSON(entry)
}

func (cc *CookbookController) Update(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, ok, err := parseID(c)
	if !ok {
		return err
	}
	var req updateCookbookRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if req.URL != nil {
		*req.URL = strings.TrimSpace(*req.URL)
	}
	if req.Title != nil {
		*req.Title = strings.TrimSpace(*req.Title)
	}
	if details := utils.Validate(req); details != nil {
		return utils.ValidationFailed(c, details)
	}

	entry, err := cc.Cookbook.Update(c.UserContext(), userID, id, models.CookbookPatch{URL: req.URL, Title: req.Title, Notes: req.Notes})
	if err != nil {
		return serviceError(c, err, entryNotFound)
	}
	if entry == nil {
		return utils.NotFound(c, entryNotFound)
	}
	return c.JSON(entry)
}

func (cc *CookbookController) Delete(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, ok, err := parseID(c)
	if !ok {
		return err
	}
	deleted, err := cc.Cookbook.Delete(c.UserContext(), userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.NotFound(c, entryNotFound)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
