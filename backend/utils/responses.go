package utils

import (
	"errors"
	"net/http"

	"cookmastery/backend/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// APIError is an error that already knows its HTTP status and public body.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

type PaginatedResponse struct {
	Items      interface{}       `json:"items"`
	Pagination models.Pagination `json:"pagination"`
}

func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// Success writes data as the response body with the given status.
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

// Paginate writes {items, pagination}; a nil slice is sent as [].
func Paginate(c *fiber.Ctx, items interface{}, pagination models.Pagination) error {
	if items == nil {
		items = []interface{}{}
	}
	return c.JSON(PaginatedResponse{Items: items, Pagination: pagination})
}

// Error writes an APIError body.
func Error(c *fiber.Ctx, apiErr *APIError) error {
	if apiErr.Code == "" {
		apiErr.Code = codeForStatus(apiErr.Status)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(apiErr.Status)
	}
	return c.Status(apiErr.Status).JSON(ErrorResponse{Error: apiErr})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, NewAPIError(fiber.StatusBadRequest, CodeValidation, message))
}

// ValidationFailed reports per-field messages under details.
func ValidationFailed(c *fiber.Ctx, details map[string]string) error {
	apiErr := NewAPIError(fiber.StatusBadRequest, CodeValidation, "Validation failed")
	apiErr.Details = details
	return Error(c, apiErr)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, NewAPIError(fiber.StatusUnauthorized, CodeUnauthorized, message))
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, NewAPIError(fiber.StatusNotFound, CodeNotFound, message))
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, NewAPIError(fiber.StatusConflict, CodeConflict, message))
}

func InternalServerError(c *fiber.Ctx) error {
	return Error(c, NewAPIError(fiber.StatusInternalServerError, CodeInternal, "Internal server error"))
}

// ErrorHandler is the app-wide fallback. APIErrors pass through as-is,
// fiber errors keep their status, anything else is logged and hidden
// behind a generic 500.
func ErrorHandler(logger *Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return Error(c, apiErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return Error(c, NewAPIError(fiberErr.Code, codeForStatus(fiberErr.Code), fiberErr.Message))
		}

		logger.Error("unhandled request error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err,
		)
		return InternalServerError(c)
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return CodeValidation
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusConflict:
		return CodeConflict
	case fiber.StatusInternalServerError:
		return CodeInternal
	default:
		return http.StatusText(status)
	}
}

// StatusOf is the status the error handler will send for err, or the
// already written status when err is nil.
func StatusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
