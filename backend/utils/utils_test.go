package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"cookmastery/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.JWTSecret = "testsecret"
	return cfg
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := testConfig()
	userID := uuid.New()

	token, err := GenerateJWTToken(userID, cfg)
	require.NoError(t, err)

	got, err := ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTRejectsWrongSecretAndExpiry(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateJWTToken(uuid.New(), cfg)
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "other"
	_, err = ParseJWTToken(token, other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := testConfig()
	expired.JWTTTL = -time.Minute
	token, err = GenerateJWTToken(uuid.New(), expired)
	require.NoError(t, err)
	_, err = ParseJWTToken(token, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractUserIDFromToken(t *testing.T) {
	cfg := testConfig()
	userID := uuid.New()
	token, err := GenerateJWTToken(userID, cfg)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		id, err := ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.SendString(err.Error())
		}
		return c.SendString(id.String())
	})

	for name, header := range map[string]string{
		"bearer": "Bearer " + token,
		"bare":   token,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", header)
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, userID.String(), string(body))
		})
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, ErrMissingToken.Error(), string(body))
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(NewNopLogger())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused at 10.0.0.3")
	})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return NewAPIError(fiber.StatusConflict, CodeConflict, "Username already taken")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, CodeInternal, body.Error.Code)
	assert.NotContains(t, body.Error.Message, "10.0.0.3")

	resp, err = app.Test(httptest.NewRequest("GET", "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, CodeNotFound, body.Error.Code)
}

func TestValidate(t *testing.T) {
	type input struct {
		Title    string  `json:"title" validate:"required,max=5"`
		Username *string `json:"username" validate:"omitempty,min=3,username"`
		Sort     string  `query:"sort" validate:"omitempty,oneof=newest oldest"`
	}

	assert.Nil(t, Validate(input{Title: "ok"}))

	bad := "a-"
	details := Validate(input{Title: "", Username: &bad, Sort: "random"})
	assert.Equal(t, "is required", details["title"])
	assert.Contains(t, details, "username")
	assert.Equal(t, "must be one of: newest, oldest", details["sort"])

	details = Validate(input{Title: "toolong"})
	assert.Equal(t, "must be at most 5 characters", details["title"])
}

func TestRedact(t *testing.T) {
	out := redact([]interface{}{"user", "bob", "password", "hunter2", "access_token", "abc", "dangling"})
	assert.Equal(t, []interface{}{"user", "bob", "password", "[REDACTED]", "access_token", "[REDACTED]", "dangling"}, out)
}

func TestStatusOf(t *testing.T) {
	app := fiber.New()
	var got []int
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		got = append(got, StatusOf(c, err))
		return err
	})
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusAccepted) })
	app.Get("/api", func(c *fiber.Ctx) error { return NewAPIError(fiber.StatusConflict, CodeConflict, "taken") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	for _, path := range []string{"/ok", "/api", "/boom", "/missing"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}
	assert.Equal(t, []int{fiber.StatusAccepted, fiber.StatusConflict, fiber.StatusInternalServerError, fiber.StatusNotFound}, got)
}
