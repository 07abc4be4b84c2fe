package exts

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceAcceptsStringAndNumber(t *testing.T) {
	var data struct {
		A Reference `json:"a"`
		B Reference `json:"b"`
		C Reference `json:"c"`
	}
	require.NoError(t, jsoniter.Unmarshal([]byte(`{"a":"12","b":34,"c":null}`), &data))
	assert.Equal(t, Reference("12"), data.A)
	assert.Equal(t, Reference("34"), data.B)
	assert.Equal(t, Reference(""), data.C)
}

func TestBindAndValidateReportsFields(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var data struct {
			Email string    `json:"userEmail" validate:"required,email"`
			Post  Reference `json:"loveId" validate:"required"`
		}
		if err := BindAndValidate(c, &data); err != nil {
			return err
		}
		return c.SendString(data.Email + ":" + data.Post.String())
	})

	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(`{"loveId":""}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "missing or invalid fields: userEmail, loveId", string(body))

	req = httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(`{"loveId":7,"userEmail":"a@x.com"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "a@x.com:7", string(body))
}
