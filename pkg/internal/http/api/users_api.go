package api

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/pingup/network/pkg/internal/http/exts"
	"github.com/pingup/network/pkg/internal/models"
	"github.com/pingup/network/pkg/internal/services"
	"github.com/samber/lo"
)

var userKnownFields = []string{"email", "name", "img", "uid"}

// profileExtras keeps the registration keys this service has no column for.
func profileExtras(body []byte) map[string]any {
	var raw map[string]any
	if err := jsoniter.Unmarshal(body, &raw); err != nil {
		return nil
	}
	extras := lo.OmitByKeys(raw, userKnownFields)
	if len(extras) == 0 {
		return nil
	}
	return extras
}

func (v *Handler) createUser(c *fiber.Ctx) error {
	var data struct {
		Email      string  `json:"email" validate:"required,email"`
		Name       string  `json:"name"`
		Avatar     string  `json:"img"`
		ExternalID *string `json:"uid"`
	}

	if err := exts.Bind(c, &data); err != nil {
		return err
	}
	data.Email = services.NormalizeEmail(data.Email)
	if err := exts.ValidateSchema(&data); err != nil {
		return err
	}

	user, created, err := v.Accounts.UpsertIfAbsent(c.UserContext(), models.User{
		Email:      data.Email,
		Name:       data.Name,
		Avatar:     data.Avatar,
		ExternalID: lo.Ternary(data.ExternalID != nil && len(*data.ExternalID) > 0, data.ExternalID, nil),
		Profile:    profileExtras(c.Body()),
	})
	if err != nil {
		return wrapError(err)
	} else if !created {
		return c.JSON(fiber.Map{
			"message": "User already exists",
		})
	}

	return c.JSON(user)
}

func (v *Handler) getUser(c *fiber.Ctx) error {
	var query struct {
		Email string `query:"email" validate:"required"`
	}
	if err := exts.BindQueryAndValidate(c, &query); err != nil {
		return err
	}

	user, err := v.Accounts.GetByEmail(c.UserContext(), query.Email)
	if err != nil {
		return wrapError(err)
	}
	return c.JSON(user)
}

func (v *Handler) getUserByExternalID(c *fiber.Ctx) error {
	user, err := v.Accounts.GetByExternalID(c.UserContext(), c.Params("uid"))
	if err != nil {
		return wrapError(err)
	}
	return c.JSON(user)
}

func (v *Handler) editUser(c *fiber.Ctx) error {
	var data struct {
		Email      string  `json:"email" validate:"required,email"`
		Name       *string `json:"name"`
		Avatar     *string `json:"img"`
		ExternalID *string `json:"uid"`
	}

	if err := exts.Bind(c, &data); err != nil {
		return err
	}
	data.Email = services.NormalizeEmail(data.Email)
	if err := exts.ValidateSchema(&data); err != nil {
		return err
	}

	user, err := v.Accounts.UpdateProfile(c.UserContext(), data.Email, services.ProfileUpdate{
		Name:       data.Name,
		Avatar:     data.Avatar,
		ExternalID: lo.Ternary(data.ExternalID != nil && len(*data.ExternalID) > 0, data.ExternalID, nil),
		Profile:    profileExtras(c.Body()),
	})
	if err != nil {
		return wrapError(err)
	}
	return c.JSON(user)
}
