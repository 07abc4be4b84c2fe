package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pingup/network/pkg/internal/http/exts"
)

func (v *Handler) listStory(c *fiber.Ctx) error {
	items, err := v.Stories.ListActiveStory(c.UserContext())
	if err != nil {
		return wrapError(err)
	}
	return c.JSON(items)
}

func (v *Handler) createStory(c *fiber.Ctx) error {
	var data struct {
		Email  string `json:"email" validate:"required"`
		DayPic string `json:"dayPic" validate:"required,url"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := v.Stories.NewStory(c.UserContext(), data.Email, data.DayPic)
	if err != nil {
		return wrapError(err)
	}
	return c.JSON(item)
}
