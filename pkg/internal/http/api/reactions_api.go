package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pingup/network/pkg/internal/http/exts"
	"github.com/pingup/network/pkg/internal/services"
	"github.com/samber/lo"
)

func (v *Handler) getReactionStatus(c *fiber.Ctx) error {
	postID, err := services.ParseReference(c.Params("loveId"))
	if err != nil {
		return wrapError(err)
	}

	// An unknown or absent viewer still gets the count
	var viewer *uint
	if email := c.Query("userEmail"); len(email) > 0 {
		user, err := v.Accounts.GetByEmail(c.UserContext(), email)
		if err == nil {
			viewer = lo.ToPtr(user.ID)
		} else if !errors.Is(err, services.ErrUserNotFound) {
			return wrapError(err)
		}
	}

	status, err := v.Reactions.Status(c.UserContext(), postID, viewer)
	if err != nil {
		return wrapError(err)
	}

	return c.JSON(fiber.Map{
		"loveCount": status.Count,
		"isLoved":   status.ViewerHasReacted,
	})
}

func (v *Handler) toggleReaction(c *fiber.Ctx) error {
	var data struct {
		LoveID    exts.Reference `json:"loveId" validate:"required"`
		UserEmail string         `json:"userEmail" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	postID, err := services.ParseReference(data.LoveID.String())
	if err != nil {
		return wrapError(err)
	}
	user, err := v.Accounts.GetByEmail(c.UserContext(), data.UserEmail)
	if err != nil {
		return wrapError(err)
	}

	res, err := v.Reactions.Toggle(c.UserContext(), postID, user.ID)
	if err != nil {
		return wrapError(err)
	}

	return c.JSON(fiber.Map{
		"message":   lo.Ternary(res.Action == services.ReactionActionLike, "Post loved", "Post unloved"),
		"action":    res.Action,
		"loveCount": res.NewCount,
	})
}
