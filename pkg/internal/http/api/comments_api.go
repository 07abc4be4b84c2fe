package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pingup/network/pkg/internal/http/exts"
	"github.com/pingup/network/pkg/internal/services"
)

func (v *Handler) listComment(c *fiber.Ctx) error {
	postID, err := services.ParseReference(c.Params("postId"))
	if err != nil {
		return wrapError(err)
	}

	items, err := v.Comments.ListPostComment(c.UserContext(), postID)
	if err != nil {
		return wrapError(err)
	}
	return c.JSON(items)
}

func (v *Handler) createComment(c *fiber.Ctx) error {
	var data struct {
		PostID    exts.Reference `json:"postId" validate:"required"`
		Text      string         `json:"text" validate:"required,max=4096"`
		UserEmail string         `json:"userEmail" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	postID, err := services.ParseReference(data.PostID.String())
	if err != nil {
		return wrapError(err)
	}
	user, err := v.Accounts.GetByEmail(c.UserContext(), data.UserEmail)
	if err != nil {
		return wrapError(err)
	}

	count, err := v.Comments.AddComment(c.UserContext(), postID, user.ID, data.Text)
	if err != nil {
		return wrapError(err)
	}

	return c.JSON(fiber.Map{
		"message":      "Comment added",
		"commentCount": count,
	})
}
