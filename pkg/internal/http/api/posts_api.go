package api

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pingup/network/pkg/internal/models"
	"github.com/pingup/network/pkg/internal/services"
	"github.com/pingup/network/pkg/internal/uploader"
	"github.com/samber/lo"
)

const maxPostImages = 10

type postDetail struct {
	models.Post
	CommentCount int64 `json:"comment_count"`
}

func (v *Handler) getPost(c *fiber.Ctx) error {
	id, err := services.ParseReference(c.Params("postId"))
	if err != nil {
		return wrapError(err)
	}

	item, err := v.Posts.GetPost(c.UserContext(), id)
	if err != nil {
		return wrapError(err)
	}
	count, err := v.Comments.CountPostComment(c.UserContext(), id)
	if err != nil {
		return wrapError(err)
	}
	return c.JSON(postDetail{Post: item, CommentCount: count})
}

func (v *Handler) listPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 0)
	offset := c.QueryInt("offset", 0)
	if take < 0 || offset < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "take and offset must not be negative")
	}

	opts := services.PostListOpts{Take: take, Offset: offset}
	if author := c.Query("author"); len(author) > 0 {
		user, err := v.Accounts.GetByEmail(c.UserContext(), author)
		if err != nil {
			return wrapError(err)
		}
		opts.Author = lo.ToPtr(user.ID)
	}

	items, count, err := v.Posts.ListPost(c.UserContext(), opts)
	if err != nil {
		return wrapError(err)
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func (v *Handler) createPost(c *fiber.Ctx) error {
	text := c.FormValue("text")
	email := c.FormValue("email")

	var files []uploader.File
	if form, err := c.MultipartForm(); err == nil {
		headers := form.File["images"]
		if len(headers) > maxPostImages {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("a post can carry at most %d images", maxPostImages))
		}
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unable to read uploaded file: %v", err))
			}
			data, err := io.ReadAll(file)
			_ = file.Close()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unable to read uploaded file: %v", err))
			}
			files = append(files, uploader.File{
				Name:     header.Filename,
				MimeType: header.Header.Get(fiber.HeaderContentType),
				Data:     data,
			})
		}
	}

	item, err := v.Posts.NewPost(c.UserContext(), email, text, files)
	if errors.Is(err, services.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "user not found")
	} else if err != nil {
		return wrapError(err)
	}

	return c.JSON(item)
}
