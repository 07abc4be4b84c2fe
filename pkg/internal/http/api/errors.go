package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pingup/network/pkg/internal/http/exts"
	"github.com/pingup/network/pkg/internal/services"
)

var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{services.ErrInvalidReference, fiber.StatusBadRequest, "Invalid id"},
	{services.ErrEmptyPost, fiber.StatusBadRequest, "Post cannot be empty"},
	{services.ErrUnsupportedMedia, fiber.StatusBadRequest, "Only image uploads are supported"},
	{services.ErrSelfRequest, fiber.StatusBadRequest, "Cannot send a friend request to yourself"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{services.ErrPostNotFound, fiber.StatusNotFound, "Post not found"},
	{services.ErrNoPendingRequest, fiber.StatusNotFound, "No pending request"},
	{services.ErrExternalIDTaken, fiber.StatusConflict, "External id already in use"},
}

// wrapError turns service failures into fiber errors, unknown errors pass through as 500.
func wrapError(err error) error {
	for _, item := range errorStatus {
		if errors.Is(err, item.err) {
			return fiber.NewError(item.status, item.message)
		}
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return exts.InvalidFields(fieldErrs)
	}

	return err
}
