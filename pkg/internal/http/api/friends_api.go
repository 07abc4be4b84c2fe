package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pingup/network/pkg/internal/http/exts"
	"github.com/pingup/network/pkg/internal/models"
	"github.com/pingup/network/pkg/internal/services"
	"github.com/samber/lo"
)

type friendPair struct {
	SenderEmail   string `json:"senderEmail" query:"senderEmail" validate:"required"`
	ReceiverEmail string `json:"receiverEmail" query:"receiverEmail" validate:"required"`
}

func (v *Handler) resolvePair(c *fiber.Ctx, pair friendPair) (models.User, models.User, error) {
	sender, receiver, err := v.Accounts.GetPair(c.UserContext(), pair.SenderEmail, pair.ReceiverEmail)
	if err != nil {
		return sender, receiver, wrapError(err)
	}
	return sender, receiver, nil
}

func (v *Handler) listIncomingFriendRequest(c *fiber.Ctx) error {
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

	items, err := v.Friends.ListIncomingPending(c.UserContext(), user.ID)
	if err != nil {
		return wrapError(err)
	}
	return c.JSON(items)
}

func (v *Handler) getFriendRequestStatus(c *fiber.Ctx) error {
	var query friendPair
	if err := exts.BindQueryAndValidate(c, &query); err != nil {
		return err
	}

	sender, receiver, err := v.resolvePair(c, query)
	if err != nil {
		return err
	}

	status, err := v.Friends.StatusBetween(c.UserContext(), sender.ID, receiver.ID)
	if err != nil {
		return wrapError(err)
	}
	return c.JSON(fiber.Map{
		"status": status,
	})
}

func (v *Handler) sendFriendRequest(c *fiber.Ctx) error {
	var data friendPair
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	sender, receiver, err := v.resolvePair(c, data)
	if err != nil {
		return err
	}

	request, err := v.Friends.SendRequest(c.UserContext(), sender.ID, receiver.ID)
	if errors.Is(err, services.ErrAlreadyRequested) {
		return c.JSON(fiber.Map{
			"message": "Already requested",
			"status":  request.Status,
		})
	} else if err != nil {
		return wrapError(err)
	}

	return c.JSON(fiber.Map{
		"message": "Friend request sent",
		"status":  request.Status,
	})
}

func (v *Handler) cancelFriendRequest(c *fiber.Ctx) error {
	var data friendPair
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	sender, receiver, err := v.resolvePair(c, data)
	if err != nil {
		return err
	}

	err = v.Friends.CancelRequest(c.UserContext(), sender.ID, receiver.ID)
	if errors.Is(err, services.ErrNoPendingRequest) {
		status, err := v.Friends.StatusBetween(c.UserContext(), sender.ID, receiver.ID)
		if err != nil {
			return wrapError(err)
		}
		return c.JSON(fiber.Map{
			"message": "No pending request",
			"status":  status,
		})
	} else if err != nil {
		return wrapError(err)
	}

	return c.JSON(fiber.Map{
		"message": "Friend request cancelled",
		"status":  models.FriendRequestNone,
	})
}

func (v *Handler) respondFriendRequest(c *fiber.Ctx) error {
	var data struct {
		SenderEmail   string `json:"senderEmail" validate:"required"`
		ReceiverEmail string `json:"receiverEmail" validate:"required"`
		Accept        bool   `json:"accept"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	sender, receiver, err := v.resolvePair(c, friendPair{SenderEmail: data.SenderEmail, ReceiverEmail: data.ReceiverEmail})
	if err != nil {
		return err
	}

	request, err := v.Friends.RespondRequest(c.UserContext(), sender.ID, receiver.ID, data.Accept)
	if err != nil {
		return wrapError(err)
	}

	return c.JSON(fiber.Map{
		"message": lo.Ternary(data.Accept, "Friend request accepted", "Friend request declined"),
		"status":  request.Status,
	})
}
