package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pingup/network/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// FriendService is the relationship ledger of directed friend requests.
type FriendService struct {
	db *gorm.DB
}

func NewFriendService(db *gorm.DB) *FriendService {
	return &FriendService{db: db}
}

// SendRequest creates a pending request from sender to receiver.
// Only the exact direction is checked, a reverse request may coexist.
func (v *FriendService) SendRequest(ctx context.Context, senderID, receiverID uint) (models.FriendRequest, error) {
	if senderID == receiverID {
		return models.FriendRequest{}, ErrSelfRequest
	}

	request := models.FriendRequest{
		Status:     models.FriendRequestPending,
		SenderID:   senderID,
		ReceiverID: receiverID,
	}
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.FriendRequest
		found := tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).Limit(1).Find(&existing)
		if found.Error != nil {
			return found.Error
		} else if found.RowsAffected > 0 {
			request = existing
			return ErrAlreadyRequested
		}
		return tx.Create(&request).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The unique pair index caught a concurrent duplicate
		return request, ErrAlreadyRequested
	} else if errors.Is(err, ErrAlreadyRequested) {
		return request, err
	} else if err != nil {
		return request, fmt.Errorf("unable to create friend request: %w", err)
	}

	log.Debug().Uint("sender", senderID).Uint("receiver", receiverID).Msg("Sent a friend request.")
	return request, nil
}

// StatusBetween looks up the request in either direction, "none" when no row exists.
func (v *FriendService) StatusBetween(ctx context.Context, a, b uint) (string, error) {
	var request models.FriendRequest
	tx := v.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at DESC").
		Limit(1).
		Find(&request)
	if tx.Error != nil {
		return models.FriendRequestNone, fmt.Errorf("unable to get friend request status: %w", tx.Error)
	} else if tx.RowsAffected == 0 {
		return models.FriendRequestNone, nil
	}
	return request.Status, nil
}

// IncomingFriendRequest is a pending request as shown to its receiver.
type IncomingFriendRequest struct {
	ID        uint                       `json:"id"`
	CreatedAt time.Time                  `json:"created_at"`
	Status    models.FriendRequestStatus `json:"status"`
	SenderID  uint                       `json:"sender_id"`
	Sender    models.UserBrief           `json:"sender"`
}

// ListIncomingPending lists the pending requests received by the account, newest first.
func (v *FriendService) ListIncomingPending(ctx context.Context, receiverID uint) ([]IncomingFriendRequest, error) {
	var items []models.FriendRequest
	if err := v.db.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, models.FriendRequestPending).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("unable to list incoming friend requests: %w", err)
	}
	return lo.Map(items, func(item models.FriendRequest, _ int) IncomingFriendRequest {
		return IncomingFriendRequest{
			ID:        item.ID,
			CreatedAt: item.CreatedAt,
			Status:    item.Status,
			SenderID:  item.SenderID,
			Sender:    item.Sender.Brief(),
		}
	}), nil
}

// CancelRequest removes an unanswered request of the exact direction.
// Answered requests are left alone and reported as ErrNoPendingRequest.
func (v *FriendService) CancelRequest(ctx context.Context, senderID, receiverID uint) error {
	tx := v.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.FriendRequestPending).
		Delete(&models.FriendRequest{})
	if tx.Error != nil {
		return fmt.Errorf("unable to cancel friend request: %w", tx.Error)
	} else if tx.RowsAffected == 0 {
		return ErrNoPendingRequest
	}
	return nil
}

// RespondRequest moves a pending request into accepted or declined.
func (v *FriendService) RespondRequest(ctx context.Context, senderID, receiverID uint, accept bool) (models.FriendRequest, error) {
	status := models.FriendRequestDeclined
	if accept {
		status = models.FriendRequestAccepted
	}

	var request models.FriendRequest
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.FriendRequestPending).
			First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoPendingRequest
			}
			return err
		}
		request.Status = status
		return tx.Model(&request).Update("status", status).Error
	})
	return request, err
}
