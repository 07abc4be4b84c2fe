package models

import "gorm.io/gorm"

type FriendRequestStatus = string

const (
	FriendRequestNone     = FriendRequestStatus("none")
	FriendRequestPending  = FriendRequestStatus("pending")
	FriendRequestAccepted = FriendRequestStatus("accepted")
	FriendRequestDeclined = FriendRequestStatus("declined")
)

// FriendRequest is a directed edge, one row per (sender, receiver) direction.
type FriendRequest struct {
	BaseModel

	Status FriendRequestStatus `json:"status" gorm:"not null;default:'pending'" validate:"required,oneof=pending accepted declined"`

	SenderID   uint `json:"sender_id" gorm:"uniqueIndex:idx_friend_request_pair;not null" validate:"required"`
	Sender     User `json:"sender" validate:"-"`
	ReceiverID uint `json:"receiver_id" gorm:"uniqueIndex:idx_friend_request_pair;index;not null" validate:"required,nefield=SenderID"`
	Receiver   User `json:"-" validate:"-"`
}

func (v *FriendRequest) BeforeSave(tx *gorm.DB) error {
	return validation.Struct(v)
}
