package models

import (
	"time"

	"gorm.io/gorm"
)

// Reaction is a single like, at most one per account and post.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	PostID    uint `json:"post_id" gorm:"uniqueIndex:idx_reaction_post_account;not null" validate:"required"`
	AccountID uint `json:"account_id" gorm:"uniqueIndex:idx_reaction_post_account;not null" validate:"required"`
}

func (v *Reaction) BeforeCreate(tx *gorm.DB) error {
	return validation.Struct(v)
}
