package models

import "gorm.io/gorm"

type Comment struct {
	BaseModel

	Text string `json:"text" validate:"required,max=4096"`

	PostID    uint `json:"post_id" gorm:"index" validate:"required"`
	AccountID uint `json:"account_id" validate:"required"`
	Account   User `json:"account" validate:"-"`
}

func (v *Comment) BeforeCreate(tx *gorm.DB) error {
	return validation.Struct(v)
}
