package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Post struct {
	BaseModel

	Text          string                      `json:"text"`
	Images        datatypes.JSONSlice[string] `json:"images"`
	Language      string                      `json:"language"`
	ReactionCount int                         `json:"reaction_count" gorm:"not null;default:0"`

	AccountID uint `json:"account_id" gorm:"index" validate:"required"`
	Account   User `json:"account" validate:"-"`
}

func (v *Post) BeforeCreate(tx *gorm.DB) error {
	return validation.Struct(v)
}
