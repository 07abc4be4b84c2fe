package models

import "gorm.io/gorm"

type Story struct {
	BaseModel

	Image string `json:"image" validate:"required"`

	AccountID uint `json:"account_id" gorm:"index" validate:"required"`
	Account   User `json:"account" validate:"-"`
}

func (v *Story) BeforeCreate(tx *gorm.DB) error {
	return validation.Struct(v)
}
