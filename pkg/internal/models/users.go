package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	BaseModel

	ExternalID *string           `json:"external_id" gorm:"uniqueIndex"`
	Email      string            `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Name       string            `json:"name"`
	Avatar     string            `json:"avatar"`
	Profile    datatypes.JSONMap `json:"profile"`
}

func (v *User) BeforeSave(tx *gorm.DB) error {
	return validation.Struct(v)
}

// UserBrief is the public projection embedded into listings of other records,
// it leaves out the external id and profile extras.
type UserBrief struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (v User) Brief() UserBrief {
	return UserBrief{ID: v.ID, Email: v.Email, Name: v.Name, Avatar: v.Avatar}
}
