package models

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// BaseModel carries the identity and timestamps shared by every record.
// Records are hard deleted, ledgers depend on unique indexes that soft deletes would keep occupied.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var validation = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Failures are reported with the json names clients know
	validation.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]; len(name) > 0 && name != "-" {
			return name
		}
		return field.Name
	})
}
