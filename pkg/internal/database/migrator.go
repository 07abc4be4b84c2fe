package database

import (
	"github.com/pingup/network/pkg/internal/models"
	"gorm.io/gorm"
)

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Story{},
		&models.Comment{},
		&models.FriendRequest{},
		&models.Reaction{},
	); err != nil {
		return err
	}

	return nil
}
