package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pingup/network/pkg/internal/models"
	"gorm.io/gorm"
)

const DefaultStoryTTL = 24 * time.Hour

type StoryService struct {
	db       *gorm.DB
	accounts *AccountService
	ttl      time.Duration
}

func NewStoryService(db *gorm.DB, accounts *AccountService, ttl time.Duration) *StoryService {
	if ttl <= 0 {
		ttl = DefaultStoryTTL
	}
	return &StoryService{db: db, accounts: accounts, ttl: ttl}
}

func (v *StoryService) NewStory(ctx context.Context, email, image string) (models.Story, error) {
	var item models.Story
	user, err := v.accounts.GetByEmail(ctx, email)
	if err != nil {
		return item, err
	}

	item = models.Story{
		Image:     strings.TrimSpace(image),
		AccountID: user.ID,
	}
	if err := v.db.WithContext(ctx).Create(&item).Error; err != nil {
		return item, fmt.Errorf("unable to create story: %w", err)
	}
	item.Account = user
	return item, nil
}

// ListActiveStory returns the stories that have not expired yet, newest first.
func (v *StoryService) ListActiveStory(ctx context.Context) ([]models.Story, error) {
	var items []models.Story
	if err := v.db.WithContext(ctx).
		Preload("Account").
		Where("created_at > ?", time.Now().Add(-v.ttl)).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("unable to list stories: %w", err)
	}
	return items, nil
}

func (v *StoryService) DeleteExpiredStory(ctx context.Context) (int64, error) {
	tx := v.db.WithContext(ctx).
		Where("created_at <= ?", time.Now().Add(-v.ttl)).
		Delete(&models.Story{})
	return tx.RowsAffected, tx.Error
}
