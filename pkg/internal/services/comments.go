package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pingup/network/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// CommentItem is a comment as listed under its post.
type CommentItem struct {
	ID        uint             `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Text      string           `json:"text"`
	PostID    uint             `json:"post_id"`
	AccountID uint             `json:"account_id"`
	Account   models.UserBrief `json:"account"`
}

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// AddComment appends a comment and returns the post's comment total afterwards.
func (v *CommentService) AddComment(ctx context.Context, postID, accountID uint, text string) (int64, error) {
	var count int64
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").Where("id = ?", postID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrPostNotFound, postID)
			}
			return err
		}

		comment := models.Comment{
			Text:      strings.TrimSpace(text),
			PostID:    postID,
			AccountID: accountID,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		var err error
		count, err = countPostComment(tx, postID)
		return err
	})
	return count, err
}

func (v *CommentService) CountPostComment(ctx context.Context, postID uint) (int64, error) {
	count, err := countPostComment(v.db.WithContext(ctx), postID)
	if err != nil {
		return count, fmt.Errorf("unable to count comments: %w", err)
	}
	return count, nil
}

func countPostComment(tx *gorm.DB, postID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// ListPostComment returns the comments of a post with their authors, newest first.
func (v *CommentService) ListPostComment(ctx context.Context, postID uint) ([]CommentItem, error) {
	var items []models.Comment
	if err := v.db.WithContext(ctx).
		Preload("Account").
		Where("post_id = ?", postID).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("unable to list comments: %w", err)
	}
	return lo.Map(items, func(item models.Comment, _ int) CommentItem {
		return CommentItem{
			ID:        item.ID,
			CreatedAt: item.CreatedAt,
			Text:      item.Text,
			PostID:    item.PostID,
			AccountID: item.AccountID,
			Account:   item.Account.Brief(),
		}
	}), nil
}
