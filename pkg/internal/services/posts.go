package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pingup/network/pkg/internal/models"
	"github.com/pingup/network/pkg/internal/uploader"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	DefaultPostFolder = "create-post"
	MaxPostListTake   = 100
)

// ParseReference validates a client supplied record id before it reaches the store.
func ParseReference(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}
	return uint(id), nil
}

type PostService struct {
	db       *gorm.DB
	accounts *AccountService
	uploader uploader.Uploader
	folder   string
}

func NewPostService(db *gorm.DB, accounts *AccountService, up uploader.Uploader, folder string) *PostService {
	return &PostService{
		db:       db,
		accounts: accounts,
		uploader: up,
		folder:   lo.Ternary(len(folder) > 0, folder, DefaultPostFolder),
	}
}

func (v *PostService) GetPost(ctx context.Context, id uint) (models.Post, error) {
	var item models.Post
	if err := v.db.WithContext(ctx).
		Preload("Account").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: %d", ErrPostNotFound, id)
		}
		return item, fmt.Errorf("unable to get post: %w", err)
	}
	return item, nil
}

type PostListOpts struct {
	Take   int
	Offset int
	Author *uint
}

func (v *PostService) ListPost(ctx context.Context, opts PostListOpts) ([]models.Post, int64, error) {
	if opts.Take <= 0 || opts.Take > MaxPostListTake {
		opts.Take = MaxPostListTake
	}

	tx := v.db.WithContext(ctx).Model(&models.Post{})
	if opts.Author != nil {
		tx = tx.Where("account_id = ?", *opts.Author)
	}
	tx = tx.Session(&gorm.Session{})

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("unable to count posts: %w", err)
	}

	var items []models.Post
	if err := tx.
		Preload("Account").
		Order("created_at DESC").Order("id DESC").
		Limit(opts.Take).Offset(opts.Offset).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("unable to list posts: %w", err)
	}

	return items, count, nil
}

// NewPost uploads the attached images and stores the post for the user owning email.
func (v *PostService) NewPost(ctx context.Context, email, text string, files []uploader.File) (models.Post, error) {
	var item models.Post
	text = strings.TrimSpace(text)
	if len(text) == 0 && len(files) == 0 {
		return item, ErrEmptyPost
	}

	user, err := v.accounts.GetByEmail(ctx, email)
	if err != nil {
		return item, err
	}

	for idx, file := range files {
		mime, ok := uploader.DetectImage(file.Data)
		if !ok {
			return item, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mime)
		}
		files[idx].MimeType = mime
	}

	start := time.Now()
	images := make([]string, 0, len(files))
	for _, file := range files {
		url, err := v.uploader.Upload(ctx, file, v.folder)
		if err != nil {
			return item, fmt.Errorf("unable to upload post image: %w", err)
		}
		images = append(images, url)
	}

	item = models.Post{
		Text:      text,
		Images:    images,
		Language:  DetectLanguage(text),
		AccountID: user.ID,
	}
	if err := v.db.WithContext(ctx).Create(&item).Error; err != nil {
		return item, fmt.Errorf("unable to create post: %w", err)
	}
	item.Account = user

	log.Debug().Uint("post", item.ID).Int("images", len(images)).Dur("elapsed", time.Since(start)).Msg("The post is posted.")
	return item, nil
}
