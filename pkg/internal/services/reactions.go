package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pingup/network/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ReactionActionLike   = "like"
	ReactionActionUnlike = "unlike"

	maxToggleAttempts = 3
)

type ReactionToggleResult struct {
	Action   string `json:"action"`
	NewCount int    `json:"new_count"`
}

type ReactionStatus struct {
	Count            int  `json:"count"`
	ViewerHasReacted bool `json:"viewer_has_reacted"`
}

// ReactionService is the like ledger, it owns reactions and the reaction_count column of posts.
type ReactionService struct {
	db *gorm.DB
}

func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{db: db}
}

// Toggle likes the post for the account, or takes the like back when it already exists.
// The existence check, the ledger write and the counter update commit together.
func (v *ReactionService) Toggle(ctx context.Context, postID, accountID uint) (ReactionToggleResult, error) {
	var result ReactionToggleResult
	var err error
	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		result, err = v.toggleOnce(ctx, postID, accountID)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		log.Warn().Uint("post", postID).Uint("account", accountID).Int("attempt", attempt).
			Msg("Concurrent reaction detected, retrying toggle...")
	}
	return result, err
}

func (v *ReactionService) toggleOnce(ctx context.Context, postID, accountID uint) (ReactionToggleResult, error) {
	var result ReactionToggleResult
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := lockForUpdate(tx).
			Select("id", "reaction_count").
			Where("id = ?", postID).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrPostNotFound, postID)
			}
			return err
		}

		var existing models.Reaction
		found := tx.Where("post_id = ? AND account_id = ?", postID, accountID).Limit(1).Find(&existing)
		if found.Error != nil {
			return found.Error
		}

		var delta clause.Expr
		if found.RowsAffected > 0 {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result.Action = ReactionActionUnlike
			delta = gorm.Expr("CASE WHEN reaction_count > 0 THEN reaction_count - 1 ELSE 0 END")
		} else {
			reaction := models.Reaction{PostID: postID, AccountID: accountID}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
			result.Action = ReactionActionLike
			delta = gorm.Expr("reaction_count + ?", 1)
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("reaction_count", delta).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Select("reaction_count").
			Where("id = ?", postID).
			Scan(&result.NewCount).Error
	})
	return result, err
}

// Status reports the like count of a post and whether viewer liked it, viewer may be nil.
func (v *ReactionService) Status(ctx context.Context, postID uint, viewer *uint) (ReactionStatus, error) {
	var status ReactionStatus

	var post models.Post
	if err := v.db.WithContext(ctx).
		Select("id", "reaction_count").
		Where("id = ?", postID).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status, fmt.Errorf("%w: %d", ErrPostNotFound, postID)
		}
		return status, fmt.Errorf("unable to get post: %w", err)
	}
	status.Count = post.ReactionCount

	if viewer != nil {
		var count int64
		if err := v.db.WithContext(ctx).Model(&models.Reaction{}).
			Where("post_id = ? AND account_id = ?", postID, *viewer).
			Count(&count).Error; err != nil {
			return status, fmt.Errorf("unable to check reaction: %w", err)
		}
		status.ViewerHasReacted = count > 0
	}

	return status, nil
}

// Reconcile rewrites every drifted reaction_count from the ledger and returns how many posts changed.
func (v *ReactionService) Reconcile(ctx context.Context) (int64, error) {
	var drifted []struct {
		ID     uint
		Actual int
	}
	posts := v.db.NamingStrategy.TableName("Post")
	reactions := v.db.NamingStrategy.TableName("Reaction")
	if err := v.db.WithContext(ctx).
		Table(posts + " AS p").
		Select("p.id AS id, COUNT(r.id) AS actual").
		Joins("LEFT JOIN " + reactions + " AS r ON r.post_id = p.id").
		Group("p.id, p.reaction_count").
		Having("COUNT(r.id) <> p.reaction_count").
		Scan(&drifted).Error; err != nil {
		return 0, fmt.Errorf("unable to find drifted reaction counters: %w", err)
	}

	var fixed int64
	for _, item := range drifted {
		if err := v.db.WithContext(ctx).Model(&models.Post{}).
			Where("id = ?", item.ID).
			UpdateColumn("reaction_count", item.Actual).Error; err != nil {
			return fixed, fmt.Errorf("unable to fix reaction counter of post %d: %w", item.ID, err)
		}
		fixed++
	}
	return fixed, nil
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
