package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pingup/network/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AccountService resolves emails and external ids into stored users.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// NormalizeEmail makes lookups stable regardless of the casing the client sent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (v *AccountService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return getUserByEmail(v.db.WithContext(ctx), email)
}

func getUserByEmail(tx *gorm.DB, email string) (models.User, error) {
	var user models.User
	email = NormalizeEmail(email)
	if len(email) == 0 {
		return user, ErrUserNotFound
	}
	if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return user, fmt.Errorf("unable to get user by email: %w", err)
	}
	return user, nil
}

func (v *AccountService) GetByExternalID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if len(id) == 0 {
		return user, ErrUserNotFound
	}
	if err := v.db.WithContext(ctx).Where("external_id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return user, fmt.Errorf("unable to get user by external id: %w", err)
	}
	return user, nil
}

// GetPair resolves both participants of a relationship, failing on the first unknown email.
func (v *AccountService) GetPair(ctx context.Context, first, second string) (models.User, models.User, error) {
	a, err := v.GetByEmail(ctx, first)
	if err != nil {
		return a, models.User{}, err
	}
	b, err := v.GetByEmail(ctx, second)
	if err != nil {
		return a, b, err
	}
	return a, b, nil
}

// UpsertIfAbsent inserts the user unless one with the same email exists.
// The existing record is returned untouched in that case.
func (v *AccountService) UpsertIfAbsent(ctx context.Context, user models.User) (models.User, bool, error) {
	user.Email = NormalizeEmail(user.Email)

	existing, err := v.GetByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return existing, false, err
	}

	user.ID = 0
	if err := v.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a concurrent registration with the same email
			if existing, err := v.GetByEmail(ctx, user.Email); err == nil {
				return existing, false, nil
			}
		}
		return user, false, fmt.Errorf("unable to create user: %w", err)
	}

	log.Debug().Uint("user", user.ID).Str("email", user.Email).Msg("Registered a new user.")
	return user, true, nil
}

// ProfileUpdate leaves nil fields untouched, a blank external id keeps the stored one.
type ProfileUpdate struct {
	Name       *string
	Avatar     *string
	ExternalID *string
	Profile    map[string]any
}

func (v *AccountService) UpdateProfile(ctx context.Context, email string, data ProfileUpdate) (models.User, error) {
	user, err := v.GetByEmail(ctx, email)
	if err != nil {
		return user, err
	}

	if data.Name != nil {
		user.Name = *data.Name
	}
	if data.Avatar != nil {
		user.Avatar = *data.Avatar
	}
	if data.ExternalID != nil && len(*data.ExternalID) > 0 {
		user.ExternalID = data.ExternalID
	}
	if len(data.Profile) > 0 {
		if user.Profile == nil {
			user.Profile = make(map[string]any, len(data.Profile))
		}
		for k, val := range data.Profile {
			user.Profile[k] = val
		}
	}

	if err := v.db.WithContext(ctx).Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user, ErrExternalIDTaken
		}
		return user, fmt.Errorf("unable to update user: %w", err)
	}
	return user, nil
}
