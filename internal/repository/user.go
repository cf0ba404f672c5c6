// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"parley/internal/cache"
	"parley/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users and their muted conversations.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	MuteConversation(ctx context.Context, userID, mutedUserID uint) error
	UnmuteConversation(ctx context.Context, userID, mutedUserID uint) error
	ListMutedConversations(ctx context.Context, userID uint) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// userCacheEntry is the cached form of a user row. The API model hides the
// password hash behind `json:"-"`, so marshaling it into the cache would
// drop the hash and a cache hit would rehydrate a user with an empty
// credential; the entry carries the full persistence state under its own tags.
type userCacheEntry struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	ProfilePic string    `json:"profile_pic"`
	About      string    `json:"about"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newUserCacheEntry(user *models.User) userCacheEntry {
	return userCacheEntry{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		Password:   user.Password,
		ProfilePic: user.ProfilePic,
		About:      user.About,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func (e *userCacheEntry) user() *models.User {
	return &models.User{
		ID:         e.ID,
		FullName:   e.FullName,
		Email:      e.Email,
		Password:   e.Password,
		ProfilePic: e.ProfilePic,
		About:      e.About,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var entry userCacheEntry
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &entry, cache.UserTTL, func() error {
		var user models.User
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		entry = newUserCacheEntry(&user)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return entry.user(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite used in tests
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// MuteConversation inserts the (user, muted user) pair. The ON CONFLICT DO
// NOTHING clause against the composite unique index makes concurrent and
// repeated mutes idempotent without a read-modify-write cycle.
func (r *userRepository) MuteConversation(ctx context.Context, userID, mutedUserID uint) error {
	mute := models.MutedConversation{
		UserID:      userID,
		MutedUserID: mutedUserID,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "muted_user_id"}},
			DoNothing: true,
		}).
		Create(&mute).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUserMutes(ctx, userID)
	return nil
}

// UnmuteConversation deletes the pair. Deleting a pair that was never muted
// is not an error.
func (r *userRepository) UnmuteConversation(ctx context.Context, userID, mutedUserID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND muted_user_id = ?", userID, mutedUserID).
		Delete(&models.MutedConversation{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUserMutes(ctx, userID)
	return nil
}

func (r *userRepository) ListMutedConversations(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := cache.Aside(ctx, cache.UserMutesKey(userID), &ids, cache.UserMutesTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.MutedConversation{}).
			Where("user_id = ?", userID).
			Order("created_at").
			Pluck("muted_user_id", &ids).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
