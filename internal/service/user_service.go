package service

import (
	"context"
	"strings"

	"parley/internal/models"
	"parley/internal/repository"
	"parley/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
	uploader Uploader
}

// UpdateProfileInput carries the partial profile update. Nil pointers mean
// "not provided"; a pointer to the empty string is a provided (and for About,
// valid) value.
type UpdateProfileInput struct {
	UserID     uint
	ProfilePic *string
	About      *string
	FullName   *string
}

func NewUserService(userRepo repository.UserRepository, uploader Uploader) *UserService {
	return &UserService{userRepo: userRepo, uploader: uploader}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies the provided fields to the caller's record. At least
// one field must yield a change instruction; a request with nothing to apply
// is rejected rather than written as a no-op.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	changed := false

	if in.ProfilePic != nil && *in.ProfilePic != "" {
		secureURL, err := s.uploader.Upload(ctx, *in.ProfilePic)
		if err != nil {
			return nil, err
		}
		user.ProfilePic = secureURL
		changed = true
	}

	// An explicit empty string clears the about section; absence leaves it alone.
	if in.About != nil {
		if len(*in.About) > validation.MaxAboutLength {
			return nil, models.NewValidationError("About too long (max 500 characters)")
		}
		user.About = *in.About
		changed = true
	}

	if in.FullName != nil {
		trimmed := strings.TrimSpace(*in.FullName)
		if trimmed != "" {
			if len(trimmed) > validation.MaxFullNameLength {
				return nil, models.NewValidationError("Full name too long (max 100 characters)")
			}
			user.FullName = trimmed
			changed = true
		}
	}

	if !changed {
		return nil, models.NewValidationError("No profile fields to update")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// MuteConversation silences the conversation with mutedUserID for the caller
// and returns the resulting muted set. Repeated calls are idempotent.
func (s *UserService) MuteConversation(ctx context.Context, userID, mutedUserID uint) ([]uint, error) {
	if err := s.userRepo.MuteConversation(ctx, userID, mutedUserID); err != nil {
		return nil, err
	}
	return s.userRepo.ListMutedConversations(ctx, userID)
}

// UnmuteConversation removes the mute and returns the resulting set, whether
// or not a mute existed.
func (s *UserService) UnmuteConversation(ctx context.Context, userID, mutedUserID uint) ([]uint, error) {
	if err := s.userRepo.UnmuteConversation(ctx, userID, mutedUserID); err != nil {
		return nil, err
	}
	return s.userRepo.ListMutedConversations(ctx, userID)
}
