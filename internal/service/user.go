package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/repository"
	"github.com/auralis/auralis/internal/validation"
)

var ErrInvalidCurrentPassword = errors.New("current password is incorrect")

type UserService struct {
	userRepository    repository.UserRepository
	profileRepository repository.ProfileRepository
	adminEmails       map[string]bool
}

func NewUserService(userRepository repository.UserRepository, profileRepository repository.ProfileRepository, adminEmails []string) *UserService {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		admins[validation.NormalizeEmail(email)] = true
	}

	return &UserService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		adminEmails:       admins,
	}
}

// ByID returns the user with the password hash stripped.
func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = nil
	return user, nil
}

// IsAdmin reports whether the user's email is in the configured admin list.
func (s *UserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if len(s.adminEmails) == 0 {
		return false, nil
	}

	user, err := s.userRepository.ByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	return s.adminEmails[validation.NormalizeEmail(user.Email)], nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return ErrInvalidCurrentPassword
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return ErrInvalidCurrentPassword
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return invalid("newPassword", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepository.UpdatePassword(ctx, userID, string(hashedPassword))
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// DeleteAccount removes the user. Foreign keys cascade to the profile,
// active goals, goal history and wellness entries.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	err := s.userRepository.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("account deleted", "user_id", userID)
	return nil
}
