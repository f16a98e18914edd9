// File: questly/services/user/crud.go
package user

import (
	"fmt"
	"strings"

	"questly/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"questly/models"
)

// GetUserByID returns the account.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return usr, nil
}

// GetUserByEmail returns the account behind the email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	usr, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return usr, nil
}

// UpdateProfile applies the allowed field changes and returns the updated
// account.
func (s *DefaultUserService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	if update.DisplayName != "" {
		usr.DisplayName = update.DisplayName
	}
	if update.AvatarID != "" {
		usr.AvatarID = update.AvatarID
	}
	if update.AvatarURL != "" {
		usr.AvatarURL = update.AvatarURL
	}
	if update.EmailUpdates != nil {
		usr.EmailUpdates = *update.EmailUpdates
	}

	if err := s.Repo.Update(usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// UpdatePassword rotates the password and signs out every other device.
func (s *DefaultUserService) UpdatePassword(userID, currentPassword, newPassword, currentDeviceID string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(currentPassword)); err != nil {
		return AuthError{}
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	usr.PasswordHash = string(hash)
	if err := s.Repo.Update(usr); err != nil {
		return err
	}

	if err := s.SignOutOtherDevices(userID, currentDeviceID); err != nil {
		utils.GetLogger().Warn("Password change: failed to sign out other devices",
			zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

// DeleteUser removes the account and drops its cached auth entries.
func (s *DefaultUserService) DeleteUser(userID string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	for _, d := range usr.Devices {
		dropAuthCache(userID, d.DeviceID)
	}
	return s.Repo.Delete(userID)
}
