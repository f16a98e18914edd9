// File: questly/services/user/devices.go
package user

import (
	"context"
	"fmt"

	"questly/models"
	"questly/utils"

	"go.uber.org/zap"
)

// GetUserDevices returns the account's registered devices.
func (s *DefaultUserService) GetUserDevices(userID string) ([]models.Device, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return usr.Devices, nil
}

// SignOutOtherDevices drops every device except the calling one, revoking
// their cached token hashes as it goes.
func (s *DefaultUserService) SignOutOtherDevices(userID, currentDeviceID string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	var kept []models.Device
	for _, d := range usr.Devices {
		if d.DeviceID == currentDeviceID {
			kept = append(kept, d)
			continue
		}
		dropAuthCache(userID, d.DeviceID)
	}
	if len(kept) == 0 {
		return fmt.Errorf("current device %s is not registered", currentDeviceID)
	}
	return s.Repo.UpdateDevices(userID, kept)
}

// UpdateFCMToken stores the push token for one device.
func (s *DefaultUserService) UpdateFCMToken(userID, deviceID, fcmToken string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	found := false
	for idx := range usr.Devices {
		if usr.Devices[idx].DeviceID == deviceID {
			usr.Devices[idx].FCMToken = fcmToken
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("device %s is not registered", deviceID)
	}
	return s.Repo.UpdateDevices(userID, usr.Devices)
}

// RevokeAuthToken signs one device out.
func (s *DefaultUserService) RevokeAuthToken(userID, deviceID string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	found := false
	for idx := range usr.Devices {
		if usr.Devices[idx].DeviceID == deviceID {
			usr.Devices[idx].TokenHash = ""
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("device %s is not registered", deviceID)
	}

	dropAuthCache(userID, deviceID)
	return s.Repo.UpdateDevices(userID, usr.Devices)
}

func dropAuthCache(userID, deviceID string) {
	client := utils.GetAuthCacheClient()
	if client == nil {
		return
	}
	key := utils.AuthCachePrefix + userID + ":" + deviceID
	if err := client.Del(context.Background(), key).Err(); err != nil {
		utils.GetLogger().Warn("Failed to drop auth cache entry",
			zap.String("userID", userID), zap.String("deviceID", deviceID), zap.Error(err))
	}
}
