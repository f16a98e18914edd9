// File: questly/services/user/signin.go
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"questly/models"
	"questly/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const signinApprovalAction = "signin"

// Authenticate verifies credentials and issues a device-bound token. A
// learner signing in from an unknown device parks behind a guardian code:
// the first call sends the code and returns ApprovalPendingError, the retry
// carries approvalCode and completes.
func (s *DefaultUserService) Authenticate(email, password, approvalCode string, device models.Device) (*AuthResponse, error) {
	logger := utils.GetLogger()
	email = strings.ToLower(strings.TrimSpace(email))

	usr, err := s.Repo.GetByEmail(email)
	if err != nil || usr == nil {
		return nil, AuthError{}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, AuthError{}
	}

	knownDevice := false
	for _, d := range usr.Devices {
		if d.DeviceID == device.DeviceID {
			knownDevice = true
			break
		}
	}

	if !knownDevice {
		if len(usr.Devices) >= maxDevices {
			return nil, DeviceLimitError{Limit: maxDevices}
		}
		if usr.Role == models.RoleLearner {
			if approvalCode == "" {
				if err := utils.InitiateGuardianApproval(usr.ID, signinApprovalAction,
					fmt.Sprintf("signing in on a new device (%s)", device.DeviceName), usr.GuardianEmail); err != nil {
					return nil, err
				}
				return nil, ApprovalPendingError{SessionID: usr.ID + ":" + device.DeviceID}
			}
			if err := utils.VerifyGuardianApprovalCode(usr.ID, signinApprovalAction, approvalCode); err != nil {
				return nil, err
			}
		}
		device.LastSeen = time.Now()
		usr.Devices = append(usr.Devices, device)
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, string(usr.Role), tokenLifetime)
	if err != nil {
		logger.Error("Authenticate: token issue failed", zap.String("userID", usr.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	for idx := range usr.Devices {
		if usr.Devices[idx].DeviceID == device.DeviceID {
			usr.Devices[idx].TokenHash = tokenHash
			usr.Devices[idx].LastSeen = time.Now()
		}
	}
	if err := s.Repo.UpdateDevices(usr.ID, usr.Devices); err != nil {
		return nil, fmt.Errorf("failed to bind device: %w", err)
	}

	// Drop any stale cached hash before priming the new one.
	if client := utils.GetAuthCacheClient(); client != nil {
		key := utils.AuthCachePrefix + usr.ID + ":" + device.DeviceID
		if err := client.Del(context.Background(), key).Err(); err != nil {
			logger.Warn("Failed to clear stale auth cache", zap.String("userID", usr.ID), zap.Error(err))
		}
	}
	primeAuthCache(usr.ID, device.DeviceID, tokenHash)

	return &AuthResponse{
		ID:          usr.ID,
		Token:       token,
		Username:    usr.Username,
		DisplayName: usr.DisplayName,
		Email:       usr.Email,
		Role:        usr.Role,
		AvatarURL:   usr.AvatarURL,
	}, nil
}
