// File: questly/services/user/signup.go
package user

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"questly/models"
	"questly/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	registrationSessionPrefix = "regSession:"
	registrationSessionTTL    = 30 * time.Minute
	signupApprovalAction      = "signup"
	maxDevices                = 3
	tokenLifetime             = 30 * 24 * time.Hour
)

// Register drives the stepped signup flow. Steps: "start" collects the
// account data; learner signups then park until step "approve" arrives with
// the guardian's code.
func (s *DefaultUserService) Register(req models.RegistrationRequest, device models.Device) (*AuthResponse, error) {
	switch req.Step {
	case "", "start":
		return s.startRegistration(req, device)
	case "approve":
		return s.approveRegistration(req, device)
	default:
		return nil, fmt.Errorf("unknown registration step %q", req.Step)
	}
}

func (s *DefaultUserService) startRegistration(req models.RegistrationRequest, device models.Device) (*AuthResponse, error) {
	basic := req.BasicData
	if basic == nil {
		return nil, fmt.Errorf("basicData is required")
	}
	basic.Email = strings.ToLower(strings.TrimSpace(basic.Email))
	basic.Username = strings.TrimSpace(basic.Username)

	if !models.ValidRole(basic.Role) {
		return nil, fmt.Errorf("unknown role %q", basic.Role)
	}
	if basic.Role == models.RoleAdmin {
		return nil, fmt.Errorf("admin accounts cannot self-register")
	}
	if basic.Role == models.RoleLearner && basic.GuardianEmail == "" {
		return nil, fmt.Errorf("learner accounts need a guardian email")
	}
	if len(basic.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if existing, _ := s.Repo.GetByEmail(basic.Email); existing != nil {
		return nil, DuplicateAccountError{Field: "email"}
	}
	if existing, _ := s.Repo.GetByUsername(basic.Username); existing != nil {
		return nil, DuplicateAccountError{Field: "username"}
	}

	if basic.Role != models.RoleLearner {
		return s.finalizeRegistration(basic, device, req.EmailUpdates)
	}

	// Learner signups wait for the guardian's code.
	session := models.RegistrationSession{
		TempID:         uuid.New().String(),
		BasicData:      basic,
		ApprovalStatus: "pending",
		CreatedAt:      time.Now(),
		LastUpdatedAt:  time.Now(),
		Devices:        []models.Device{device},
	}
	if err := saveRegistrationSession(session); err != nil {
		return nil, err
	}
	if err := utils.InitiateGuardianApproval(session.TempID, signupApprovalAction,
		fmt.Sprintf("creating a Questly account for %s", basic.Username), basic.GuardianEmail); err != nil {
		return nil, err
	}
	return nil, ApprovalPendingError{SessionID: session.TempID}
}

func (s *DefaultUserService) approveRegistration(req models.RegistrationRequest, device models.Device) (*AuthResponse, error) {
	if req.SessionID == "" || req.ApprovalCode == "" {
		return nil, fmt.Errorf("sessionID and approvalCode are required")
	}

	session, err := getRegistrationSession(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("registration session not found or expired")
	}
	if err := utils.VerifyGuardianApprovalCode(session.TempID, signupApprovalAction, req.ApprovalCode); err != nil {
		return nil, err
	}

	resp, err := s.finalizeRegistration(session.BasicData, device, req.EmailUpdates)
	if err != nil {
		return nil, err
	}
	deleteRegistrationSession(session.TempID)
	return resp, nil
}

// finalizeRegistration creates the account, binds the first device and
// issues a token.
func (s *DefaultUserService) finalizeRegistration(basic *models.RegistrationBasicData, device models.Device, emailUpdates bool) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(basic.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:            uuid.New().String(),
		Username:      basic.Username,
		DisplayName:   basic.DisplayName,
		Email:         basic.Email,
		PasswordHash:  string(hash),
		Role:          basic.Role,
		GuardianEmail: strings.ToLower(strings.TrimSpace(basic.GuardianEmail)),
		EmailUpdates:  emailUpdates,
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, string(usr.Role), tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	device.TokenHash = utils.HashToken(token)
	device.LastSeen = time.Now()
	device.Primary = true
	usr.Devices = []models.Device{device}

	if err := s.Repo.Create(usr); err != nil {
		return nil, err
	}
	primeAuthCache(usr.ID, device.DeviceID, device.TokenHash)

	return &AuthResponse{
		ID:          usr.ID,
		Token:       token,
		Username:    usr.Username,
		DisplayName: usr.DisplayName,
		Email:       usr.Email,
		Role:        usr.Role,
	}, nil
}

func primeAuthCache(userID, deviceID, tokenHash string) {
	client := utils.GetAuthCacheClient()
	if client == nil {
		return
	}
	key := utils.AuthCachePrefix + userID + ":" + deviceID
	if err := client.Set(context.Background(), key, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to prime auth cache", zap.String("userID", userID), zap.Error(err))
	}
}

func saveRegistrationSession(session models.RegistrationSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal registration session: %w", err)
	}
	client := utils.GetAuthCacheClient()
	key := registrationSessionPrefix + session.TempID
	if err := client.Set(context.Background(), key, data, registrationSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save registration session: %w", err)
	}
	return nil
}

func getRegistrationSession(sessionID string) (*models.RegistrationSession, error) {
	client := utils.GetAuthCacheClient()
	data, err := client.Get(context.Background(), registrationSessionPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session expired")
		}
		return nil, err
	}
	var session models.RegistrationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func deleteRegistrationSession(sessionID string) {
	client := utils.GetAuthCacheClient()
	if err := client.Del(context.Background(), registrationSessionPrefix+sessionID).Err(); err != nil {
		utils.GetLogger().Warn("Failed to delete registration session", zap.Error(err))
	}
}
