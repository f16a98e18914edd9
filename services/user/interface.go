// File: questly/services/user/interface.go
package user

import (
	"context"

	classroomRepo "questly/database/repository/classroom"
	userRepo "questly/database/repository/user"
	"questly/models"
)

// UserService covers accounts, authentication, devices and the
// guardian/classroom links that scope what each account can see.
type UserService interface {
	// Register drives the stepped signup flow. Learner signups pause at
	// the approval step until the guardian's code comes back; other
	// roles complete in one call.
	Register(req models.RegistrationRequest, device models.Device) (*AuthResponse, error)
	// Authenticate verifies credentials and issues a device-bound token.
	// A learner signing in from an unknown device gets an
	// ApprovalPendingError until a guardian code arrives.
	Authenticate(email, password, approvalCode string, device models.Device) (*AuthResponse, error)

	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateProfile(userID string, update ProfileUpdate) (*models.User, error)
	UpdatePassword(userID, currentPassword, newPassword, currentDeviceID string) error
	DeleteUser(userID string) error

	GetUserDevices(userID string) ([]models.Device, error)
	SignOutOtherDevices(userID, currentDeviceID string) error
	UpdateFCMToken(userID, deviceID, fcmToken string) error
	RevokeAuthToken(userID, deviceID string) error

	// LinkLearner attaches a learner to the calling guardian. The
	// learner's stored guardian email must match the guardian's account.
	LinkLearner(ctx context.Context, guardianID, learnerUsername string) (*models.User, error)
	GuardiansOf(ctx context.Context, learnerID string) ([]string, error)
	// JoinClassroom puts a learner into the classroom behind the join
	// code.
	JoinClassroom(ctx context.Context, learnerID, joinCode string) (*models.Classroom, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	Classrooms classroomRepo.ClassroomRepository
}

// AuthResponse is returned on successful registration or sign-in.
type AuthResponse struct {
	ID          string      `json:"id"`
	Token       string      `json:"token"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	AvatarURL   string      `json:"avatarUrl,omitempty"`
}

// ProfileUpdate is the subset of account fields a user may change.
type ProfileUpdate struct {
	DisplayName  string `json:"displayName,omitempty"`
	AvatarID     string `json:"avatarId,omitempty"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	EmailUpdates *bool  `json:"emailUpdates,omitempty"`
}
