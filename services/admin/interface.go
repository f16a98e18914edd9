// File: questly/services/admin/interface.go
package admin

import (
	"context"

	catalogRepo "questly/database/repository/catalog"
	moderationRepo "questly/database/repository/moderation"
	userRepo "questly/database/repository/user"
	"questly/models"
	"questly/services/notification"
)

// AdminService covers the operator surface: account inspection, catalog
// authoring, moderation and platform-wide broadcasts.
type AdminService interface {
	ListUsers(ctx context.Context, role models.Role) ([]models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)

	UpsertMission(ctx context.Context, mission models.Mission) (*models.Mission, error)
	UpsertReward(ctx context.Context, reward models.Reward) (*models.Reward, error)
	CreateChallenge(ctx context.Context, challenge models.Challenge) (*models.Challenge, error)
	CreatePassage(ctx context.Context, passage models.VoicePassage) (*models.VoicePassage, error)

	// BroadcastToast pushes a sticky system banner to every connected
	// client of a role.
	BroadcastToast(ctx context.Context, role models.Role, severity models.Severity, message string) error

	OpenFlags(ctx context.Context) ([]models.ModerationFlag, error)
	ResolveFlag(ctx context.Context, flagID string) error
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Users      userRepo.UserRepository
	Catalog    catalogRepo.CatalogRepository
	Moderation moderationRepo.ModerationRepository
	Notifier   notification.NotificationService
}
