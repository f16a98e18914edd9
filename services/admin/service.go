// File: questly/services/admin/service.go
package admin

import (
	"context"
	"fmt"
	"time"

	"questly/models"
	"questly/services/realtime"

	"github.com/google/uuid"
)

// ListUsers returns every account holding the role, stripped of auth
// material.
func (s *DefaultAdminService) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	users, err := s.Users.GetByRole(role)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s accounts: %w", role, err)
	}
	views := make([]models.User, 0, len(users))
	for _, usr := range users {
		views = append(views, usr.PublicView())
	}
	return views, nil
}

func (s *DefaultAdminService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	usr, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return usr, nil
}

// UpsertMission creates the mission when it has no ID and updates it
// otherwise.
func (s *DefaultAdminService) UpsertMission(ctx context.Context, mission models.Mission) (*models.Mission, error) {
	if mission.Title == "" || mission.Target <= 0 {
		return nil, fmt.Errorf("mission needs a title and a positive target")
	}
	if mission.ID == "" {
		mission.ID = uuid.New().String()
		mission.CreatedAt = time.Now()
		if _, err := s.Catalog.CreateMission(ctx, mission); err != nil {
			return nil, err
		}
		return &mission, nil
	}
	if err := s.Catalog.UpdateMission(ctx, mission); err != nil {
		return nil, err
	}
	return &mission, nil
}

// UpsertReward creates the reward when it has no ID and updates it
// otherwise.
func (s *DefaultAdminService) UpsertReward(ctx context.Context, reward models.Reward) (*models.Reward, error) {
	if reward.Name == "" || reward.Cost <= 0 {
		return nil, fmt.Errorf("reward needs a name and a positive cost")
	}
	if reward.ID == "" {
		reward.ID = uuid.New().String()
		reward.CreatedAt = time.Now()
		if _, err := s.Catalog.CreateReward(ctx, reward); err != nil {
			return nil, err
		}
		return &reward, nil
	}
	if err := s.Catalog.UpdateReward(ctx, reward); err != nil {
		return nil, err
	}
	return &reward, nil
}

func (s *DefaultAdminService) CreateChallenge(ctx context.Context, challenge models.Challenge) (*models.Challenge, error) {
	if challenge.Title == "" || challenge.DaysRequired <= 0 {
		return nil, fmt.Errorf("challenge needs a title and a positive day count")
	}
	challenge.ID = uuid.New().String()
	challenge.CreatedAt = time.Now()
	if _, err := s.Catalog.CreateChallenge(ctx, challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *DefaultAdminService) CreatePassage(ctx context.Context, passage models.VoicePassage) (*models.VoicePassage, error) {
	if passage.Text == "" {
		return nil, fmt.Errorf("passage needs text")
	}
	passage.ID = uuid.New().String()
	if _, err := s.Catalog.CreatePassage(ctx, passage); err != nil {
		return nil, err
	}
	return &passage, nil
}

// BroadcastToast pushes a sticky system banner onto the role's channel.
func (s *DefaultAdminService) BroadcastToast(ctx context.Context, role models.Role, severity models.Severity, message string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	return s.Notifier.Toast(ctx, realtime.RoleChannel(role), severity, message, 0)
}

func (s *DefaultAdminService) OpenFlags(ctx context.Context) ([]models.ModerationFlag, error) {
	flags, err := s.Moderation.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open flags: %w", err)
	}
	if flags == nil {
		flags = []models.ModerationFlag{}
	}
	return flags, nil
}

func (s *DefaultAdminService) ResolveFlag(ctx context.Context, flagID string) error {
	return s.Moderation.Resolve(ctx, flagID)
}
