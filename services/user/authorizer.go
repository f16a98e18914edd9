// File: questly/services/user/authorizer.go
package user

import (
	"context"
	"strings"

	"questly/models"
)

// ChannelAuthorizer decides whether an account may subscribe to a realtime
// feed channel. It implements realtime.Authorizer.
type ChannelAuthorizer struct {
	Users *DefaultUserService
}

func (a *ChannelAuthorizer) CanSubscribe(ctx context.Context, userID, role, channel string) (bool, error) {
	if role == string(models.RoleAdmin) {
		return true, nil
	}

	kind, target, ok := strings.Cut(channel, ":")
	if !ok {
		return false, nil
	}

	switch kind {
	case "user":
		if target == userID {
			return true, nil
		}
		// Guardians may watch their linked learners.
		if role == string(models.RoleGuardian) {
			guardian, err := a.Users.GetUserByID(userID)
			if err != nil {
				return false, err
			}
			for _, id := range guardian.LearnerIDs {
				if id == target {
					return true, nil
				}
			}
		}
		return false, nil

	case "classroom":
		usr, err := a.Users.GetUserByID(userID)
		if err != nil {
			return false, err
		}
		for _, id := range usr.ClassroomIDs {
			if id == target {
				return true, nil
			}
		}
		if role == string(models.RoleEducator) {
			classroom, err := a.Users.Classrooms.GetByID(ctx, target)
			if err != nil {
				return false, err
			}
			return classroom != nil && classroom.EducatorID == userID, nil
		}
		return false, nil

	case "role":
		return target == role, nil

	default:
		return false, nil
	}
}
