// File: questly/services/user/guardian.go
package user

import (
	"context"
	"fmt"
	"strings"

	"questly/models"
)

// LinkLearner attaches a learner to the calling guardian. The learner's
// stored guardian email must match the guardian's account email, which is
// the only proof of relationship we hold.
func (s *DefaultUserService) LinkLearner(ctx context.Context, guardianID, learnerUsername string) (*models.User, error) {
	guardian, err := s.Repo.GetByID(guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guardian: %w", err)
	}
	if guardian.Role != models.RoleGuardian {
		return nil, fmt.Errorf("only guardian accounts can link learners")
	}

	learner, err := s.Repo.GetByUsername(strings.TrimSpace(learnerUsername))
	if err != nil || learner == nil {
		return nil, fmt.Errorf("no learner with that username")
	}
	if learner.Role != models.RoleLearner {
		return nil, fmt.Errorf("that account is not a learner")
	}
	if !strings.EqualFold(learner.GuardianEmail, guardian.Email) {
		return nil, fmt.Errorf("learner is not registered under your email")
	}

	if err := s.Repo.LinkLearner(guardianID, learner.ID); err != nil {
		return nil, err
	}
	view := learner.PublicView()
	return &view, nil
}

// GuardiansOf returns the guardian account IDs linked to a learner.
func (s *DefaultUserService) GuardiansOf(ctx context.Context, learnerID string) ([]string, error) {
	learner, err := s.Repo.GetByID(learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch learner %s: %w", learnerID, err)
	}
	if learner.GuardianEmail == "" {
		return nil, nil
	}

	guardian, err := s.Repo.GetByEmail(learner.GuardianEmail)
	if err != nil || guardian == nil || guardian.Role != models.RoleGuardian {
		return nil, nil
	}
	for _, id := range guardian.LearnerIDs {
		if id == learnerID {
			return []string{guardian.ID}, nil
		}
	}
	return nil, nil
}

// JoinClassroom puts a learner into the classroom behind the join code and
// records the membership on the account.
func (s *DefaultUserService) JoinClassroom(ctx context.Context, learnerID, joinCode string) (*models.Classroom, error) {
	learner, err := s.Repo.GetByID(learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch learner %s: %w", learnerID, err)
	}
	if learner.Role != models.RoleLearner {
		return nil, fmt.Errorf("only learners can join classrooms")
	}

	classroom, err := s.Classrooms.GetByJoinCode(ctx, strings.ToUpper(strings.TrimSpace(joinCode)))
	if err != nil || classroom == nil {
		return nil, fmt.Errorf("no classroom with that code")
	}

	if err := s.Classrooms.AddLearner(ctx, classroom.ID, learnerID); err != nil {
		return nil, err
	}

	already := false
	for _, id := range learner.ClassroomIDs {
		if id == classroom.ID {
			already = true
			break
		}
	}
	if !already {
		learner.ClassroomIDs = append(learner.ClassroomIDs, classroom.ID)
		if err := s.Repo.Update(learner); err != nil {
			return nil, err
		}
	}
	return classroom, nil
}
