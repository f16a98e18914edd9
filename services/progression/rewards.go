// File: questly/services/progression/rewards.go
package progression

import (
	"context"
	"fmt"

	"questly/models"
	"questly/utils"

	"go.uber.org/zap"
)

const redemptionApprovalAction = "redeem"

// Shop returns the rewards the learner can currently see. Level-locked items
// are filtered out rather than greyed: young users should not window-shop
// things they cannot have.
func (s *DefaultProgressionService) Shop(ctx context.Context, learnerID string) ([]models.Reward, error) {
	state, err := s.Progress.GetState(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	rewards, err := s.Catalog.ActiveRewards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rewards: %w", err)
	}

	visible := make([]models.Reward, 0, len(rewards))
	for _, reward := range rewards {
		if reward.MinLevel <= state.Level {
			visible = append(visible, reward)
		}
	}
	return visible, nil
}

// Redeem spends coins on a reward. Plain rewards grant immediately;
// approval-gated ones debit the wallet, park as pending and mail the
// guardian a code. Either way the repository transaction keeps the wallet
// from going negative and the stock from going below zero.
func (s *DefaultProgressionService) Redeem(ctx context.Context, learnerID, rewardID string) (*models.Redemption, error) {
	reward, err := s.Catalog.GetReward(ctx, rewardID)
	if err != nil {
		return nil, RewardUnavailableError{RewardID: rewardID, Reason: "not found"}
	}
	if !reward.Active {
		return nil, RewardUnavailableError{RewardID: rewardID, Reason: "inactive"}
	}

	state, err := s.Progress.GetState(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if reward.MinLevel > state.Level {
		return nil, RewardUnavailableError{RewardID: rewardID, Reason: fmt.Sprintf("requires level %d", reward.MinLevel)}
	}

	status := models.RedemptionGranted
	if reward.RequiresApproval {
		status = models.RedemptionPendingApproval
	}

	redemption, err := s.Progress.RedeemReward(ctx, learnerID, reward, status)
	if err != nil {
		return nil, err
	}

	if reward.RequiresApproval {
		usr, err := s.Users.GetByID(learnerID)
		if err != nil || usr.GuardianEmail == "" {
			utils.GetLogger().Error("Approval-gated redemption with no reachable guardian",
				zap.String("learnerID", learnerID), zap.String("redemptionID", redemption.ID))
		} else if err := utils.InitiateGuardianApproval(learnerID, redemptionApprovalAction, reward.Name, usr.GuardianEmail); err != nil {
			utils.GetLogger().Error("Failed to send guardian approval code",
				zap.String("redemptionID", redemption.ID), zap.Error(err))
		}
		return redemption, ApprovalPendingError{RedemptionID: redemption.ID}
	}

	s.recordRedemption(ctx, learnerID, redemption)
	return redemption, nil
}

// ApproveRedemption releases a pending redemption with the guardian's code.
func (s *DefaultProgressionService) ApproveRedemption(ctx context.Context, learnerID, redemptionID, code string) (*models.Redemption, error) {
	redemption, err := s.Progress.GetRedemption(ctx, redemptionID)
	if err != nil {
		return nil, err
	}
	if redemption == nil || redemption.LearnerID != learnerID {
		return nil, RewardUnavailableError{RewardID: redemptionID, Reason: "redemption not found"}
	}

	if err := utils.VerifyGuardianApprovalCode(learnerID, redemptionApprovalAction, code); err != nil {
		return nil, err
	}

	flipped, err := s.Progress.SetRedemptionStatus(ctx, redemptionID,
		models.RedemptionPendingApproval, models.RedemptionGranted)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, RewardUnavailableError{RewardID: redemptionID, Reason: "not pending"}
	}

	redemption.Status = models.RedemptionGranted
	s.recordRedemption(ctx, learnerID, redemption)
	return redemption, nil
}

func (s *DefaultProgressionService) recordRedemption(ctx context.Context, learnerID string, redemption *models.Redemption) {
	usr, err := s.Users.GetByID(learnerID)
	actor := "A learner"
	if err == nil {
		actor = usr.DisplayName
	}
	if _, err := s.Activity.Record(ctx, models.Activity{
		Type:        models.ActivityRewardRedeemed,
		Description: fmt.Sprintf("%s redeemed %q", actor, redemption.RewardName),
		Actor:       actor,
		UserID:      learnerID,
		Important:   true,
	}); err != nil {
		utils.GetLogger().Warn("Failed to record redemption",
			zap.String("redemptionID", redemption.ID), zap.Error(err))
	}
}

// Redemptions returns the learner's redemption history, newest first.
func (s *DefaultProgressionService) Redemptions(ctx context.Context, learnerID string) ([]models.Redemption, error) {
	redemptions, err := s.Progress.ListRedemptions(ctx, learnerID, 50)
	if err != nil {
		return nil, err
	}
	if redemptions == nil {
		redemptions = []models.Redemption{}
	}
	return redemptions, nil
}
