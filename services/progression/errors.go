// File: questly/services/progression/errors.go
package progression

import (
	"fmt"

	progressRepo "questly/database/repository/progress"
)

// Re-exported so handlers can map them without importing the repo package.
var (
	ErrInsufficientCoins = progressRepo.ErrInsufficientCoins
	ErrOutOfStock        = progressRepo.ErrOutOfStock
	ErrNotClaimable      = progressRepo.ErrNotClaimable
)

// MissionUnavailableError means the mission cannot be advanced by this
// learner right now.
type MissionUnavailableError struct {
	MissionID string
	Reason    string
}

func (e MissionUnavailableError) Error() string {
	return fmt.Sprintf("mission %s unavailable: %s", e.MissionID, e.Reason)
}

// RewardUnavailableError means the reward cannot be redeemed by this learner.
type RewardUnavailableError struct {
	RewardID string
	Reason   string
}

func (e RewardUnavailableError) Error() string {
	return fmt.Sprintf("reward %s unavailable: %s", e.RewardID, e.Reason)
}

// ApprovalPendingError reports that the redemption is parked until the
// guardian's code arrives.
type ApprovalPendingError struct {
	RedemptionID string
}

func (e ApprovalPendingError) Error() string {
	return fmt.Sprintf("redemption %s awaits guardian approval", e.RedemptionID)
}
