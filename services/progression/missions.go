// File: questly/services/progression/missions.go
package progression

import (
	"context"
	"fmt"
	"time"

	"questly/models"
	"questly/utils"

	"go.uber.org/zap"
)

// MissionBoard returns every active mission the learner can see, paired with
// the run in the current cycle.
func (s *DefaultProgressionService) MissionBoard(ctx context.Context, learnerID string) ([]MissionBoardEntry, error) {
	state, err := s.Progress.GetState(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	var missions []models.Mission
	for _, kind := range []models.MissionKind{models.MissionDaily, models.MissionWeekly, models.MissionStory} {
		batch, err := s.Catalog.ActiveMissions(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s missions: %w", kind, err)
		}
		missions = append(missions, batch...)
	}

	now := time.Now()
	cycleKeys := []string{DayKey(now), WeekKey(now), ""}
	runs, err := s.Progress.ListMissionProgress(ctx, learnerID, cycleKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to load mission runs: %w", err)
	}

	runByMission := make(map[string]models.MissionProgress, len(runs))
	for _, run := range runs {
		runByMission[run.MissionID] = run
	}

	board := make([]MissionBoardEntry, 0, len(missions))
	for _, mission := range missions {
		if mission.MinLevel > state.Level {
			continue
		}
		entry := MissionBoardEntry{Mission: mission}
		if run, ok := runByMission[mission.ID]; ok && run.CycleKey == CycleKeyFor(mission.Kind, now) {
			entry.Progress = run.Progress
			entry.Completed = run.Completed
		}
		board = append(board, entry)
	}
	return board, nil
}

// AdvanceMission bumps the learner's run by delta. Crossing the target
// completes the mission and pays out exactly once even when two requests
// race: MarkMissionRewarded is the atomic gate.
func (s *DefaultProgressionService) AdvanceMission(ctx context.Context, learnerID, missionID string, delta int) (*MissionBoardEntry, error) {
	if delta <= 0 {
		delta = 1
	}

	mission, err := s.Catalog.GetMission(ctx, missionID)
	if err != nil {
		return nil, MissionUnavailableError{MissionID: missionID, Reason: "not found"}
	}
	if !mission.Active {
		return nil, MissionUnavailableError{MissionID: missionID, Reason: "inactive"}
	}

	state, err := s.Progress.GetState(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if mission.MinLevel > state.Level {
		return nil, MissionUnavailableError{MissionID: missionID, Reason: fmt.Sprintf("requires level %d", mission.MinLevel)}
	}

	cycleKey := CycleKeyFor(mission.Kind, time.Now())
	run, err := s.Progress.IncrementMissionProgress(ctx, learnerID, missionID, cycleKey, delta)
	if err != nil {
		return nil, err
	}

	entry := &MissionBoardEntry{
		Mission:   *mission,
		Progress:  run.Progress,
		Completed: run.Completed,
	}
	if run.Progress < mission.Target || run.Completed {
		return entry, nil
	}

	rewarded, err := s.Progress.MarkMissionRewarded(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	if !rewarded {
		// Another request beat us to the payout.
		entry.Completed = true
		return entry, nil
	}
	entry.Completed = true

	if _, err := s.AwardXP(ctx, learnerID, mission.XPReward, mission.CoinReward); err != nil {
		utils.GetLogger().Error("Mission payout failed after completion",
			zap.String("missionID", missionID), zap.String("learnerID", learnerID), zap.Error(err))
	}

	usr, err := s.Users.GetByID(learnerID)
	actor := "A learner"
	classroomID := ""
	if err == nil {
		actor = usr.DisplayName
		if len(usr.ClassroomIDs) > 0 {
			classroomID = usr.ClassroomIDs[0]
		}
	}
	if _, err := s.Activity.Record(ctx, models.Activity{
		Type:        models.ActivityMissionCompleted,
		Description: fmt.Sprintf("%s completed %q", actor, mission.Title),
		Actor:       actor,
		UserID:      learnerID,
		ClassroomID: classroomID,
	}); err != nil {
		utils.GetLogger().Warn("Failed to record mission completion",
			zap.String("missionID", missionID), zap.Error(err))
	}

	if err := s.Notifier.Notify(ctx, learnerID, "mission_completed",
		"Mission complete!",
		fmt.Sprintf("%q is done. +%d XP, +%d coins", mission.Title, mission.XPReward, mission.CoinReward),
		map[string]string{"missionId": mission.ID}); err != nil {
		utils.GetLogger().Warn("Failed to notify mission completion", zap.Error(err))
	}

	return entry, nil
}
