// File: questly/services/voice/service_test.go
package voice

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"questly/models"
	"questly/services/progression"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waveBytes(format, channels uint16, sampleRate uint32) []byte {
	header := waveHeader{
		FileSize:      36,
		FmtSize:       16,
		AudioFormat:   format,
		NumChannels:   channels,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * uint32(channels) * 2,
		BlockAlign:    channels * 2,
		BitsPerSample: 16,
	}
	copy(header.RiffTag[:], "RIFF")
	copy(header.WaveTag[:], "WAVE")
	copy(header.FmtTag[:], "fmt ")
	copy(header.DataTag[:], "data")

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, header)
	return buf.Bytes()
}

func TestValidateAudio(t *testing.T) {
	assert.NoError(t, validateAudio(waveBytes(1, 1, 16000)))

	assert.Error(t, validateAudio(nil), "empty audio")
	assert.Error(t, validateAudio([]byte("short")), "truncated header")
	assert.Error(t, validateAudio(waveBytes(1, 2, 16000)), "stereo")
	assert.Error(t, validateAudio(waveBytes(1, 1, 44100)), "wrong sample rate")
	assert.Error(t, validateAudio(waveBytes(7, 1, 16000)), "non-PCM format")

	notWave := waveBytes(1, 1, 16000)
	copy(notWave[8:], "AIFF")
	assert.Error(t, validateAudio(notWave), "wrong container tag")
}

func TestScoreAttempt(t *testing.T) {
	passage := &models.VoicePassage{ID: "p1", Text: "The quick brown fox jumps!"}

	result := scoreAttempt(passage, "the quick brown fox jumps")
	assert.Equal(t, 5, result.WordsTotal)
	assert.Equal(t, 5, result.WordsRead)
	assert.InDelta(t, 1.0, result.Accuracy, 0.001)

	result = scoreAttempt(passage, "the brown fox")
	assert.Equal(t, 3, result.WordsRead)
	assert.InDelta(t, 0.6, result.Accuracy, 0.001)

	result = scoreAttempt(passage, "")
	assert.Equal(t, 0, result.WordsRead)
	assert.Zero(t, result.Accuracy)
}

func TestScoreAttemptCountsRepeatsOnce(t *testing.T) {
	passage := &models.VoicePassage{ID: "p1", Text: "run run run far"}

	// Saying "run" once only covers one of the three.
	result := scoreAttempt(passage, "run far")
	assert.Equal(t, 2, result.WordsRead)
	assert.Equal(t, 4, result.WordsTotal)
}

func TestNormalizeWordsKeepsContractions(t *testing.T) {
	words := normalizeWords("Don't stop, it's 10 o'clock!")
	assert.Equal(t, []string{"don't", "stop", "it's", "10", "o'clock"}, words)
}

// --- Attempt wiring --------------------------------------------------------

type cannedTranscriber struct {
	transcript string
	err        error
}

func (c *cannedTranscriber) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	return c.transcript, c.err
}

type passageCatalog struct {
	passage *models.VoicePassage
}

func (p *passageCatalog) CreateMission(ctx context.Context, m models.Mission) (string, error) {
	return "", nil
}
func (p *passageCatalog) GetMission(ctx context.Context, id string) (*models.Mission, error) {
	return nil, errors.New("not found")
}
func (p *passageCatalog) ActiveMissions(ctx context.Context, kind models.MissionKind) ([]models.Mission, error) {
	return nil, nil
}
func (p *passageCatalog) UpdateMission(ctx context.Context, m models.Mission) error { return nil }
func (p *passageCatalog) CreateReward(ctx context.Context, r models.Reward) (string, error) {
	return "", nil
}
func (p *passageCatalog) GetReward(ctx context.Context, id string) (*models.Reward, error) {
	return nil, errors.New("not found")
}
func (p *passageCatalog) ActiveRewards(ctx context.Context) ([]models.Reward, error) {
	return nil, nil
}
func (p *passageCatalog) UpdateReward(ctx context.Context, r models.Reward) error { return nil }
func (p *passageCatalog) CreateChallenge(ctx context.Context, c models.Challenge) (string, error) {
	return "", nil
}
func (p *passageCatalog) GetChallenge(ctx context.Context, id string) (*models.Challenge, error) {
	return nil, errors.New("not found")
}
func (p *passageCatalog) ActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	return nil, nil
}
func (p *passageCatalog) CreatePassage(ctx context.Context, v models.VoicePassage) (string, error) {
	return v.ID, nil
}
func (p *passageCatalog) GetPassage(ctx context.Context, id string) (*models.VoicePassage, error) {
	if p.passage != nil && p.passage.ID == id {
		return p.passage, nil
	}
	return nil, errors.New("passage not found")
}
func (p *passageCatalog) ActivePassages(ctx context.Context, maxLevel int) ([]models.VoicePassage, error) {
	if p.passage == nil {
		return nil, nil
	}
	return []models.VoicePassage{*p.passage}, nil
}

type awardRecorder struct {
	xp    int64
	calls int
	err   error
}

func (a *awardRecorder) State(ctx context.Context, learnerID string) (*models.LearnerState, error) {
	return nil, nil
}
func (a *awardRecorder) MissionBoard(ctx context.Context, learnerID string) ([]progression.MissionBoardEntry, error) {
	return nil, nil
}
func (a *awardRecorder) AdvanceMission(ctx context.Context, learnerID, missionID string, delta int) (*progression.MissionBoardEntry, error) {
	return nil, nil
}
func (a *awardRecorder) ChallengeBoard(ctx context.Context, learnerID string) ([]progression.ChallengeBoardEntry, error) {
	return nil, nil
}
func (a *awardRecorder) ClaimChallenge(ctx context.Context, learnerID, challengeID string) (*models.ChallengeProgress, error) {
	return nil, nil
}
func (a *awardRecorder) Shop(ctx context.Context, learnerID string) ([]models.Reward, error) {
	return nil, nil
}
func (a *awardRecorder) Redeem(ctx context.Context, learnerID, rewardID string) (*models.Redemption, error) {
	return nil, nil
}
func (a *awardRecorder) ApproveRedemption(ctx context.Context, learnerID, redemptionID, code string) (*models.Redemption, error) {
	return nil, nil
}
func (a *awardRecorder) Redemptions(ctx context.Context, learnerID string) ([]models.Redemption, error) {
	return nil, nil
}
func (a *awardRecorder) AwardXP(ctx context.Context, learnerID string, xp, coins int64) (*models.LearnerState, error) {
	a.calls++
	a.xp += xp
	return &models.LearnerState{LearnerID: learnerID, XP: a.xp}, a.err
}
func (a *awardRecorder) CreditCoins(ctx context.Context, learnerID string, coins int64) error {
	return nil
}

func TestAttemptAwardsXPOnPassingRead(t *testing.T) {
	awards := &awardRecorder{}
	svc := &DefaultVoiceService{
		Catalog:     &passageCatalog{passage: &models.VoicePassage{ID: "p1", Text: "the cat sat on the mat"}},
		Progression: awards,
		Transcriber: &cannedTranscriber{transcript: "the cat sat on the mat"},
	}

	result, err := svc.Attempt(context.Background(), "l1", "p1", waveBytes(1, 1, 16000))
	require.NoError(t, err)

	assert.Equal(t, 6, result.WordsRead)
	assert.InDelta(t, 1.0, result.Accuracy, 0.001)
	assert.Equal(t, int64(12), result.XPAwarded) // 6 words * 2 XP
	assert.Equal(t, 1, awards.calls)
}

func TestAttemptBelowThresholdEarnsNothing(t *testing.T) {
	awards := &awardRecorder{}
	svc := &DefaultVoiceService{
		Catalog:     &passageCatalog{passage: &models.VoicePassage{ID: "p1", Text: "the cat sat on the mat"}},
		Progression: awards,
		Transcriber: &cannedTranscriber{transcript: "the cat"},
	}

	result, err := svc.Attempt(context.Background(), "l1", "p1", waveBytes(1, 1, 16000))
	require.NoError(t, err)

	assert.Zero(t, result.XPAwarded)
	assert.Zero(t, awards.calls)
}

func TestAttemptRejectsBadAudioBeforeTranscribing(t *testing.T) {
	svc := &DefaultVoiceService{
		Catalog:     &passageCatalog{passage: &models.VoicePassage{ID: "p1", Text: "hello"}},
		Progression: &awardRecorder{},
		Transcriber: &cannedTranscriber{err: errors.New("should not be called")},
	}

	_, err := svc.Attempt(context.Background(), "l1", "p1", waveBytes(1, 2, 16000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mono")
}
