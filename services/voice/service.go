// File: questly/services/voice/service.go
package voice

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"questly/models"
	"questly/utils"

	"go.uber.org/zap"
)

// A read counts as passing at 70% word accuracy. XP scales with accuracy so
// a careful read of a long passage beats rushing a short one.
const (
	passAccuracy = 0.7
	xpPerWord    = 2
)

func (s *DefaultVoiceService) Passages(ctx context.Context, maxLevel int) ([]models.VoicePassage, error) {
	passages, err := s.Catalog.ActivePassages(ctx, maxLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to list passages: %w", err)
	}
	if passages == nil {
		passages = []models.VoicePassage{}
	}
	return passages, nil
}

func (s *DefaultVoiceService) Attempt(ctx context.Context, learnerID, passageID string, audio []byte) (*models.VoiceAttemptResult, error) {
	passage, err := s.Catalog.GetPassage(ctx, passageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch passage %s: %w", passageID, err)
	}
	if err := validateAudio(audio); err != nil {
		return nil, err
	}

	transcript, err := s.Transcriber.Transcribe(ctx, audio, "en-US")
	if err != nil {
		return nil, err
	}

	result := scoreAttempt(passage, transcript)
	if result.Accuracy >= passAccuracy {
		result.XPAwarded = int64(result.WordsRead * xpPerWord)
		if _, err := s.Progression.AwardXP(ctx, learnerID, result.XPAwarded, 0); err != nil {
			utils.GetLogger().Warn("reading attempt passed but XP award failed",
				zap.String("learnerID", learnerID),
				zap.String("passageID", passageID),
				zap.Error(err))
			result.XPAwarded = 0
		}
	}
	return result, nil
}

// scoreAttempt counts how many of the passage's words show up in the
// transcript. Repeated words must be read as often as they appear.
func scoreAttempt(passage *models.VoicePassage, transcript string) *models.VoiceAttemptResult {
	want := normalizeWords(passage.Text)
	got := normalizeWords(transcript)

	spoken := make(map[string]int, len(got))
	for _, w := range got {
		spoken[w]++
	}

	read := 0
	for _, w := range want {
		if spoken[w] > 0 {
			spoken[w]--
			read++
		}
	}

	accuracy := 0.0
	if len(want) > 0 {
		accuracy = float64(read) / float64(len(want))
	}

	return &models.VoiceAttemptResult{
		PassageID:  passage.ID,
		Transcript: transcript,
		WordsRead:  read,
		WordsTotal: len(want),
		Accuracy:   accuracy,
	}
}

// normalizeWords lowercases and strips punctuation so "Fox!" matches "fox".
func normalizeWords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}
