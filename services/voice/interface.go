// File: questly/services/voice/interface.go
package voice

import (
	"context"

	catalogRepo "questly/database/repository/catalog"
	"questly/models"
	"questly/services/progression"
)

// VoiceService runs reading practice: the learner records a passage, the
// audio is transcribed and scored against the text, and a good read earns XP.
type VoiceService interface {
	// Passages lists passages the learner can attempt at their level.
	Passages(ctx context.Context, maxLevel int) ([]models.VoicePassage, error)
	// Attempt scores a WAV recording of the passage and awards XP on a
	// passing read.
	Attempt(ctx context.Context, learnerID, passageID string, audio []byte) (*models.VoiceAttemptResult, error)
}

// Transcriber converts speech audio to text. The production implementation
// calls Google Cloud Speech; tests substitute a canned one.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error)
}

// DefaultVoiceService is the production implementation.
type DefaultVoiceService struct {
	Catalog     catalogRepo.CatalogRepository
	Progression progression.ProgressionService
	Transcriber Transcriber
}
