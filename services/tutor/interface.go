// File: questly/services/tutor/interface.go
package tutor

import (
	"context"

	"questly/models"
)

// TutorService answers hint requests with kid-safe, age-appropriate nudges.
// It never gives the solution outright and it caps how many hints a learner
// can burn per day.
type TutorService interface {
	Hint(ctx context.Context, learnerID, subject, question string) (*models.TutorHint, error)
	ClearContext(ctx context.Context, learnerID string) error
}

// Generator produces a tutor reply for a prompt. Split out so tests can run
// without the Gemini API.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ContextStore keeps the rolling conversation window per learner.
type ContextStore interface {
	Get(ctx context.Context, learnerID string) (*models.TutorContext, error)
	Set(ctx context.Context, learnerID string, tc *models.TutorContext) error
	Clear(ctx context.Context, learnerID string) error
	// IncrementQuota bumps today's hint counter and returns the new value.
	IncrementQuota(ctx context.Context, learnerID string) (int64, error)
}

// DefaultTutorService is the production implementation.
type DefaultTutorService struct {
	Generator Generator
	Store     ContextStore
	// DailyHintCap is the per-learner hint budget per day.
	DailyHintCap int64
}
