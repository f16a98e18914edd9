// File: questly/services/tutor/service.go
package tutor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"questly/models"
)

const (
	defaultDailyHintCap = 10
	maxContextTurns     = 12
)

// hintPreamble pins the model to the product's voice: short, encouraging
// nudges in language a child can follow, never the full answer.
const hintPreamble = `You are a friendly tutor inside a learning game for children aged 7 to 12.
Give one short hint that helps the learner take the next step on their own.
Rules: never give the final answer; use simple, encouraging words; no links;
no topics outside the question; at most three sentences.`

func NewDefaultTutorService(generator Generator, store ContextStore) *DefaultTutorService {
	return &DefaultTutorService{
		Generator:    generator,
		Store:        store,
		DailyHintCap: defaultDailyHintCap,
	}
}

// Hint returns the next nudge for the learner's question, carrying the
// rolling conversation so follow-ups make sense.
func (s *DefaultTutorService) Hint(ctx context.Context, learnerID, subject, question string) (*models.TutorHint, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}

	budget := s.DailyHintCap
	if budget <= 0 {
		budget = defaultDailyHintCap
	}
	used, err := s.Store.IncrementQuota(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check hint quota: %w", err)
	}
	if used > budget {
		return &models.TutorHint{
			Hint:      "You've used all your hints for today. Try it on your own, you've got this!",
			Subject:   subject,
			Exhausted: true,
		}, nil
	}

	tc, err := s.Store.Get(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tutor context: %w", err)
	}
	if tc.Subject != subject {
		// New subject, fresh conversation.
		tc.Subject = subject
		tc.Turns = nil
	}

	reply, err := s.Generator.GenerateContent(ctx, s.buildPrompt(tc, subject, question))
	if err != nil {
		return nil, fmt.Errorf("tutor generation failed: %w", err)
	}
	reply = strings.TrimSpace(reply)

	tc.Turns = append(tc.Turns,
		models.TutorTurn{Role: "learner", Text: question},
		models.TutorTurn{Role: "tutor", Text: reply},
	)
	if len(tc.Turns) > maxContextTurns {
		tc.Turns = tc.Turns[len(tc.Turns)-maxContextTurns:]
	}
	tc.UpdatedAt = time.Now()
	if err := s.Store.Set(ctx, learnerID, tc); err != nil {
		return nil, fmt.Errorf("failed to save tutor context: %w", err)
	}

	return &models.TutorHint{
		Hint:      reply,
		Subject:   subject,
		Exhausted: used >= budget,
	}, nil
}

func (s *DefaultTutorService) buildPrompt(tc *models.TutorContext, subject, question string) string {
	var sb strings.Builder
	sb.WriteString(hintPreamble)
	sb.WriteString("\n\nSubject: ")
	sb.WriteString(subject)
	sb.WriteString("\n")
	for _, turn := range tc.Turns {
		fmt.Fprintf(&sb, "%s: %s\n", turn.Role, turn.Text)
	}
	fmt.Fprintf(&sb, "learner: %s\ntutor:", question)
	return sb.String()
}

func (s *DefaultTutorService) ClearContext(ctx context.Context, learnerID string) error {
	return s.Store.Clear(ctx, learnerID)
}
