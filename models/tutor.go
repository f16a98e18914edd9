package models

import "time"

// TutorTurn is one exchange in a learner's tutor session.
type TutorTurn struct {
	Role string `json:"role"` // "learner" or "tutor"
	Text string `json:"text"`
}

// TutorContext is the short rolling window kept in Redis so the tutor can
// follow up without re-reading the whole session.
type TutorContext struct {
	LearnerID string      `json:"learnerId"`
	Subject   string      `json:"subject"`
	Turns     []TutorTurn `json:"turns"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// TutorHint is the response returned to the learner.
type TutorHint struct {
	Hint      string `json:"hint"`
	Subject   string `json:"subject"`
	Exhausted bool   `json:"exhausted"` // true once the per-day hint cap is hit
}
