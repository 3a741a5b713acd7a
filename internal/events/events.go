package events

import (
	"time"

	"github.com/google/uuid"
)

type ResultEventType string

const (
	// EventAssessmentCompleted is emitted once per completed attempt so the
	// external intake system can schedule counseling follow-up.
	EventAssessmentCompleted ResultEventType = "assessment.completed"
)

// Identity is the contact attached to a result submission. The engine itself
// collects no name or email, so completed attempts carry a placeholder
// identity; the real contact is gathered by the enrollment flow elsewhere.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ResultEvent is the fire-and-forget submission of a completed attempt's
// human-readable summary.
type ResultEvent struct {
	ID        string          `json:"id"`
	Type      ResultEventType `json:"type"`
	Source    string          `json:"source"`
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`

	AttemptID string   `json:"attempt_id"`
	Recipient Identity `json:"recipient"`
	Program   string   `json:"program"`
	Intent    string   `json:"intent"`
	Message   string   `json:"message"`
}

// NewResultEvent creates an assessment-completed event with envelope fields
// filled in.
func NewResultEvent(attemptID string, recipient Identity, program, message string) *ResultEvent {
	return &ResultEvent{
		ID:        uuid.NewString(),
		Type:      EventAssessmentCompleted,
		Source:    "aptitude-service",
		Version:   "1.0",
		Timestamp: time.Now(),
		AttemptID: attemptID,
		Recipient: recipient,
		Program:   program,
		Intent:    "Pre-Assessment",
		Message:   message,
	}
}
