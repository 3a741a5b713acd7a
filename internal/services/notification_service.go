package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/musicraft-academy/aptitude-service/internal/events"
	"github.com/musicraft-academy/aptitude-service/internal/models"
)

const placeholderEmail = "assessment@musicraftacademy.com"

// SubmissionResult reports the outcome of the best-effort result submission.
// A failed submission surfaces as a warning, never as an error: the local
// completion must not be blocked or rolled back by sink failures.
type SubmissionResult struct {
	Delivered bool   `json:"delivered"`
	Warning   string `json:"warning,omitempty"`
}

// NotificationService builds the human-readable summary of a completed
// attempt and hands it to the result publisher.
type NotificationService interface {
	SubmitResult(ctx context.Context, attempt *models.AssessmentAttempt) SubmissionResult
}

type notificationService struct {
	publisher events.ResultPublisher
	logger    *slog.Logger
}

func NewNotificationService(publisher events.ResultPublisher, logger *slog.Logger) NotificationService {
	return &notificationService{publisher: publisher, logger: logger}
}

func (s *notificationService) SubmitResult(ctx context.Context, attempt *models.AssessmentAttempt) SubmissionResult {
	event := events.NewResultEvent(
		attempt.ID,
		events.Identity{
			// The engine collects no contact details; the enrollment form
			// outside this service does.
			Name:  fmt.Sprintf("Assessment User %s", shortID(attempt.ID)),
			Email: placeholderEmail,
		},
		string(attempt.RecommendedLevel),
		buildSummaryMessage(attempt),
	)

	if err := s.publisher.PublishResultEvent(ctx, event); err != nil {
		s.logger.Warn("Result submission failed",
			"attempt_id", attempt.ID,
			"error", err)
		return SubmissionResult{Warning: fmt.Sprintf("result submission failed: %v", err)}
	}
	return SubmissionResult{Delivered: true}
}

func buildSummaryMessage(attempt *models.AssessmentAttempt) string {
	sectionParts := make([]string, 0, len(attempt.SectionScores))
	for _, score := range attempt.SectionScores {
		sectionParts = append(sectionParts,
			fmt.Sprintf("%s: %d/100 (%s)", score.SectionID, score.NormalizedScore, score.Band))
	}

	completedAt := time.Now().UTC()
	if attempt.CompletedAt != nil {
		completedAt = time.UnixMilli(*attempt.CompletedAt).UTC()
	}

	return fmt.Sprintf(`Assessment Results:
- Overall Score: %d/100 (Band %s)
- Recommended Level: %s
- Section Scores: %s
- Total Answers: %d
- Started: %s
- Completed: %s
- Attempt ID: %s`,
		attempt.OverallScore,
		attempt.OverallBand,
		attempt.RecommendedLevel,
		strings.Join(sectionParts, ", "),
		len(attempt.Answers),
		time.UnixMilli(attempt.StartedAt).UTC().Format(time.RFC3339),
		completedAt.Format(time.RFC3339),
		attempt.ID,
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
