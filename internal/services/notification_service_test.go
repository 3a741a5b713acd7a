package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicraft-academy/aptitude-service/internal/events"
	"github.com/musicraft-academy/aptitude-service/internal/models"
	"github.com/musicraft-academy/aptitude-service/internal/utils"
)

func completedAttemptFixture() *models.AssessmentAttempt {
	completedAt := int64(1700000060000)
	return &models.AssessmentAttempt{
		ID:          "0f8fad5b-d9cb-469f-a165-70867728950e",
		StartedAt:   1700000000000,
		CompletedAt: &completedAt,
		Answers: []models.AssessmentAnswer{
			{ItemID: "att_1", SectionID: "attention", Value: models.NumberValue(4)},
			{ItemID: "rhy_1", SectionID: "rhythm", Value: models.TextValue("different")},
		},
		SectionScores: []models.SectionScore{
			{SectionID: "attention", NormalizedScore: 80, Band: models.BandA},
			{SectionID: "rhythm", NormalizedScore: 67, Band: models.BandB},
		},
		OverallScore:     74,
		OverallBand:      models.BandB,
		RecommendedLevel: models.LevelIntermediate,
	}
}

func TestSubmitResult_BuildsSummaryMessage(t *testing.T) {
	publisher := &events.MockResultPublisher{}
	svc := NewNotificationService(publisher, utils.ToSlogLogger(utils.NewDevelopmentLogger()))

	result := svc.SubmitResult(context.Background(), completedAttemptFixture())

	assert.True(t, result.Delivered)
	assert.Empty(t, result.Warning)
	require.Len(t, publisher.Events, 1)

	event := publisher.Events[0]
	assert.Equal(t, events.EventAssessmentCompleted, event.Type)
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", event.AttemptID)
	assert.Equal(t, "Assessment User 0f8fad5b", event.Recipient.Name)
	assert.Equal(t, placeholderEmail, event.Recipient.Email)
	assert.Equal(t, "Intermediate", event.Program)
	assert.Equal(t, "Pre-Assessment", event.Intent)

	assert.Contains(t, event.Message, "Overall Score: 74/100 (Band B)")
	assert.Contains(t, event.Message, "Recommended Level: Intermediate")
	assert.Contains(t, event.Message, "attention: 80/100 (A), rhythm: 67/100 (B)")
	assert.Contains(t, event.Message, "Total Answers: 2")
	assert.Contains(t, event.Message, "Started: 2023-11-14T22:13:20Z")
	assert.Contains(t, event.Message, "Completed: 2023-11-14T22:14:20Z")
	assert.Contains(t, event.Message, "Attempt ID: 0f8fad5b-d9cb-469f-a165-70867728950e")
}

func TestSubmitResult_SinkFailureBecomesWarning(t *testing.T) {
	publisher := &events.MockResultPublisher{FailAll: true}
	svc := NewNotificationService(publisher, utils.ToSlogLogger(utils.NewDevelopmentLogger()))

	result := svc.SubmitResult(context.Background(), completedAttemptFixture())

	assert.False(t, result.Delivered)
	assert.Contains(t, result.Warning, "result submission failed")
}
