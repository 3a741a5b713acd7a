package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicraft-academy/aptitude-service/internal/itembank"
	"github.com/musicraft-academy/aptitude-service/internal/models"
)

func newTestSession() *Session {
	return New(itembank.Default())
}

func TestStart(t *testing.T) {
	s := newTestSession()

	id := s.Start()
	require.NotEmpty(t, id)

	attempt := s.Current()
	require.NotNil(t, attempt)
	assert.Equal(t, id, attempt.ID)
	assert.False(t, attempt.IsCompleted())
	assert.Empty(t, attempt.Answers)
	assert.Equal(t, models.BandC, attempt.OverallBand)
	assert.Equal(t, models.LevelBeginner, attempt.RecommendedLevel)
	assert.Equal(t, Cursor{}, s.Cursor())
}

func TestStart_GeneratesFreshIDs(t *testing.T) {
	s := newTestSession()
	first := s.Start()
	second := s.Start()
	assert.NotEqual(t, first, second)
}

func TestRecordAnswer_UpsertsByItemID(t *testing.T) {
	s := newTestSession()
	s.Start()

	s.RecordAnswer(models.AssessmentAnswer{ItemID: "att_1", SectionID: "attention", Value: models.NumberValue(3)})
	s.RecordAnswer(models.AssessmentAnswer{ItemID: "att_1", SectionID: "attention", Value: models.NumberValue(5)})

	answers := s.Current().Answers
	require.Len(t, answers, 1, "re-recording replaces the prior answer")
	require.NotNil(t, answers[0].Value.Number)
	assert.Equal(t, 5.0, *answers[0].Value.Number)
}

func TestRecordAnswer_NoAttemptIsSilentlyIgnored(t *testing.T) {
	s := newTestSession()
	assert.NotPanics(t, func() {
		s.RecordAnswer(models.AssessmentAnswer{ItemID: "att_1", SectionID: "attention"})
	})
	assert.Nil(t, s.Current())
}

func TestNavigation_Clamping(t *testing.T) {
	s := newTestSession()
	s.Start()

	s.RetreatItem()
	assert.Equal(t, Cursor{}, s.Cursor(), "retreat clamps at item 0")

	s.RetreatSection()
	assert.Equal(t, Cursor{}, s.Cursor(), "retreat clamps at section 0")

	// Walk past the end of the first section's items.
	for i := 0; i < 10; i++ {
		s.AdvanceItem()
	}
	assert.Equal(t, Cursor{Section: 0, Item: 4}, s.Cursor())

	s.AdvanceSection()
	assert.Equal(t, Cursor{Section: 1, Item: 0}, s.Cursor(), "section advance resets the item cursor")

	for i := 0; i < 10; i++ {
		s.AdvanceSection()
	}
	assert.Equal(t, 3, s.Cursor().Section, "section advance clamps at the last section")

	s.AdvanceItem()
	s.RetreatSection()
	assert.Equal(t, Cursor{Section: 2, Item: 0}, s.Cursor())
}

func TestCurrentItem(t *testing.T) {
	s := newTestSession()
	s.Start()

	item := s.CurrentItem()
	require.NotNil(t, item)
	assert.Equal(t, "att_1", item.ID)

	s.AdvanceSection()
	item = s.CurrentItem()
	require.NotNil(t, item)
	assert.Equal(t, "rhy_1", item.ID)
}

func TestComplete(t *testing.T) {
	base := time.UnixMilli(1700000000000)
	s := newTestSession().WithClock(func() time.Time { return base })
	id := s.Start()

	scores := []models.SectionScore{{SectionID: "pitch", NormalizedScore: 90, Band: models.BandA}}
	require.NoError(t, s.Complete(scores, 90, models.BandA, models.LevelAdvanced))

	attempt := s.Current()
	require.NotNil(t, attempt)
	assert.True(t, attempt.IsCompleted())
	assert.Equal(t, base.UnixMilli(), *attempt.CompletedAt)
	assert.Equal(t, 90, attempt.OverallScore)
	assert.Equal(t, models.LevelAdvanced, attempt.RecommendedLevel)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, id, history[0].ID)

	assert.ErrorIs(t, s.Complete(scores, 90, models.BandA, models.LevelAdvanced), ErrAttemptCompleted,
		"no transition back from completed")
}

func TestComplete_NoAttempt(t *testing.T) {
	s := newTestSession()
	assert.ErrorIs(t, s.Complete(nil, 0, models.BandC, models.LevelBeginner), ErrNoActiveAttempt)
}

func TestGetByID(t *testing.T) {
	s := newTestSession()
	first := s.Start()
	require.NoError(t, s.Complete(nil, 0, models.BandC, models.LevelBeginner))

	second := s.Start()

	current, err := s.GetByID(second)
	require.NoError(t, err)
	assert.Equal(t, second, current.ID)

	historical, err := s.GetByID(first)
	require.NoError(t, err)
	assert.Equal(t, first, historical.ID)

	_, err = s.GetByID("missing")
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestDiscard_KeepsHistory(t *testing.T) {
	s := newTestSession()
	id := s.Start()
	require.NoError(t, s.Complete(nil, 0, models.BandC, models.LevelBeginner))

	s.Discard()

	assert.Nil(t, s.Current())
	assert.Equal(t, Cursor{}, s.Cursor())
	require.Len(t, s.History(), 1)
	assert.Equal(t, id, s.History()[0].ID)
}

func TestRestore(t *testing.T) {
	completedAt := int64(1700000001000)
	history := []models.AssessmentAttempt{{
		ID:          "past",
		StartedAt:   1700000000000,
		CompletedAt: &completedAt,
	}}
	current := &models.AssessmentAttempt{ID: "live", StartedAt: 1700000002000}

	s := Restore(itembank.Default(), current, history)

	got, err := s.GetByID("live")
	require.NoError(t, err)
	assert.False(t, got.IsCompleted())

	got, err = s.GetByID("past")
	require.NoError(t, err)
	assert.True(t, got.IsCompleted())
}
