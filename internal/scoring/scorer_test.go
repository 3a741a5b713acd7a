package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/musicraft-academy/aptitude-service/internal/errors"
	"github.com/musicraft-academy/aptitude-service/internal/itembank"
	"github.com/musicraft-academy/aptitude-service/internal/models"
)

func answerFor(item *models.AssessmentItem, value models.AnswerValue) *models.AssessmentAnswer {
	return &models.AssessmentAnswer{
		ItemID:    item.ID,
		SectionID: item.SectionID,
		Value:     value,
	}
}

func TestScoreItem_Likert(t *testing.T) {
	item := &models.AssessmentItem{ID: "att_1", SectionID: "attention", Type: models.ItemLikert, Weight: 1}

	assert.Equal(t, 4.0, ScoreItem(item, answerFor(item, models.NumberValue(4))))
	assert.Equal(t, 0.0, ScoreItem(item, nil), "unanswered likert scores 0")
	assert.Equal(t, 0.0, ScoreItem(item, answerFor(item, models.TextValue("Agree"))), "non-numeric likert scores 0")
}

func TestScoreItem_ExactMatchTypes(t *testing.T) {
	tests := []struct {
		name     string
		itemType models.ItemType
		correct  string
		given    models.AnswerValue
		want     float64
	}{
		{"pitch comparison correct", models.ItemPitchComparison, "higher", models.TextValue("higher"), 1},
		{"pitch comparison wrong", models.ItemPitchComparison, "higher", models.TextValue("lower"), 0},
		{"case sensitive", models.ItemIntervalID, "Major 3rd", models.TextValue("major 3rd"), 0},
		{"digit span correct", models.ItemDigitSpan, "472", models.TextValue("472"), 1},
		{"digit span numeric value does not match", models.ItemDigitSpan, "472", models.NumberValue(472), 0},
		{"motif recall correct", models.ItemMotifRecall, "Melody B", models.TextValue("Melody B"), 1},
		{"audio comparison wrong", models.ItemAudioComparison, "same", models.TextValue("different"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &models.AssessmentItem{
				ID:            "item",
				SectionID:     "sec",
				Type:          tt.itemType,
				CorrectAnswer: tt.correct,
				Weight:        1,
			}
			assert.Equal(t, tt.want, ScoreItem(item, answerFor(item, tt.given)))
		})
	}
}

func TestScoreItem_TimedFocus(t *testing.T) {
	item := &models.AssessmentItem{
		ID:        "att_4",
		SectionID: "attention",
		Type:      models.ItemTimedFocus,
		TimedData: &models.TimedData{DurationMs: 15000, TargetCount: 7},
		Weight:    1.5,
	}

	assert.Equal(t, 1.0, ScoreItem(item, answerFor(item, models.NumberValue(7))), "exact count is full credit")
	assert.InDelta(t, 1.0-2.0/7.0, ScoreItem(item, answerFor(item, models.NumberValue(5))), 1e-9)
	assert.InDelta(t, 1.0-2.0/7.0, ScoreItem(item, answerFor(item, models.NumberValue(9))), 1e-9, "overcounting penalized like undercounting")
	assert.Equal(t, 0.0, ScoreItem(item, answerFor(item, models.NumberValue(20))), "accuracy floors at 0")
	assert.Equal(t, 0.0, ScoreItem(item, nil))
}

func TestScoreItem_TapTempo(t *testing.T) {
	item := &models.AssessmentItem{ID: "rhy_5", SectionID: "rhythm", Type: models.ItemTapTempo, Weight: 1}

	assert.Equal(t, 0.85, ScoreItem(item, answerFor(item, models.NumberValue(0.85))))
	assert.Equal(t, 1.0, ScoreItem(item, answerFor(item, models.NumberValue(1.7))), "ratio capped at 1")
	assert.Equal(t, 0.0, ScoreItem(item, nil))
}

func TestMaxItemValue(t *testing.T) {
	assert.Equal(t, 5.0, MaxItemValue(models.ItemLikert))
	for _, it := range models.AllItemTypes {
		if it == models.ItemLikert {
			continue
		}
		assert.Equal(t, 1.0, MaxItemValue(it), string(it))
	}
}

func TestNormalizeScore(t *testing.T) {
	assert.Equal(t, 100, NormalizeScore(18, 18))
	assert.Equal(t, 50, NormalizeScore(9, 18))
	assert.Equal(t, 0, NormalizeScore(0, 18))
	assert.Equal(t, 33, NormalizeScore(1, 3))
	assert.Equal(t, 67, NormalizeScore(2, 3), "round half up")
}

func TestBand_Boundaries(t *testing.T) {
	thresholds := models.BandThresholds{A: 80, B: 60, C: 0}

	tests := []struct {
		score int
		want  models.Band
	}{
		{100, models.BandA},
		{80, models.BandA},
		{79, models.BandB},
		{60, models.BandB},
		{59, models.BandC},
		{0, models.BandC},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Band(thresholds, tt.score), "score %d", tt.score)
	}
}

func TestScoreSection_UnknownSectionFailsLoudly(t *testing.T) {
	bank := itembank.Default()

	_, err := ScoreSection(bank, "harmony", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigError(err), "unknown section is a configuration error")
}

func TestScoreSection_SkippedItemsLowerTheScore(t *testing.T) {
	bank := itembank.Default()
	section, err := bank.FindSection("wm")
	require.NoError(t, err)

	// Answer only the first digit span correctly; the remaining four items
	// still count their full weight in the denominator.
	answers := []models.AssessmentAnswer{
		{ItemID: "wm_1", SectionID: "wm", Value: models.TextValue("472")},
	}

	score, err := ScoreSection(bank, "wm", answers)
	require.NoError(t, err)

	// wm max possible: 1+1+1+1.5+1.5 = 6, raw = 1.
	assert.Equal(t, 1.0, score.RawScore)
	assert.Equal(t, 17, score.NormalizedScore)
	assert.Equal(t, models.BandC, score.Band)
	assert.Len(t, section.Items, 5)
}

func TestScoreSection_FullMarks(t *testing.T) {
	bank := itembank.Default()

	answers := perfectAnswers(t, bank, "rhythm")
	score, err := ScoreSection(bank, "rhythm", answers)
	require.NoError(t, err)

	assert.Equal(t, 100, score.NormalizedScore)
	assert.Equal(t, models.BandA, score.Band)
}

func TestScoreOverall(t *testing.T) {
	bank := itembank.Default()

	t.Run("empty input scores zero", func(t *testing.T) {
		assert.Equal(t, 0, ScoreOverall(bank, nil))
	})

	t.Run("weighted aggregation", func(t *testing.T) {
		scores := []models.SectionScore{
			{SectionID: "attention", NormalizedScore: 80},
			{SectionID: "rhythm", NormalizedScore: 60},
			{SectionID: "pitch", NormalizedScore: 90},
			{SectionID: "wm", NormalizedScore: 70},
		}
		assert.Equal(t, 76, ScoreOverall(bank, scores))
	})

	t.Run("rounding", func(t *testing.T) {
		scores := []models.SectionScore{
			{SectionID: "attention", NormalizedScore: 83},
			{SectionID: "rhythm", NormalizedScore: 67},
			{SectionID: "pitch", NormalizedScore: 92},
			{SectionID: "wm", NormalizedScore: 70},
		}
		// 83*.25 + 67*.25 + 92*.30 + 70*.20 = 79.1
		assert.Equal(t, 79, ScoreOverall(bank, scores))
	})
}

func TestRecommendLevel(t *testing.T) {
	balanced := func(score int) []models.SectionScore {
		return []models.SectionScore{
			{SectionID: "attention", NormalizedScore: score},
			{SectionID: "rhythm", NormalizedScore: score},
			{SectionID: "pitch", NormalizedScore: score},
			{SectionID: "wm", NormalizedScore: score},
		}
	}

	tests := []struct {
		name     string
		overall  int
		sections []models.SectionScore
		want     models.RecommendedLevel
	}{
		{"max with balanced sections", 90, balanced(80), models.LevelMAX},
		{"max threshold exactly", 85, balanced(75), models.LevelMAX},
		{"high overall but one weak section", 88, []models.SectionScore{
			{SectionID: "attention", NormalizedScore: 50},
			{SectionID: "rhythm", NormalizedScore: 100},
			{SectionID: "pitch", NormalizedScore: 100},
			{SectionID: "wm", NormalizedScore: 100},
		}, models.LevelAdvanced},
		{"advanced", 75, balanced(75), models.LevelAdvanced},
		{"intermediate", 60, balanced(60), models.LevelIntermediate},
		{"beginner", 59, balanced(59), models.LevelBeginner},
		{"floor", 0, balanced(0), models.LevelBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendLevel(tt.overall, tt.sections))
		})
	}
}

// perfectAnswers builds a full-credit answer for every item of a section.
func perfectAnswers(t *testing.T, bank *itembank.Bank, sectionID string) []models.AssessmentAnswer {
	t.Helper()
	section, err := bank.FindSection(sectionID)
	require.NoError(t, err)

	answers := make([]models.AssessmentAnswer, 0, len(section.Items))
	for _, item := range section.Items {
		answers = append(answers, models.AssessmentAnswer{
			ItemID:    item.ID,
			SectionID: item.SectionID,
			Value:     perfectValue(item),
		})
	}
	return answers
}

func perfectValue(item models.AssessmentItem) models.AnswerValue {
	switch item.Type {
	case models.ItemLikert:
		return models.NumberValue(5)
	case models.ItemTimedFocus:
		return models.NumberValue(float64(item.TimedData.TargetCount))
	case models.ItemTapTempo:
		return models.NumberValue(1)
	default:
		return models.TextValue(item.CorrectAnswer)
	}
}
