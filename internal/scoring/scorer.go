// Package scoring implements the pure scoring rules of the aptitude engine:
// per-item scoring, section normalization and banding, weighted overall
// aggregation and level recommendation. Functions here are stateless and
// operate on an item bank plus recorded answers.
package scoring

import (
	"math"

	apperrors "github.com/musicraft-academy/aptitude-service/internal/errors"
	"github.com/musicraft-academy/aptitude-service/internal/itembank"
	"github.com/musicraft-academy/aptitude-service/internal/models"
)

const (
	maxLevelOverallFloor  = 85
	maxLevelSectionFloor  = 75
	advancedOverallFloor  = 75
	intermediateOverall   = 60
	likertMaxValue        = 5
	objectiveItemMaxValue = 1
)

// ScoreItem computes the raw score for one item. The answer is explicitly
// optional: nil means the item was never answered and scores 0. Dispatch is
// exhaustive over the closed item-type set.
func ScoreItem(item *models.AssessmentItem, answer *models.AssessmentAnswer) float64 {
	switch item.Type {
	case models.ItemLikert:
		// Self-report value passed through unmodified, expected domain 1-5.
		if answer == nil || answer.Value.Number == nil {
			return 0
		}
		return *answer.Value.Number

	case models.ItemAudioComparison, models.ItemPitchComparison,
		models.ItemIntervalID, models.ItemDigitSpan, models.ItemMotifRecall:
		// Exact match against the stored answer, case-sensitive.
		if answer == nil || answer.Value.Text == nil {
			return 0
		}
		if *answer.Value.Text == item.CorrectAnswer {
			return 1
		}
		return 0

	case models.ItemTimedFocus:
		// Linear accuracy penalty for over/under counting.
		target := 1.0
		if item.TimedData != nil && item.TimedData.TargetCount > 0 {
			target = float64(item.TimedData.TargetCount)
		}
		observed := 0.0
		if answer != nil && answer.Value.Number != nil {
			observed = *answer.Value.Number
		}
		return math.Max(0, 1-math.Abs(target-observed)/target)

	case models.ItemTapTempo:
		// The capture layer converts raw tap timestamps into a [0,1]
		// accuracy ratio before it reaches the scorer.
		if answer == nil || answer.Value.Number == nil {
			return 0
		}
		return math.Min(1, *answer.Value.Number)
	}
	return 0
}

// MaxItemValue returns the per-item ceiling used as the normalization
// denominator: 5 for likert, 1 for every other type.
func MaxItemValue(itemType models.ItemType) float64 {
	if itemType == models.ItemLikert {
		return likertMaxValue
	}
	return objectiveItemMaxValue
}

// NormalizeScore rescales a raw weighted score to the common 0-100 range
// using round-half-up.
func NormalizeScore(raw, max float64) int {
	return int(math.Round(raw / max * 100))
}

// Band maps a normalized 0-100 score to a letter band using inclusive lower
// bounds, checked from highest to lowest.
func Band(thresholds models.BandThresholds, score int) models.Band {
	switch {
	case score >= thresholds.A:
		return models.BandA
	case score >= thresholds.B:
		return models.BandB
	default:
		return models.BandC
	}
}

// ScoreSection computes the weighted raw score, normalized score and band for
// one section. An unknown section id is a configuration error and fails
// loudly. Unanswered items contribute 0 to the numerator but their full
// weight times max value to the denominator, so skipping an item lowers the
// normalized score rather than excluding it.
func ScoreSection(bank *itembank.Bank, sectionID string, answers []models.AssessmentAnswer) (models.SectionScore, error) {
	section, err := bank.FindSection(sectionID)
	if err != nil {
		return models.SectionScore{}, apperrors.NewConfigError("section", "unknown section id %q", sectionID)
	}

	byItem := make(map[string]*models.AssessmentAnswer, len(answers))
	for i := range answers {
		if answers[i].SectionID == sectionID {
			byItem[answers[i].ItemID] = &answers[i]
		}
	}

	var rawScore, maxPossible float64
	for i := range section.Items {
		item := &section.Items[i]
		maxPossible += item.Weight * MaxItemValue(item.Type)
		if answer, ok := byItem[item.ID]; ok {
			rawScore += item.Weight * ScoreItem(item, answer)
		}
	}

	normalized := NormalizeScore(rawScore, maxPossible)
	return models.SectionScore{
		SectionID:       sectionID,
		RawScore:        rawScore,
		NormalizedScore: normalized,
		Band:            Band(bank.BandThresholds(), normalized),
	}, nil
}

// ScoreAllSections scores every section of the bank in declaration order.
func ScoreAllSections(bank *itembank.Bank, answers []models.AssessmentAnswer) ([]models.SectionScore, error) {
	sections := bank.Sections()
	scores := make([]models.SectionScore, 0, len(sections))
	for _, section := range sections {
		score, err := ScoreSection(bank, section.ID, answers)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// ScoreOverall aggregates section scores into the weighted overall 0-100
// score. An empty input is defined to score 0, not NaN, since an attempt can
// be completed with no recorded sections during administration.
func ScoreOverall(bank *itembank.Bank, sectionScores []models.SectionScore) int {
	weights := bank.SectionWeights()

	var weightedSum, totalWeight float64
	for _, score := range sectionScores {
		weight := weights[score.SectionID]
		weightedSum += float64(score.NormalizedScore) * weight
		totalWeight += weight
	}

	if totalWeight <= 0 {
		return 0
	}
	return int(math.Round(weightedSum / totalWeight))
}

// RecommendLevel derives the suggested starting curriculum tier. The MAX
// program needs a high overall score and balanced sections: every section
// must clear its own floor. Early-Intermediate is a declared level that no
// rule currently assigns; it is deliberately not produced here.
func RecommendLevel(overallScore int, sectionScores []models.SectionScore) models.RecommendedLevel {
	if overallScore >= maxLevelOverallFloor {
		balanced := true
		for _, score := range sectionScores {
			if score.NormalizedScore < maxLevelSectionFloor {
				balanced = false
				break
			}
		}
		if balanced {
			return models.LevelMAX
		}
	}

	switch {
	case overallScore >= advancedOverallFloor:
		return models.LevelAdvanced
	case overallScore >= intermediateOverall:
		return models.LevelIntermediate
	default:
		return models.LevelBeginner
	}
}
