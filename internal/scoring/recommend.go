package scoring

import (
	"github.com/musicraft-academy/aptitude-service/internal/itembank"
	"github.com/musicraft-academy/aptitude-service/internal/models"
)

// recommendationRule pairs a per-section score floor with the guidance shown
// when the section lands under it. Thresholds are keyed independently per
// section so they can diverge later.
type recommendationRule struct {
	threshold int
	guidance  string
}

var recommendationRules = map[string]recommendationRule{
	"pitch": {
		threshold: 60,
		guidance:  "Focus on ear-training modules and slower tempo practice to develop pitch recognition",
	},
	"rhythm": {
		threshold: 60,
		guidance:  "Use metronome scaffolding and dedicated rhythm labs to strengthen timing skills",
	},
	"attention": {
		threshold: 60,
		guidance:  "Benefit from shorter lesson blocks with visual cues and structured practice routines",
	},
	"wm": {
		threshold: 60,
		guidance:  "Use chunking techniques and spaced repetition to improve musical memory",
	},
}

const defaultRecommendation = "Continue with regular practice and maintain your current learning pace"

// Recommendations maps under-threshold section scores to study guidance, in
// section-declaration order. The result is never empty: when every section
// clears its floor a single maintain-pace message is returned.
func Recommendations(bank *itembank.Bank, sectionScores []models.SectionScore) []string {
	byID := make(map[string]models.SectionScore, len(sectionScores))
	for _, score := range sectionScores {
		byID[score.SectionID] = score
	}

	var out []string
	for _, section := range bank.Sections() {
		rule, ok := recommendationRules[section.ID]
		if !ok {
			continue
		}
		score, ok := byID[section.ID]
		if !ok {
			continue
		}
		if score.NormalizedScore < rule.threshold {
			out = append(out, rule.guidance)
		}
	}

	if len(out) == 0 {
		out = append(out, defaultRecommendation)
	}
	return out
}
