// Package itembank holds the static, read-only definition of the assessment:
// sections, items, weights and band thresholds. It is the leaf dependency of
// the scorer and the attempt session.
package itembank

import (
	"fmt"
	"math"

	"github.com/musicraft-academy/aptitude-service/internal/models"
)

const weightSumTolerance = 1e-9

// Bank exposes the section/item configuration. It is immutable after
// construction; accessors return the shared backing data and callers must not
// mutate it.
type Bank struct {
	sections   []models.AssessmentSection
	thresholds models.BandThresholds
}

// New builds a bank from an explicit section list, mainly for tests.
func New(sections []models.AssessmentSection, thresholds models.BandThresholds) *Bank {
	return &Bank{sections: sections, thresholds: thresholds}
}

// Default returns the production item bank.
func Default() *Bank {
	return New(defaultSections, models.BandThresholds{A: 80, B: 60, C: 0})
}

// Sections returns the sections in declaration order.
func (b *Bank) Sections() []models.AssessmentSection {
	return b.sections
}

// FindSection looks up a section by id.
func (b *Bank) FindSection(id string) (*models.AssessmentSection, error) {
	for i := range b.sections {
		if b.sections[i].ID == id {
			return &b.sections[i], nil
		}
	}
	return nil, fmt.Errorf("section %q not found", id)
}

// FindItem looks up an item by id across all sections.
func (b *Bank) FindItem(id string) (*models.AssessmentItem, error) {
	for i := range b.sections {
		for j := range b.sections[i].Items {
			if b.sections[i].Items[j].ID == id {
				return &b.sections[i].Items[j], nil
			}
		}
	}
	return nil, fmt.Errorf("item %q not found", id)
}

// SectionWeights returns the per-section share of the overall score.
func (b *Bank) SectionWeights() map[string]float64 {
	weights := make(map[string]float64, len(b.sections))
	for _, s := range b.sections {
		weights[s.ID] = s.Weight
	}
	return weights
}

// BandThresholds returns the inclusive lower bounds for each band.
func (b *Bank) BandThresholds() models.BandThresholds {
	return b.thresholds
}

// SectionCount returns the number of sections.
func (b *Bank) SectionCount() int {
	return len(b.sections)
}

// ItemCount returns the number of items in the given section, 0 when the
// section index is out of range.
func (b *Bank) ItemCount(sectionIndex int) int {
	if sectionIndex < 0 || sectionIndex >= len(b.sections) {
		return 0
	}
	return len(b.sections[sectionIndex].Items)
}

// Validate checks the configuration invariants that the reference data only
// asserts by convention: section weights sum to 1.0, item weights are
// positive, objectively-scored types carry a correct answer, and payloads are
// present where the item type needs them. Run at load time so a bad config
// fails the process instead of producing silently wrong scores.
func (b *Bank) Validate() error {
	if len(b.sections) == 0 {
		return fmt.Errorf("item bank has no sections")
	}

	seenSections := make(map[string]bool, len(b.sections))
	seenItems := make(map[string]bool)
	weightSum := 0.0

	for _, s := range b.sections {
		if seenSections[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seenSections[s.ID] = true
		weightSum += s.Weight

		if len(s.Items) == 0 {
			return fmt.Errorf("section %q has no items", s.ID)
		}
		for _, item := range s.Items {
			if err := validateItem(s.ID, item); err != nil {
				return err
			}
			if seenItems[item.ID] {
				return fmt.Errorf("duplicate item id %q", item.ID)
			}
			seenItems[item.ID] = true
		}
	}

	if math.Abs(weightSum-1.0) > weightSumTolerance {
		return fmt.Errorf("section weights sum to %v, want 1.0", weightSum)
	}
	return nil
}

func validateItem(sectionID string, item models.AssessmentItem) error {
	if item.SectionID != sectionID {
		return fmt.Errorf("item %q declares section %q but belongs to %q", item.ID, item.SectionID, sectionID)
	}
	if item.Weight <= 0 {
		return fmt.Errorf("item %q has non-positive weight %v", item.ID, item.Weight)
	}

	valid := false
	for _, t := range models.AllItemTypes {
		if item.Type == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("item %q has unknown type %q", item.ID, item.Type)
	}

	if item.Type.HasCorrectAnswer() && item.CorrectAnswer == "" {
		return fmt.Errorf("item %q (%s) requires a correct answer", item.ID, item.Type)
	}
	if item.Type == models.ItemTimedFocus && item.TimedData == nil {
		return fmt.Errorf("item %q (timed-focus) requires timed data", item.ID)
	}
	return nil
}
