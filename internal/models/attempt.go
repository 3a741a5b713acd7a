package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type Band string

const (
	BandA Band = "A"
	BandB Band = "B"
	BandC Band = "C"
)

type RecommendedLevel string

const (
	LevelBeginner     RecommendedLevel = "Beginner"
	LevelIntermediate RecommendedLevel = "Intermediate"
	LevelAdvanced     RecommendedLevel = "Advanced"
	LevelMAX          RecommendedLevel = "MAX"

	// LevelEarlyIntermediate exists in persisted data but no scoring rule
	// currently assigns it. Kept for compatibility with stored attempts.
	LevelEarlyIntermediate RecommendedLevel = "Early-Intermediate"
)

// AnswerValue is a response payload that is either numeric or textual,
// matching the per-type answer shapes (likert counts and accuracy ratios are
// numbers, comparisons and digit spans are strings). Exactly one side is set.
type AnswerValue struct {
	Number *float64
	Text   *string
}

func NumberValue(v float64) AnswerValue {
	return AnswerValue{Number: &v}
}

func TextValue(v string) AnswerValue {
	return AnswerValue{Text: &v}
}

// IsZero reports whether neither side is set.
func (v AnswerValue) IsZero() bool {
	return v.Number == nil && v.Text == nil
}

func (v AnswerValue) String() string {
	switch {
	case v.Number != nil:
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	case v.Text != nil:
		return *v.Text
	}
	return ""
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Number != nil:
		return json.Marshal(*v.Number)
	case v.Text != nil:
		return json.Marshal(*v.Text)
	}
	return []byte("null"), nil
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	*v = AnswerValue{}
	if string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		v.Number = &n
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Text = &s
		return nil
	}
	return fmt.Errorf("answer value must be a number or a string, got %s", data)
}

// AssessmentAnswer is one recorded response. At most one answer exists per
// item within an attempt; re-recording replaces the prior value.
type AssessmentAnswer struct {
	ItemID      string      `json:"item_id" validate:"required"`
	SectionID   string      `json:"section_id" validate:"required"`
	Value       AnswerValue `json:"value"`
	Timestamp   int64       `json:"timestamp"` // epoch milliseconds
	ReplaysUsed int         `json:"replays_used,omitempty"`
}

// SectionScore is the derived per-section result.
type SectionScore struct {
	SectionID       string  `json:"section_id"`
	RawScore        float64 `json:"raw_score"`
	NormalizedScore int     `json:"normalized_score"`
	Band            Band    `json:"band"`
}

// AssessmentAttempt is the aggregate root for one run of the assessment.
// CompletedAt doubles as the completion flag; scores stay zero-valued until
// Complete stamps them. Cursor position is session state, not part of the
// persisted record.
type AssessmentAttempt struct {
	ID               string             `json:"id"`
	StartedAt        int64              `json:"started_at"` // epoch milliseconds
	CompletedAt      *int64             `json:"completed_at,omitempty"`
	Answers          []AssessmentAnswer `json:"answers"`
	SectionScores    []SectionScore     `json:"section_scores"`
	OverallScore     int                `json:"overall_score"`
	OverallBand      Band               `json:"overall_band"`
	RecommendedLevel RecommendedLevel   `json:"recommended_level"`
}

// IsCompleted reports whether the attempt has been finalized.
func (a *AssessmentAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}

// AnswerFor returns the recorded answer for an item, or nil when the item is
// unanswered.
func (a *AssessmentAttempt) AnswerFor(itemID string) *AssessmentAnswer {
	for i := range a.Answers {
		if a.Answers[i].ItemID == itemID {
			return &a.Answers[i]
		}
	}
	return nil
}

// EpochMillis converts a wall-clock time to the epoch-millisecond
// representation used across attempt records.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
