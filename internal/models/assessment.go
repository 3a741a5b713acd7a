package models

// ItemType is the closed set of stimulus/question kinds the engine can score.
// Scoring dispatches exhaustively on this tag; adding a variant requires a
// matching branch in the scorer.
type ItemType string

const (
	ItemLikert          ItemType = "likert"
	ItemTimedFocus      ItemType = "timed-focus"
	ItemAudioComparison ItemType = "audio-comparison"
	ItemTapTempo        ItemType = "tap-tempo"
	ItemPitchComparison ItemType = "pitch-comparison"
	ItemIntervalID      ItemType = "interval-id"
	ItemDigitSpan       ItemType = "digit-span"
	ItemMotifRecall     ItemType = "motif-recall"
)

// AllItemTypes lists every valid item type, used by validation.
var AllItemTypes = []ItemType{
	ItemLikert,
	ItemTimedFocus,
	ItemAudioComparison,
	ItemTapTempo,
	ItemPitchComparison,
	ItemIntervalID,
	ItemDigitSpan,
	ItemMotifRecall,
}

// HasCorrectAnswer reports whether the type is scored by exact comparison
// against a stored correct answer. Likert, timed-focus and tap-tempo are
// scored by formula instead.
func (t ItemType) HasCorrectAnswer() bool {
	switch t {
	case ItemAudioComparison, ItemPitchComparison, ItemIntervalID, ItemDigitSpan, ItemMotifRecall:
		return true
	}
	return false
}

// AudioData describes the stimulus payload for audio-backed items.
type AudioData struct {
	Samples            []string `json:"samples" validate:"required,min=1"`
	MaxReplays         int      `json:"max_replays" validate:"min=0"`
	PlaybackDurationMs int      `json:"playback_duration_ms" validate:"min=0"`
}

// TimedData describes the payload for timed counting tasks.
type TimedData struct {
	DurationMs  int `json:"duration_ms" validate:"min=0"`
	TargetCount int `json:"target_count" validate:"min=1"`
}

// AssessmentItem is one stimulus/question within a section.
type AssessmentItem struct {
	ID            string     `json:"id" validate:"required"`
	SectionID     string     `json:"section_id" validate:"required"`
	Type          ItemType   `json:"type" validate:"required,item_type"`
	Question      string     `json:"question" validate:"required"`
	Description   string     `json:"description,omitempty"`
	Options       []string   `json:"options,omitempty"`
	AudioData     *AudioData `json:"audio_data,omitempty"`
	TimedData     *TimedData `json:"timed_data,omitempty"`
	CorrectAnswer string     `json:"correct_answer,omitempty"`
	Weight        float64    `json:"weight" validate:"gt=0"`
}

// AssessmentSection groups items measuring one ability dimension.
type AssessmentSection struct {
	ID          string           `json:"id" validate:"required"`
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Weight      float64          `json:"weight" validate:"gt=0,lte=1"`
	Items       []AssessmentItem `json:"items" validate:"required,min=1,dive"`
}

// BandThresholds holds the inclusive lower bounds for each band,
// checked from highest to lowest.
type BandThresholds struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}
