package itembank

import "github.com/musicraft-academy/aptitude-service/internal/models"

var likertOptions = []string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"}

var defaultSections = []models.AssessmentSection{
	{
		ID:          "attention",
		Name:        "Attention & Focus",
		Description: "Measures sustained attention and focus abilities",
		Weight:      0.25,
		Items: []models.AssessmentItem{
			{
				ID:        "att_1",
				SectionID: "attention",
				Type:      models.ItemLikert,
				Question:  "I can focus on musical tasks for extended periods without getting distracted",
				Options:   likertOptions,
				Weight:    1,
			},
			{
				ID:        "att_2",
				SectionID: "attention",
				Type:      models.ItemLikert,
				Question:  "I notice small details in music (subtle rhythm changes, pitch variations)",
				Options:   likertOptions,
				Weight:    1,
			},
			{
				ID:        "att_3",
				SectionID: "attention",
				Type:      models.ItemLikert,
				Question:  "I can maintain concentration even when there are distractions around me",
				Options:   likertOptions,
				Weight:    1,
			},
			{
				ID:          "att_4",
				SectionID:   "attention",
				Type:        models.ItemTimedFocus,
				Question:    "Count the number of high-pitched beeps in this sequence",
				Description: "Listen carefully and count only the high-pitched sounds",
				TimedData:   &models.TimedData{DurationMs: 15000, TargetCount: 7},
				Weight:      1.5,
			},
			{
				ID:          "att_5",
				SectionID:   "attention",
				Type:        models.ItemTimedFocus,
				Question:    "Identify when the rhythm pattern changes",
				Description: "Click when you hear the rhythm pattern change from the original",
				TimedData:   &models.TimedData{DurationMs: 20000, TargetCount: 3},
				Weight:      1.5,
			},
		},
	},
	{
		ID:          "rhythm",
		Name:        "Rhythm Perception",
		Description: "Evaluates rhythm recognition and timing abilities",
		Weight:      0.25,
		Items: []models.AssessmentItem{
			{
				ID:        "rhy_1",
				SectionID: "rhythm",
				Type:      models.ItemAudioComparison,
				Question:  "Are these two rhythm patterns the same or different?",
				AudioData: &models.AudioData{
					Samples:            []string{"rhythm_1a", "rhythm_1b"},
					MaxReplays:         3,
					PlaybackDurationMs: 4000,
				},
				CorrectAnswer: "different",
				Weight:        1,
			},
			{
				ID:        "rhy_2",
				SectionID: "rhythm",
				Type:      models.ItemAudioComparison,
				Question:  "Are these two rhythm patterns the same or different?",
				AudioData: &models.AudioData{
					Samples:            []string{"rhythm_2a", "rhythm_2b"},
					MaxReplays:         3,
					PlaybackDurationMs: 4000,
				},
				CorrectAnswer: "same",
				Weight:        1,
			},
			{
				ID:        "rhy_3",
				SectionID: "rhythm",
				Type:      models.ItemAudioComparison,
				Question:  "Are these two rhythm patterns the same or different?",
				AudioData: &models.AudioData{
					Samples:            []string{"rhythm_3a", "rhythm_3b"},
					MaxReplays:         3,
					PlaybackDurationMs: 4000,
				},
				CorrectAnswer: "different",
				Weight:        1,
			},
			{
				ID:        "rhy_4",
				SectionID: "rhythm",
				Type:      models.ItemAudioComparison,
				Question:  "Are these two rhythm patterns the same or different?",
				AudioData: &models.AudioData{
					Samples:            []string{"rhythm_4a", "rhythm_4b"},
					MaxReplays:         3,
					PlaybackDurationMs: 4000,
				},
				CorrectAnswer: "same",
				Weight:        1,
			},
			{
				ID:          "rhy_5",
				SectionID:   "rhythm",
				Type:        models.ItemTapTempo,
				Question:    "Tap along with the beat you hear",
				Description: "Listen to the rhythm and tap the spacebar or click to match the beat",
				AudioData: &models.AudioData{
					Samples:            []string{"tempo_120"},
					MaxReplays:         2,
					PlaybackDurationMs: 8000,
				},
				Weight: 1,
			},
		},
	},
	{
		ID:          "pitch",
		Name:        "Pitch Discrimination",
		Description: "Tests ability to distinguish pitch differences and intervals",
		Weight:      0.30,
		Items: []models.AssessmentItem{
			{
				ID:        "pit_1",
				SectionID: "pitch",
				Type:      models.ItemPitchComparison,
				Question:  "Is the second tone higher, lower, or the same as the first?",
				AudioData: &models.AudioData{
					Samples:            []string{"tone_c4", "tone_e4"},
					MaxReplays:         3,
					PlaybackDurationMs: 2000,
				},
				CorrectAnswer: "higher",
				Weight:        1,
			},
			{
				ID:        "pit_2",
				SectionID: "pitch",
				Type:      models.ItemPitchComparison,
				Question:  "Is the second tone higher, lower, or the same as the first?",
				AudioData: &models.AudioData{
					Samples:            []string{"tone_g4", "tone_d4"},
					MaxReplays:         3,
					PlaybackDurationMs: 2000,
				},
				CorrectAnswer: "lower",
				Weight:        1,
			},
			{
				ID:        "pit_3",
				SectionID: "pitch",
				Type:      models.ItemPitchComparison,
				Question:  "Is the second tone higher, lower, or the same as the first?",
				AudioData: &models.AudioData{
					Samples:            []string{"tone_a4", "tone_a4"},
					MaxReplays:         3,
					PlaybackDurationMs: 2000,
				},
				CorrectAnswer: "same",
				Weight:        1,
			},
			{
				ID:        "pit_4",
				SectionID: "pitch",
				Type:      models.ItemPitchComparison,
				Question:  "Is the second tone higher, lower, or the same as the first?",
				AudioData: &models.AudioData{
					Samples:            []string{"tone_f4", "tone_c4"},
					MaxReplays:         3,
					PlaybackDurationMs: 2000,
				},
				CorrectAnswer: "lower",
				Weight:        1,
			},
			{
				ID:          "pit_5",
				SectionID:   "pitch",
				Type:        models.ItemIntervalID,
				Question:    "What interval do you hear between these two notes?",
				Description: "Listen to both notes and identify the musical interval",
				Options:     []string{"Unison", "Minor 2nd", "Major 2nd", "Minor 3rd", "Major 3rd", "Perfect 4th", "Perfect 5th"},
				AudioData: &models.AudioData{
					Samples:            []string{"interval_major_3rd"},
					MaxReplays:         3,
					PlaybackDurationMs: 3000,
				},
				CorrectAnswer: "Major 3rd",
				Weight:        1.5,
			},
		},
	},
	{
		ID:          "wm",
		Name:        "Working Memory",
		Description: "Assesses musical memory and information processing",
		Weight:      0.20,
		Items: []models.AssessmentItem{
			{
				ID:          "wm_1",
				SectionID:   "wm",
				Type:        models.ItemDigitSpan,
				Question:    "Listen to this sequence of numbers and repeat them back",
				Description: "You will hear a sequence of digits. Type them back in the same order.",
				AudioData: &models.AudioData{
					Samples:            []string{"digits_4_7_2"},
					MaxReplays:         2,
					PlaybackDurationMs: 3000,
				},
				CorrectAnswer: "472",
				Weight:        1,
			},
			{
				ID:          "wm_2",
				SectionID:   "wm",
				Type:        models.ItemDigitSpan,
				Question:    "Listen to this sequence of numbers and repeat them back",
				Description: "You will hear a sequence of digits. Type them back in the same order.",
				AudioData: &models.AudioData{
					Samples:            []string{"digits_8_3_9_1"},
					MaxReplays:         2,
					PlaybackDurationMs: 4000,
				},
				CorrectAnswer: "8391",
				Weight:        1,
			},
			{
				ID:          "wm_3",
				SectionID:   "wm",
				Type:        models.ItemDigitSpan,
				Question:    "Listen to this sequence of numbers and repeat them back",
				Description: "You will hear a sequence of digits. Type them back in the same order.",
				AudioData: &models.AudioData{
					Samples:            []string{"digits_5_2_8_7_4"},
					MaxReplays:         2,
					PlaybackDurationMs: 5000,
				},
				CorrectAnswer: "52874",
				Weight:        1,
			},
			{
				ID:          "wm_4",
				SectionID:   "wm",
				Type:        models.ItemMotifRecall,
				Question:    "Which melody matches what you just heard?",
				Description: "Listen to the melody, then choose the matching option",
				Options:     []string{"Melody A", "Melody B", "Melody C"},
				AudioData: &models.AudioData{
					Samples:            []string{"motif_original", "motif_a", "motif_b", "motif_c"},
					MaxReplays:         2,
					PlaybackDurationMs: 4000,
				},
				CorrectAnswer: "Melody B",
				Weight:        1.5,
			},
			{
				ID:          "wm_5",
				SectionID:   "wm",
				Type:        models.ItemMotifRecall,
				Question:    "Which melody matches what you just heard?",
				Description: "Listen to the melody, then choose the matching option",
				Options:     []string{"Melody A", "Melody B", "Melody C"},
				AudioData: &models.AudioData{
					Samples:            []string{"motif2_original", "motif2_a", "motif2_b", "motif2_c"},
					MaxReplays:         2,
					PlaybackDurationMs: 4000,
				},
				CorrectAnswer: "Melody A",
				Weight:        1.5,
			},
		},
	},
}
