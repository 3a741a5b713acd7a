package audio

import (
	"fmt"
	"time"
)

// StimulusKind discriminates the playback shapes the controller can drive.
type StimulusKind string

const (
	KindTone     StimulusKind = "tone"
	KindSequence StimulusKind = "sequence"
	KindRhythm   StimulusKind = "rhythm"
)

// Stimulus is one playable audio cue: a single tone, an ordered tone
// sequence, or a timed rhythmic pattern.
type Stimulus struct {
	Kind StimulusKind

	// Tone / Sequence
	Frequencies  []float64
	NoteDuration time.Duration

	// Rhythm: 1 = beat, 0 = rest, at TempoBPM beats per minute.
	Pattern  []int
	TempoBPM int
}

// Tone builds a single-tone stimulus.
func Tone(frequency float64, duration time.Duration) Stimulus {
	return Stimulus{Kind: KindTone, Frequencies: []float64{frequency}, NoteDuration: duration}
}

// Sequence builds an ordered tone-sequence stimulus.
func Sequence(frequencies []float64, noteDuration time.Duration) Stimulus {
	return Stimulus{Kind: KindSequence, Frequencies: frequencies, NoteDuration: noteDuration}
}

// Rhythm builds a timed rhythmic-pattern stimulus.
func Rhythm(pattern []int, tempoBPM int) Stimulus {
	return Stimulus{Kind: KindRhythm, Pattern: pattern, TempoBPM: tempoBPM}
}

// Duration returns how long the stimulus takes to play.
func (s Stimulus) Duration() time.Duration {
	switch s.Kind {
	case KindTone:
		return s.NoteDuration
	case KindSequence:
		// Notes are separated by a short 100ms gap.
		return time.Duration(len(s.Frequencies)) * (s.NoteDuration + 100*time.Millisecond)
	case KindRhythm:
		if s.TempoBPM <= 0 {
			return 0
		}
		beat := time.Minute / time.Duration(s.TempoBPM)
		return time.Duration(len(s.Pattern)) * beat
	}
	return 0
}

// NoteFrequencies maps note names around middle C to their frequencies in Hz.
var NoteFrequencies = map[string]float64{
	"C4": 261.63,
	"D4": 293.66,
	"E4": 329.63,
	"F4": 349.23,
	"G4": 392.00,
	"A4": 440.00,
	"B4": 493.88,
	"C5": 523.25,
}

const digitBaseFrequency = 400

// DigitFrequencies converts a digit sequence to the frequencies used when a
// digit-span stimulus is spoken as tones.
func DigitFrequencies(digits []int) []float64 {
	freqs := make([]float64, len(digits))
	for i, d := range digits {
		freqs[i] = digitBaseFrequency + float64(d)*50
	}
	return freqs
}

// ParseRhythmPattern converts a rhythm string to beats: 'X' is a beat, '-' a
// rest. Any other rune is rejected.
func ParseRhythmPattern(pattern string) ([]int, error) {
	beats := make([]int, 0, len(pattern))
	for _, r := range pattern {
		switch r {
		case 'X':
			beats = append(beats, 1)
		case '-':
			beats = append(beats, 0)
		default:
			return nil, fmt.Errorf("invalid rhythm pattern rune %q", r)
		}
	}
	return beats, nil
}
