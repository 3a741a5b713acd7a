// Package session owns the lifecycle of one assessment attempt: start,
// answer recording, cursor navigation and completion. A Session is an
// explicit object handed to its callers instead of ambient global state; all
// mutation of the current attempt and the history goes through its methods,
// which preserves the engine's single-writer model.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/musicraft-academy/aptitude-service/internal/itembank"
	"github.com/musicraft-academy/aptitude-service/internal/models"
)

var (
	// ErrAttemptNotFound is the not-found sentinel for GetByID.
	ErrAttemptNotFound = errors.New("attempt not found")

	// ErrNoActiveAttempt is returned by Complete when no attempt is in
	// progress.
	ErrNoActiveAttempt = errors.New("no attempt in progress")

	// ErrAttemptCompleted is returned by Complete on an already-completed
	// attempt; there is no transition back to in-progress.
	ErrAttemptCompleted = errors.New("attempt already completed")
)

// Cursor is the session-scoped navigation position. It is not part of the
// persisted attempt record.
type Cursor struct {
	Section int `json:"section"`
	Item    int `json:"item"`
}

// Session is the state machine for a single test-taker. It is not safe for
// concurrent use; the engine is driven by direct, awaited user interaction.
type Session struct {
	bank    *itembank.Bank
	current *models.AssessmentAttempt
	history []models.AssessmentAttempt
	cursor  Cursor
	now     func() time.Time
}

// New creates a session over the given item bank with empty history.
func New(bank *itembank.Bank) *Session {
	return &Session{bank: bank, now: time.Now}
}

// Restore hydrates the session from a previously persisted current attempt
// and history, resetting the cursor.
func Restore(bank *itembank.Bank, current *models.AssessmentAttempt, history []models.AssessmentAttempt) *Session {
	s := New(bank)
	s.current = current
	s.history = history
	return s
}

// WithClock overrides the wall clock, for tests.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Start begins a new attempt, resets the cursor and returns the fresh
// attempt id. Ids are never reused; a previous in-progress attempt is simply
// abandoned.
func (s *Session) Start() string {
	attempt := &models.AssessmentAttempt{
		ID:               uuid.NewString(),
		StartedAt:        models.EpochMillis(s.now()),
		Answers:          []models.AssessmentAnswer{},
		SectionScores:    []models.SectionScore{},
		OverallScore:     0,
		OverallBand:      models.BandC,
		RecommendedLevel: models.LevelBeginner,
	}
	s.current = attempt
	s.cursor = Cursor{}
	return attempt.ID
}

// RecordAnswer upserts an answer by item id into the current attempt.
// Recording with no attempt in progress is silently ignored: it can
// legitimately happen during UI teardown races and must not fail the session.
func (s *Session) RecordAnswer(answer models.AssessmentAnswer) {
	if s.current == nil {
		return
	}
	for i := range s.current.Answers {
		if s.current.Answers[i].ItemID == answer.ItemID {
			s.current.Answers[i] = answer
			return
		}
	}
	s.current.Answers = append(s.current.Answers, answer)
}

// AdvanceItem moves the item cursor forward, clamped to the last item of the
// current section.
func (s *Session) AdvanceItem() {
	if s.cursor.Item < s.bank.ItemCount(s.cursor.Section)-1 {
		s.cursor.Item++
	}
}

// RetreatItem moves the item cursor back, clamped at 0.
func (s *Session) RetreatItem() {
	if s.cursor.Item > 0 {
		s.cursor.Item--
	}
}

// AdvanceSection moves to the next section and resets the item cursor,
// clamped to the last section.
func (s *Session) AdvanceSection() {
	if s.cursor.Section < s.bank.SectionCount()-1 {
		s.cursor.Section++
		s.cursor.Item = 0
	}
}

// RetreatSection moves to the previous section and resets the item cursor,
// clamped at 0.
func (s *Session) RetreatSection() {
	if s.cursor.Section > 0 {
		s.cursor.Section--
	}
	s.cursor.Item = 0
}

// Complete finalizes the current attempt with the supplied results: stamps
// the completion time, appends the now-immutable attempt to history and keeps
// it current for immediate display.
func (s *Session) Complete(sectionScores []models.SectionScore, overallScore int, overallBand models.Band, recommendedLevel models.RecommendedLevel) error {
	if s.current == nil {
		return ErrNoActiveAttempt
	}
	if s.current.IsCompleted() {
		return ErrAttemptCompleted
	}

	completedAt := models.EpochMillis(s.now())
	s.current.CompletedAt = &completedAt
	s.current.SectionScores = sectionScores
	s.current.OverallScore = overallScore
	s.current.OverallBand = overallBand
	s.current.RecommendedLevel = recommendedLevel

	s.history = append(s.history, *s.current)
	return nil
}

// GetByID returns the current attempt when its id matches, otherwise searches
// history. Returns ErrAttemptNotFound when no attempt has that id.
func (s *Session) GetByID(id string) (*models.AssessmentAttempt, error) {
	if s.current != nil && s.current.ID == id {
		return s.current, nil
	}
	for i := range s.history {
		if s.history[i].ID == id {
			return &s.history[i], nil
		}
	}
	return nil, ErrAttemptNotFound
}

// Current returns the in-progress or just-completed attempt, nil when none.
func (s *Session) Current() *models.AssessmentAttempt {
	return s.current
}

// History returns completed attempts in completion order.
func (s *Session) History() []models.AssessmentAttempt {
	return s.history
}

// Cursor returns the current navigation position.
func (s *Session) Cursor() Cursor {
	return s.cursor
}

// CurrentItem returns the item under the cursor, nil when no section/item is
// addressable.
func (s *Session) CurrentItem() *models.AssessmentItem {
	sections := s.bank.Sections()
	if s.cursor.Section < 0 || s.cursor.Section >= len(sections) {
		return nil
	}
	items := sections[s.cursor.Section].Items
	if s.cursor.Item < 0 || s.cursor.Item >= len(items) {
		return nil
	}
	return &items[s.cursor.Item]
}

// Discard drops the current attempt reference and resets the cursor without
// mutating history.
func (s *Session) Discard() {
	s.current = nil
	s.cursor = Cursor{}
}
