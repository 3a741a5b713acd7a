package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/musicraft-academy/aptitude-service/internal/audio"
	"github.com/musicraft-academy/aptitude-service/internal/cache"
	"github.com/musicraft-academy/aptitude-service/internal/itembank"
	"github.com/musicraft-academy/aptitude-service/internal/models"
	"github.com/musicraft-academy/aptitude-service/internal/repositories"
	"github.com/musicraft-academy/aptitude-service/internal/scoring"
	"github.com/musicraft-academy/aptitude-service/internal/session"
	"github.com/musicraft-academy/aptitude-service/internal/validator"
)

const shareSummaryTTL = 24 * time.Hour

// RecordAnswerRequest is one response being recorded into the current
// attempt.
type RecordAnswerRequest struct {
	ItemID      string             `json:"item_id" validate:"required"`
	SectionID   string             `json:"section_id" validate:"required"`
	Value       models.AnswerValue `json:"value"`
	ReplaysUsed int                `json:"replays_used" validate:"min=0"`
}

// Progress describes the cursor position for display.
type Progress struct {
	AttemptID    string `json:"attempt_id,omitempty"`
	SectionIndex int    `json:"section_index"`
	ItemIndex    int    `json:"item_index"`
	SectionID    string `json:"section_id,omitempty"`
	ItemID       string `json:"item_id,omitempty"`
	SectionCount int    `json:"section_count"`
	ItemCount    int    `json:"item_count"`
}

// CompleteResult is everything produced by finalizing an attempt.
type CompleteResult struct {
	Attempt         *models.AssessmentAttempt `json:"attempt"`
	Recommendations []string                  `json:"recommendations"`
	Submission      SubmissionResult          `json:"submission"`
}

// AttemptService orchestrates the attempt state machine with scoring,
// persistence, caching and the notification sink.
type AttemptService interface {
	Start(ctx context.Context) (string, error)
	RecordAnswer(ctx context.Context, req *RecordAnswerRequest) error
	AdvanceItem(ctx context.Context)
	RetreatItem(ctx context.Context)
	AdvanceSection(ctx context.Context)
	RetreatSection(ctx context.Context)
	Complete(ctx context.Context) (*CompleteResult, error)
	GetByID(ctx context.Context, id string) (*models.AssessmentAttempt, error)
	History(ctx context.Context) []models.AssessmentAttempt
	Discard(ctx context.Context) error
	Progress(ctx context.Context) Progress
}

type attemptService struct {
	bank       *itembank.Bank
	session    *session.Session
	store      repositories.AttemptStore
	cache      cache.CacheService
	exporter   ExportService
	notifier   NotificationService
	controller *audio.Controller
	logger     *slog.Logger
	validator  *validator.Validator
}

func NewAttemptService(
	bank *itembank.Bank,
	sess *session.Session,
	store repositories.AttemptStore,
	cacheSvc cache.CacheService,
	exporter ExportService,
	notifier NotificationService,
	controller *audio.Controller,
	logger *slog.Logger,
	v *validator.Validator,
) AttemptService {
	return &attemptService{
		bank:       bank,
		session:    sess,
		store:      store,
		cache:      cacheSvc,
		exporter:   exporter,
		notifier:   notifier,
		controller: controller,
		logger:     logger,
		validator:  v,
	}
}

// ===== CORE ATTEMPT OPERATIONS =====

func (s *attemptService) Start(ctx context.Context) (string, error) {
	id := s.session.Start()
	s.logger.Info("Assessment attempt started", "attempt_id", id)

	s.resetReplayBudget()

	if err := s.persist(ctx); err != nil {
		return "", fmt.Errorf("failed to persist new attempt: %w", err)
	}
	return id, nil
}

func (s *attemptService) RecordAnswer(ctx context.Context, req *RecordAnswerRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if _, err := s.bank.FindItem(req.ItemID); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownItem, req.ItemID)
	}

	// Recording with no active attempt is deliberately a no-op; UI teardown
	// races must not crash the session.
	if s.session.Current() == nil {
		s.logger.Debug("Answer ignored, no attempt in progress", "item_id", req.ItemID)
		return nil
	}

	s.session.RecordAnswer(models.AssessmentAnswer{
		ItemID:      req.ItemID,
		SectionID:   req.SectionID,
		Value:       req.Value,
		Timestamp:   models.EpochMillis(time.Now()),
		ReplaysUsed: req.ReplaysUsed,
	})

	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("failed to persist answer: %w", err)
	}
	return nil
}

// ===== NAVIGATION =====
//
// Cursor movement is session-scoped and not persisted. Arriving at a new item
// restores that item's full replay allotment.

func (s *attemptService) AdvanceItem(_ context.Context) {
	s.session.AdvanceItem()
	s.resetReplayBudget()
}

func (s *attemptService) RetreatItem(_ context.Context) {
	s.session.RetreatItem()
	s.resetReplayBudget()
}

func (s *attemptService) AdvanceSection(_ context.Context) {
	s.session.AdvanceSection()
	s.resetReplayBudget()
}

func (s *attemptService) RetreatSection(_ context.Context) {
	s.session.RetreatSection()
	s.resetReplayBudget()
}

func (s *attemptService) resetReplayBudget() {
	if s.controller == nil {
		return
	}
	budget := 0
	if item := s.session.CurrentItem(); item != nil && item.AudioData != nil {
		budget = item.AudioData.MaxReplays
	}
	s.controller.ResetReplays(budget)
}

// ===== COMPLETION =====

func (s *attemptService) Complete(ctx context.Context) (*CompleteResult, error) {
	attempt := s.session.Current()
	if attempt == nil {
		return nil, ErrNoActiveAttempt
	}
	if attempt.IsCompleted() {
		return nil, ErrAttemptCompleted
	}

	sectionScores, err := scoring.ScoreAllSections(s.bank, attempt.Answers)
	if err != nil {
		return nil, err
	}
	overallScore := scoring.ScoreOverall(s.bank, sectionScores)
	overallBand := scoring.Band(s.bank.BandThresholds(), overallScore)
	recommendedLevel := scoring.RecommendLevel(overallScore, sectionScores)

	if err := s.session.Complete(sectionScores, overallScore, overallBand, recommendedLevel); err != nil {
		return nil, err
	}

	s.logger.Info("Assessment attempt completed",
		"attempt_id", attempt.ID,
		"overall_score", overallScore,
		"overall_band", overallBand,
		"recommended_level", recommendedLevel,
		"answers_count", len(attempt.Answers))

	if err := s.persist(ctx); err != nil {
		return nil, fmt.Errorf("failed to persist completed attempt: %w", err)
	}

	s.cacheShareSummary(ctx, attempt)

	// Best-effort telemetry: a sink failure becomes a warning on the result,
	// never an error to the caller.
	submission := s.notifier.SubmitResult(ctx, attempt)

	return &CompleteResult{
		Attempt:         attempt,
		Recommendations: scoring.Recommendations(s.bank, sectionScores),
		Submission:      submission,
	}, nil
}

func (s *attemptService) cacheShareSummary(ctx context.Context, attempt *models.AssessmentAttempt) {
	summary := s.exporter.ToShareSummary(attempt)
	if err := s.cache.Set(ctx, shareSummaryKey(attempt.ID), summary, shareSummaryTTL); err != nil {
		s.logger.Warn("Failed to cache share summary",
			"attempt_id", attempt.ID,
			"error", err)
	}
}

func shareSummaryKey(attemptID string) string {
	return "share:" + attemptID
}

// ===== LOOKUP =====

func (s *attemptService) GetByID(_ context.Context, id string) (*models.AssessmentAttempt, error) {
	return s.session.GetByID(id)
}

func (s *attemptService) History(_ context.Context) []models.AssessmentAttempt {
	return s.session.History()
}

func (s *attemptService) Discard(ctx context.Context) error {
	s.session.Discard()
	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("failed to persist discard: %w", err)
	}
	return nil
}

func (s *attemptService) Progress(_ context.Context) Progress {
	cursor := s.session.Cursor()
	progress := Progress{
		SectionIndex: cursor.Section,
		ItemIndex:    cursor.Item,
		SectionCount: s.bank.SectionCount(),
		ItemCount:    s.bank.ItemCount(cursor.Section),
	}
	if current := s.session.Current(); current != nil {
		progress.AttemptID = current.ID
	}
	if item := s.session.CurrentItem(); item != nil {
		progress.SectionID = item.SectionID
		progress.ItemID = item.ID
	}
	return progress
}

func (s *attemptService) persist(ctx context.Context) error {
	snapshot := &repositories.Snapshot{
		Current: s.session.Current(),
		History: s.session.History(),
	}
	return s.store.Save(ctx, snapshot)
}
