package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/musicraft-academy/aptitude-service/internal/models"
)

// AttemptRecord is the relational shape of one attempt. Answers and section
// scores are stored as JSON documents; they are only ever read and written as
// a unit, never queried field-by-field.
type AttemptRecord struct {
	ID               string         `gorm:"primaryKey;size:36"`
	StartedAt        int64          `gorm:"not null;index"`
	CompletedAt      *int64         `gorm:""`
	Answers          datatypes.JSON `gorm:"type:jsonb"`
	SectionScores    datatypes.JSON `gorm:"type:jsonb"`
	OverallScore     int            `gorm:"not null;default:0"`
	OverallBand      string         `gorm:"size:1;not null;default:C"`
	RecommendedLevel string         `gorm:"size:32;not null;default:Beginner"`
	IsCurrent        bool           `gorm:"not null;default:false;index"`
}

func (AttemptRecord) TableName() string {
	return "assessment_attempts"
}

// PostgresStore persists the snapshot in Postgres through gorm. Each Save
// rewrites the attempt rows inside one transaction so the snapshot is never
// observed half-written.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&AttemptRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate attempt records: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (*Snapshot, error) {
	var records []AttemptRecord
	if err := s.db.WithContext(ctx).Order("started_at asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	snapshot := &Snapshot{}
	for i := range records {
		attempt, err := recordToAttempt(&records[i])
		if err != nil {
			return nil, err
		}
		if records[i].IsCurrent {
			snapshot.Current = attempt
		}
		if attempt.IsCompleted() {
			snapshot.History = append(snapshot.History, *attempt)
		}
	}
	return snapshot, nil
}

func (s *PostgresStore) Save(ctx context.Context, snapshot *Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&AttemptRecord{}).Where("is_current = ?", true).Update("is_current", false).Error; err != nil {
			return fmt.Errorf("failed to clear current marker: %w", err)
		}

		for i := range snapshot.History {
			record, err := attemptToRecord(&snapshot.History[i], false)
			if err != nil {
				return err
			}
			if err := upsertRecord(tx, record); err != nil {
				return err
			}
		}

		if snapshot.Current != nil {
			record, err := attemptToRecord(snapshot.Current, true)
			if err != nil {
				return err
			}
			if err := upsertRecord(tx, record); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertRecord(tx *gorm.DB, record *AttemptRecord) error {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert attempt %s: %w", record.ID, err)
	}
	return nil
}

func attemptToRecord(attempt *models.AssessmentAttempt, isCurrent bool) (*AttemptRecord, error) {
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	scores, err := json.Marshal(attempt.SectionScores)
	if err != nil {
		return nil, fmt.Errorf("failed to encode section scores: %w", err)
	}

	return &AttemptRecord{
		ID:               attempt.ID,
		StartedAt:        attempt.StartedAt,
		CompletedAt:      attempt.CompletedAt,
		Answers:          datatypes.JSON(answers),
		SectionScores:    datatypes.JSON(scores),
		OverallScore:     attempt.OverallScore,
		OverallBand:      string(attempt.OverallBand),
		RecommendedLevel: string(attempt.RecommendedLevel),
		IsCurrent:        isCurrent,
	}, nil
}

func recordToAttempt(record *AttemptRecord) (*models.AssessmentAttempt, error) {
	attempt := &models.AssessmentAttempt{
		ID:               record.ID,
		StartedAt:        record.StartedAt,
		CompletedAt:      record.CompletedAt,
		Answers:          []models.AssessmentAnswer{},
		SectionScores:    []models.SectionScore{},
		OverallScore:     record.OverallScore,
		OverallBand:      models.Band(record.OverallBand),
		RecommendedLevel: models.RecommendedLevel(record.RecommendedLevel),
	}

	if len(record.Answers) > 0 {
		if err := json.Unmarshal(record.Answers, &attempt.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers for %s: %w", record.ID, err)
		}
	}
	if len(record.SectionScores) > 0 {
		if err := json.Unmarshal(record.SectionScores, &attempt.SectionScores); err != nil {
			return nil, fmt.Errorf("failed to decode section scores for %s: %w", record.ID, err)
		}
	}
	return attempt, nil
}
