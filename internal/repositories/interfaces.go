// Package repositories provides durable storage for attempt state. The engine
// has a single writer, so stores persist the whole session snapshot after
// every mutation rather than incremental updates; implementations must write
// the snapshot atomically to survive interruption mid-serialization.
package repositories

import (
	"context"

	"github.com/musicraft-academy/aptitude-service/internal/models"
)

// Snapshot is the persisted session state: the current attempt (may be nil)
// and the completed-attempt history.
type Snapshot struct {
	Current *models.AssessmentAttempt  `json:"current,omitempty"`
	History []models.AssessmentAttempt `json:"history"`
}

// AttemptStore loads and saves the session snapshot.
type AttemptStore interface {
	// Load hydrates the snapshot; an empty store returns an empty snapshot,
	// not an error.
	Load(ctx context.Context) (*Snapshot, error)

	// Save durably writes the whole snapshot.
	Save(ctx context.Context, snapshot *Snapshot) error
}
