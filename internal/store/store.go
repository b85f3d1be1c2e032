// Package store defines the persistence boundary for profiles, conversation
// history and questionnaire submissions. Two implementations exist: a
// Postgres-backed one and an in-memory one used when the database is
// unreachable at startup. The implementation is selected once in main and
// injected; nothing in the package tree holds store state globally.
package store

import (
	"context"
	"errors"
	"time"

	"orienta-backend/internal/models"
)

// ErrNotFound is returned when a session has no stored profile.
var ErrNotFound = errors.New("store: not found")

type Store interface {
	// GetProfile returns the profile for sessionKey, or ErrNotFound.
	GetProfile(ctx context.Context, sessionKey string) (*models.StudentProfile, error)

	// UpsertProfile creates or replaces the profile and returns the stored record.
	UpsertProfile(ctx context.Context, profile *models.StudentProfile) (*models.StudentProfile, error)

	// ListMessages returns the session's history ordered by timestamp ascending.
	ListMessages(ctx context.Context, sessionKey string) ([]models.ChatMessage, error)

	// AppendTurn appends one user message and one bot message. Both are
	// written or neither is.
	AppendTurn(ctx context.Context, sessionKey string, userMsg, botMsg models.ChatMessage) error

	// SaveSubmission persists a questionnaire response verbatim, assigning
	// ID and FechaEnvio.
	SaveSubmission(ctx context.Context, sub *models.QuestionnaireSubmission) error

	// SubmissionStats returns the total submission count and the most recent
	// FechaEnvio, nil when there are none.
	SubmissionStats(ctx context.Context) (int, *time.Time, error)
}
