package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prasaja/job_portal/models"
)

// Definition is the track-agnostic projection of a test definition the
// attempt engine works with.
type Definition struct {
	ID              uuid.UUID
	Track           models.Track
	Name            string
	DurationMinutes int
	PassingGrade    int
	OwnerID         uuid.UUID
}

// Finalization describes the atomic write that moves an attempt out of the
// ongoing state, together with its track-specific side effects.
type Finalization struct {
	AttemptID uuid.UUID
	Score     int
	Status    string

	// pre-selection: the bound application advances in the same transaction
	ApplicationID     *uuid.UUID
	ApplicationStatus string

	// skill assessment: a certificate is inserted in the same transaction
	Certificate *models.Certificate
}

// Store is the persistence handle injected into the engine. Lookup methods
// return ErrNotFound for absent rows; the two Latest* methods return
// (nil, nil) when the candidate has no matching attempt.
type Store interface {
	Candidate(ctx context.Context, id uuid.UUID) (*models.User, error)
	Job(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error)

	Definition(ctx context.Context, track models.Track, testID uuid.UUID) (*Definition, error)
	Questions(ctx context.Context, track models.Track, testID uuid.UUID) ([]models.Question, error)

	LatestAttempt(ctx context.Context, track models.Track, candidateID, testID uuid.UUID) (*models.Attempt, error)
	LatestFailedAttempt(ctx context.Context, track models.Track, candidateID, testID uuid.UUID) (*models.Attempt, error)

	// CreatePreSelectionAttempt persists the attempt and its backing
	// application in one transaction.
	CreatePreSelectionAttempt(ctx context.Context, attempt *models.Attempt, application *models.Application) error
	// CreateAssessmentAttempt persists the attempt and increments the
	// candidate's lifetime start counter in one transaction.
	CreateAssessmentAttempt(ctx context.Context, attempt *models.Attempt) error

	// FinalizeAttempt applies f only while the attempt is still ongoing.
	// It reports false when a concurrent writer finalized first, in which
	// case no side effect is applied.
	FinalizeAttempt(ctx context.Context, f Finalization) (bool, error)
	// SaveAttemptScore persists a partial score without touching status.
	SaveAttemptScore(ctx context.Context, attemptID uuid.UUID, score int) error

	CertificateCodeExists(ctx context.Context, code string) (bool, error)

	// OverdueAttempts lists ongoing attempts whose end date has passed.
	OverdueAttempts(ctx context.Context, now time.Time) ([]models.Attempt, error)
}
