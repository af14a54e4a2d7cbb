package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/prasaja/job_portal/models"
)

// Engine drives the attempt lifecycle shared by both test tracks: eligibility,
// deadline computation, scoring and the one-way ongoing → pass|failed
// transition. Track-specific behavior (profile vs subscription gating,
// application side effects, certificate issuance) lives in the per-track
// entry points.
type Engine struct {
	store Store
	now   func() time.Time
	rand  *rand.Rand
}

type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand overrides the source used for certificate codes.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// QuestionSet is what a candidate sees mid-attempt. Question answer keys are
// withheld by the model's JSON mapping.
type QuestionSet struct {
	TestID          uuid.UUID         `json:"test_id"`
	DurationMinutes int               `json:"duration_minutes"`
	Questions       []models.Question `json:"questions"`
}

// Window is the attempt's countdown interval.
type Window struct {
	StartedAt time.Time `json:"started_at"`
	EndDate   time.Time `json:"end_date"`
}

// SubmitResult is the outcome of a finalized submission.
type SubmitResult struct {
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"total_questions"`
	Status         string              `json:"status"`
	Certificate    *models.Certificate `json:"certificate,omitempty"`
}

func (e *Engine) newAttempt(def *Definition, candidateID uuid.UUID) *models.Attempt {
	start := e.now()
	return &models.Attempt{
		Track:       def.Track,
		CandidateID: candidateID,
		TestID:      def.ID,
		StartedAt:   start,
		EndDate:     start.Add(time.Duration(def.DurationMinutes) * time.Minute),
		Score:       0,
		Status:      models.AttemptOngoing,
	}
}

// checkAttemptHistory applies the shared eligibility rules: the 7-day retry
// cooldown after a failed run, and at most one attempt in flight.
func (e *Engine) checkAttemptHistory(ctx context.Context, track models.Track, candidateID, testID uuid.UUID) error {
	failed, err := e.store.LatestFailedAttempt(ctx, track, candidateID, testID)
	if err != nil {
		return err
	}
	if failed != nil {
		if remaining := cooldownRemaining(failed.EndDate, e.now()); remaining > 0 {
			return &DenialError{Reason: DenyCooldownActive, DaysRemaining: remaining}
		}
	}

	latest, err := e.store.LatestAttempt(ctx, track, candidateID, testID)
	if err != nil {
		return err
	}
	if latest != nil && latest.Status == models.AttemptOngoing {
		return &DenialError{Reason: DenyAttemptInProgress}
	}
	return nil
}

// ongoingAttempt loads the candidate's latest attempt at the test and
// requires it to still be in flight.
func (e *Engine) ongoingAttempt(ctx context.Context, track models.Track, candidateID, testID uuid.UUID) (*models.Attempt, error) {
	att, err := e.store.LatestAttempt(ctx, track, candidateID, testID)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, ErrNotFound
	}
	if att.Finalized() {
		return nil, ErrAttemptFinalized
	}
	return att, nil
}

// scoreSubmission validates the answer set against the current bank and
// computes the final score and status. enforceDeadline is off only for the
// autosave path, which keeps the legacy behavior of not re-checking the
// window.
func (e *Engine) scoreSubmission(ctx context.Context, def *Definition, att *models.Attempt, answers []Answer, enforceDeadline bool) (score, total int, status string, err error) {
	if enforceDeadline && e.now().After(att.EndDate) {
		return 0, 0, "", ErrExpiredWindow
	}
	bank, err := e.store.Questions(ctx, def.Track, def.ID)
	if err != nil {
		return 0, 0, "", err
	}
	if err := ValidateAnswers(bank, answers); err != nil {
		return 0, 0, "", err
	}
	score, total = Score(bank, answers)
	status = models.AttemptFailed
	if score >= def.PassingGrade {
		status = models.AttemptPass
	}
	return score, total, status, nil
}

func (e *Engine) finalize(ctx context.Context, f Finalization) error {
	updated, err := e.store.FinalizeAttempt(ctx, f)
	if err != nil {
		return err
	}
	if !updated {
		return ErrAttemptFinalized
	}
	return nil
}
