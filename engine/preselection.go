package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/prasaja/job_portal/models"
)

// preSelectionDefinition resolves the test attached to a job posting.
func (e *Engine) preSelectionDefinition(ctx context.Context, jobID uuid.UUID) (*Definition, error) {
	job, err := e.store.Job(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PreSelectionTestID == nil {
		return nil, ErrNotFound
	}
	return e.store.Definition(ctx, models.TrackPreSelection, *job.PreSelectionTestID)
}

// StartPreSelection runs the eligibility gate and opens a timed attempt at the
// job's pre-selection test, creating the backing application with status
// onTest in the same transaction.
func (e *Engine) StartPreSelection(ctx context.Context, candidateID, jobID uuid.UUID) (*models.Attempt, *models.Application, error) {
	job, err := e.store.Job(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.PreSelectionTestID == nil {
		return nil, nil, ErrNotFound
	}
	def, err := e.store.Definition(ctx, models.TrackPreSelection, *job.PreSelectionTestID)
	if err != nil {
		return nil, nil, err
	}

	cand, err := e.store.Candidate(ctx, candidateID)
	if err != nil {
		return nil, nil, err
	}
	if err := checkProfile(cand); err != nil {
		return nil, nil, err
	}
	if err := e.checkAttemptHistory(ctx, models.TrackPreSelection, candidateID, def.ID); err != nil {
		return nil, nil, err
	}

	attempt := e.newAttempt(def, candidateID)
	application := &models.Application{
		JobID:       job.ID,
		CandidateID: candidateID,
		Status:      models.ApplicationOnTest,
	}
	if err := e.store.CreatePreSelectionAttempt(ctx, attempt, application); err != nil {
		return nil, nil, err
	}
	return attempt, application, nil
}

// PreSelectionQuestions returns the bank (answer keys withheld) while the
// bound application is still on the test stage.
func (e *Engine) PreSelectionQuestions(ctx context.Context, candidateID, jobID uuid.UUID) (*QuestionSet, error) {
	def, err := e.preSelectionDefinition(ctx, jobID)
	if err != nil {
		return nil, err
	}
	att, err := e.ongoingAttempt(ctx, models.TrackPreSelection, candidateID, def.ID)
	if err != nil {
		return nil, err
	}
	if att.ApplicationID != nil {
		app, err := e.store.ApplicationByID(ctx, *att.ApplicationID)
		if err != nil {
			return nil, err
		}
		if app.Status != models.ApplicationOnTest {
			return nil, ErrAttemptFinalized
		}
	}
	questions, err := e.store.Questions(ctx, models.TrackPreSelection, def.ID)
	if err != nil {
		return nil, err
	}
	return &QuestionSet{TestID: def.ID, DurationMinutes: def.DurationMinutes, Questions: questions}, nil
}

// SubmitPreSelection finalizes the attempt and advances the bound application:
// pass moves it to waitingSubmission, failed rejects it.
func (e *Engine) SubmitPreSelection(ctx context.Context, candidateID, jobID uuid.UUID, answers []Answer) (*SubmitResult, error) {
	def, err := e.preSelectionDefinition(ctx, jobID)
	if err != nil {
		return nil, err
	}
	att, err := e.ongoingAttempt(ctx, models.TrackPreSelection, candidateID, def.ID)
	if err != nil {
		return nil, err
	}
	score, total, status, err := e.scoreSubmission(ctx, def, att, answers, true)
	if err != nil {
		return nil, err
	}

	fin := Finalization{AttemptID: att.ID, Score: score, Status: status}
	if att.ApplicationID != nil {
		fin.ApplicationID = att.ApplicationID
		fin.ApplicationStatus = models.ApplicationRejected
		if status == models.AttemptPass {
			fin.ApplicationStatus = models.ApplicationWaitingSubmission
		}
	}
	if err := e.finalize(ctx, fin); err != nil {
		return nil, err
	}
	return &SubmitResult{Score: score, TotalQuestions: total, Status: status}, nil
}

// SavePreSelectionScore persists partial progress without finalizing. The
// deadline is not re-checked here; only final submission enforces it.
func (e *Engine) SavePreSelectionScore(ctx context.Context, candidateID, jobID uuid.UUID, answers []Answer) (int, error) {
	def, err := e.preSelectionDefinition(ctx, jobID)
	if err != nil {
		return 0, err
	}
	att, err := e.ongoingAttempt(ctx, models.TrackPreSelection, candidateID, def.ID)
	if err != nil {
		return 0, err
	}
	score, _, _, err := e.scoreSubmission(ctx, def, att, answers, false)
	if err != nil {
		return 0, err
	}
	if err := e.store.SaveAttemptScore(ctx, att.ID, score); err != nil {
		return 0, err
	}
	return score, nil
}

// PreSelectionWindow returns the attempt's countdown interval.
func (e *Engine) PreSelectionWindow(ctx context.Context, candidateID, jobID uuid.UUID) (*Window, error) {
	def, err := e.preSelectionDefinition(ctx, jobID)
	if err != nil {
		return nil, err
	}
	att, err := e.store.LatestAttempt(ctx, models.TrackPreSelection, candidateID, def.ID)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, ErrNotFound
	}
	return &Window{StartedAt: att.StartedAt, EndDate: att.EndDate}, nil
}
