package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/prasaja/job_portal/models"
)

// StartAssessment runs the subscription gate and opens a timed attempt at a
// skill assessment, incrementing the candidate's lifetime start counter in
// the same transaction.
func (e *Engine) StartAssessment(ctx context.Context, candidateID, assessmentID uuid.UUID) (*models.Attempt, error) {
	def, err := e.store.Definition(ctx, models.TrackSkillAssessment, assessmentID)
	if err != nil {
		return nil, err
	}
	cand, err := e.store.Candidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if err := checkSubscription(cand, e.now()); err != nil {
		return nil, err
	}
	if err := e.checkAttemptHistory(ctx, models.TrackSkillAssessment, candidateID, def.ID); err != nil {
		return nil, err
	}

	attempt := e.newAttempt(def, candidateID)
	if err := e.store.CreateAssessmentAttempt(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// AssessmentQuestions returns the bank (answer keys withheld) while the
// candidate's own attempt at this assessment is still ongoing.
func (e *Engine) AssessmentQuestions(ctx context.Context, candidateID, assessmentID uuid.UUID) (*QuestionSet, error) {
	def, err := e.store.Definition(ctx, models.TrackSkillAssessment, assessmentID)
	if err != nil {
		return nil, err
	}
	if _, err := e.ongoingAttempt(ctx, models.TrackSkillAssessment, candidateID, def.ID); err != nil {
		return nil, err
	}
	questions, err := e.store.Questions(ctx, models.TrackSkillAssessment, def.ID)
	if err != nil {
		return nil, err
	}
	return &QuestionSet{TestID: def.ID, DurationMinutes: def.DurationMinutes, Questions: questions}, nil
}

// SubmitAssessment finalizes the attempt; a passing run mints a certificate
// in the same transaction.
func (e *Engine) SubmitAssessment(ctx context.Context, candidateID, assessmentID uuid.UUID, answers []Answer) (*SubmitResult, error) {
	def, err := e.store.Definition(ctx, models.TrackSkillAssessment, assessmentID)
	if err != nil {
		return nil, err
	}
	att, err := e.ongoingAttempt(ctx, models.TrackSkillAssessment, candidateID, def.ID)
	if err != nil {
		return nil, err
	}
	score, total, status, err := e.scoreSubmission(ctx, def, att, answers, true)
	if err != nil {
		return nil, err
	}

	fin := Finalization{AttemptID: att.ID, Score: score, Status: status}
	if status == models.AttemptPass {
		cert, err := e.mintCertificate(ctx, att, def)
		if err != nil {
			return nil, err
		}
		fin.Certificate = cert
	}
	if err := e.finalize(ctx, fin); err != nil {
		return nil, err
	}
	return &SubmitResult{Score: score, TotalQuestions: total, Status: status, Certificate: fin.Certificate}, nil
}

// SaveAssessmentScore persists partial progress without finalizing.
func (e *Engine) SaveAssessmentScore(ctx context.Context, candidateID, assessmentID uuid.UUID, answers []Answer) (int, error) {
	def, err := e.store.Definition(ctx, models.TrackSkillAssessment, assessmentID)
	if err != nil {
		return 0, err
	}
	att, err := e.ongoingAttempt(ctx, models.TrackSkillAssessment, candidateID, def.ID)
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

// AssessmentWindow returns the attempt's countdown interval.
func (e *Engine) AssessmentWindow(ctx context.Context, candidateID, assessmentID uuid.UUID) (*Window, error) {
	att, err := e.store.LatestAttempt(ctx, models.TrackSkillAssessment, candidateID, assessmentID)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, ErrNotFound
	}
	return &Window{StartedAt: att.StartedAt, EndDate: att.EndDate}, nil
}
