package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prasaja/job_portal/engine"
	"github.com/prasaja/job_portal/models"
	"gorm.io/gorm"
)

// Store is the GORM implementation of the engine's persistence handle.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.ErrNotFound
	}
	return err
}

func (s *Store) Candidate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) Job(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &job, nil
}

func (s *Store) ApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := s.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

func (s *Store) Definition(ctx context.Context, track models.Track, testID uuid.UUID) (*engine.Definition, error) {
	switch track {
	case models.TrackPreSelection:
		var test models.PreSelectionTest
		if err := s.db.WithContext(ctx).First(&test, "id = ? AND deleted = false", testID).Error; err != nil {
			return nil, notFound(err)
		}
		return &engine.Definition{
			ID:              test.ID,
			Track:           track,
			Name:            test.Name,
			DurationMinutes: test.DurationMinutes,
			PassingGrade:    test.PassingGrade,
			OwnerID:         test.CompanyID,
		}, nil
	case models.TrackSkillAssessment:
		var assessment models.SkillAssessment
		if err := s.db.WithContext(ctx).First(&assessment, "id = ? AND deleted = false", testID).Error; err != nil {
			return nil, notFound(err)
		}
		return &engine.Definition{
			ID:              assessment.ID,
			Track:           track,
			Name:            assessment.Name,
			DurationMinutes: assessment.DurationMinutes,
			PassingGrade:    assessment.PassingGrade,
			OwnerID:         assessment.DeveloperID,
		}, nil
	}
	return nil, engine.ErrNotFound
}

func (s *Store) Questions(ctx context.Context, track models.Track, testID uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).
		Where("test_id = ? AND track = ?", testID, track).
		Order("created_at").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *Store) latestAttempt(ctx context.Context, track models.Track, candidateID, testID uuid.UUID, statuses ...string) (*models.Attempt, error) {
	q := s.db.WithContext(ctx).
		Where("track = ? AND candidate_id = ? AND test_id = ?", track, candidateID, testID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var attempt models.Attempt
	err := q.Order("created_at DESC").First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *Store) LatestAttempt(ctx context.Context, track models.Track, candidateID, testID uuid.UUID) (*models.Attempt, error) {
	return s.latestAttempt(ctx, track, candidateID, testID)
}

func (s *Store) LatestFailedAttempt(ctx context.Context, track models.Track, candidateID, testID uuid.UUID) (*models.Attempt, error) {
	return s.latestAttempt(ctx, track, candidateID, testID, models.AttemptFailed)
}

func (s *Store) CreatePreSelectionAttempt(ctx context.Context, attempt *models.Attempt, application *models.Application) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(application).Error; err != nil {
			return err
		}
		attempt.ApplicationID = &application.ID
		return tx.Create(attempt).Error
	})
}

func (s *Store) CreateAssessmentAttempt(ctx context.Context, attempt *models.Attempt) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", attempt.CandidateID).
			UpdateColumn("assessment_start_count", gorm.Expr("assessment_start_count + 1")).Error
	})
}

func (s *Store) FinalizeAttempt(ctx context.Context, f engine.Finalization) (bool, error) {
	var updated bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// guarded update: a second writer sees zero rows and applies nothing
		res := tx.Model(&models.Attempt{}).
			Where("id = ? AND status = ?", f.AttemptID, models.AttemptOngoing).
			Updates(map[string]interface{}{"score": f.Score, "status": f.Status})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		updated = true

		if f.ApplicationID != nil {
			err := tx.Model(&models.Application{}).
				Where("id = ?", *f.ApplicationID).
				Update("status", f.ApplicationStatus).Error
			if err != nil {
				return err
			}
		}
		if f.Certificate != nil {
			if err := tx.Create(f.Certificate).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (s *Store) SaveAttemptScore(ctx context.Context, attemptID uuid.UUID, score int) error {
	return s.db.WithContext(ctx).Model(&models.Attempt{}).
		Where("id = ? AND status = ?", attemptID, models.AttemptOngoing).
		Update("score", score).Error
}

func (s *Store) CertificateCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Certificate{}).
		Where("code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) OverdueAttempts(ctx context.Context, now time.Time) ([]models.Attempt, error) {
	var attempts []models.Attempt
	err := s.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", models.AttemptOngoing, now).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
