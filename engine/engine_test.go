package engine

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prasaja/job_portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	users     map[uuid.UUID]*models.User
	jobs      map[uuid.UUID]*models.Job
	apps      map[uuid.UUID]*models.Application
	defs      map[uuid.UUID]*Definition
	questions map[uuid.UUID][]models.Question
	attempts  []*models.Attempt
	certs     []*models.Certificate
	usedCodes map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[uuid.UUID]*models.User{},
		jobs:      map[uuid.UUID]*models.Job{},
		apps:      map[uuid.UUID]*models.Application{},
		defs:      map[uuid.UUID]*Definition{},
		questions: map[uuid.UUID][]models.Question{},
		usedCodes: map[string]bool{},
	}
}

func (f *fakeStore) Candidate(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Job(_ context.Context, id uuid.UUID) (*models.Job, error) {
	if j, ok := f.jobs[id]; ok {
		return j, nil
	}
	return nil, ErrNotFound
}

func (f *fakeStore) ApplicationByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	if a, ok := f.apps[id]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Definition(_ context.Context, track models.Track, testID uuid.UUID) (*Definition, error) {
	if d, ok := f.defs[testID]; ok && d.Track == track {
		return d, nil
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Questions(_ context.Context, _ models.Track, testID uuid.UUID) ([]models.Question, error) {
	return f.questions[testID], nil
}

func (f *fakeStore) latest(track models.Track, candidateID, testID uuid.UUID, onlyFailed bool) *models.Attempt {
	for i := len(f.attempts) - 1; i >= 0; i-- {
		att := f.attempts[i]
		if att.Track != track || att.CandidateID != candidateID || att.TestID != testID {
			continue
		}
		if onlyFailed && att.Status != models.AttemptFailed {
			continue
		}
		return att
	}
	return nil
}

func (f *fakeStore) LatestAttempt(_ context.Context, track models.Track, candidateID, testID uuid.UUID) (*models.Attempt, error) {
	return f.latest(track, candidateID, testID, false), nil
}

func (f *fakeStore) LatestFailedAttempt(_ context.Context, track models.Track, candidateID, testID uuid.UUID) (*models.Attempt, error) {
	return f.latest(track, candidateID, testID, true), nil
}

func (f *fakeStore) CreatePreSelectionAttempt(_ context.Context, attempt *models.Attempt, application *models.Application) error {
	application.ID = uuid.New()
	f.apps[application.ID] = application
	attempt.ID = uuid.New()
	attempt.ApplicationID = &application.ID
	f.attempts = append(f.attempts, attempt)
	return nil
}

func (f *fakeStore) CreateAssessmentAttempt(_ context.Context, attempt *models.Attempt) error {
	attempt.ID = uuid.New()
	f.attempts = append(f.attempts, attempt)
	f.users[attempt.CandidateID].AssessmentStartCount++
	return nil
}

func (f *fakeStore) FinalizeAttempt(_ context.Context, fin Finalization) (bool, error) {
	for _, att := range f.attempts {
		if att.ID != fin.AttemptID {
			continue
		}
		if att.Status != models.AttemptOngoing {
			return false, nil
		}
		att.Score = fin.Score
		att.Status = fin.Status
		if fin.ApplicationID != nil {
			f.apps[*fin.ApplicationID].Status = fin.ApplicationStatus
		}
		if fin.Certificate != nil {
			fin.Certificate.ID = uuid.New()
			f.certs = append(f.certs, fin.Certificate)
			f.usedCodes[fin.Certificate.Code] = true
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeStore) SaveAttemptScore(_ context.Context, attemptID uuid.UUID, score int) error {
	for _, att := range f.attempts {
		if att.ID == attemptID && att.Status == models.AttemptOngoing {
			att.Score = score
		}
	}
	return nil
}

func (f *fakeStore) CertificateCodeExists(_ context.Context, code string) (bool, error) {
	return f.usedCodes[code], nil
}

func (f *fakeStore) OverdueAttempts(_ context.Context, now time.Time) ([]models.Attempt, error) {
	var overdue []models.Attempt
	for _, att := range f.attempts {
		if att.Status == models.AttemptOngoing && att.EndDate.Before(now) {
			overdue = append(overdue, *att)
		}
	}
	return overdue, nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	store *fakeStore
	clock *fakeClock
	eng   *Engine
}

func newFixture() *fixture {
	store := newFakeStore()
	clock := &fakeClock{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	return &fixture{
		store: store,
		clock: clock,
		eng:   New(store, WithClock(clock.Now), WithRand(rand.New(rand.NewSource(42)))),
	}
}

func (fx *fixture) addCandidate() uuid.UUID {
	gender := "male"
	dob := time.Date(1995, 1, 20, 0, 0, 0, 0, time.UTC)
	city := "Jakarta"
	province := "DKI Jakarta"
	u := &models.User{
		ID:               uuid.New(),
		FullName:         "Budi Santoso",
		Role:             models.RoleJobhunter,
		Gender:           &gender,
		DateOfBirth:      &dob,
		City:             &city,
		Province:         &province,
		SubscriptionTier: models.TierFree,
	}
	fx.store.users[u.ID] = u
	return u.ID
}

func (fx *fixture) subscribe(candidateID uuid.UUID, tier string, starts int) {
	u := fx.store.users[candidateID]
	u.SubscriptionTier = tier
	ends := fx.clock.t.Add(30 * 24 * time.Hour)
	u.SubscriptionEndsAt = &ends
	u.AssessmentStartCount = starts
}

// addPreSelection seeds a job carrying a pre-selection test with a bank of
// size questions, all keyed "key".
func (fx *fixture) addPreSelection(duration, grade, size int) (jobID, testID uuid.UUID) {
	testID = uuid.New()
	fx.store.defs[testID] = &Definition{
		ID:              testID,
		Track:           models.TrackPreSelection,
		Name:            "Backend Screening",
		DurationMinutes: duration,
		PassingGrade:    grade,
		OwnerID:         uuid.New(),
	}
	fx.seedBank(testID, models.TrackPreSelection, size)
	job := &models.Job{ID: uuid.New(), CompanyID: uuid.New(), Title: "Backend Engineer", PreSelectionTestID: &testID}
	fx.store.jobs[job.ID] = job
	return job.ID, testID
}

func (fx *fixture) addAssessment(duration, grade, size int) uuid.UUID {
	id := uuid.New()
	fx.store.defs[id] = &Definition{
		ID:              id,
		Track:           models.TrackSkillAssessment,
		Name:            "Go Fundamentals",
		DurationMinutes: duration,
		PassingGrade:    grade,
		OwnerID:         uuid.New(),
	}
	fx.seedBank(id, models.TrackSkillAssessment, size)
	return id
}

func (fx *fixture) seedBank(testID uuid.UUID, track models.Track, size int) {
	bank := make([]models.Question, size)
	for i := range bank {
		bank[i] = models.Question{
			ID:            uuid.New(),
			TestID:        testID,
			Track:         track,
			Prompt:        "q",
			Answer1:       "key",
			Answer2:       "b",
			Answer3:       "c",
			Answer4:       "d",
			CorrectAnswer: "key",
		}
	}
	fx.questionsFor(testID, bank)
}

func (fx *fixture) questionsFor(testID uuid.UUID, bank []models.Question) {
	fx.store.questions[testID] = bank
}

// answersFor answers the first correct questions with the right key and the
// rest with a wrong choice.
func (fx *fixture) answersFor(testID uuid.UUID, correct int) []Answer {
	bank := fx.store.questions[testID]
	answers := make([]Answer, len(bank))
	for i, q := range bank {
		choice := "wrong"
		if i < correct {
			choice = "key"
		}
		answers[i] = Answer{QuestionID: q.ID, Choice: choice}
	}
	return answers
}

func TestStartPreSelection(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, _ := fx.addPreSelection(30, 85, 25)

	att, app, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	assert.Equal(t, models.AttemptOngoing, att.Status)
	assert.Equal(t, 0, att.Score)
	assert.Equal(t, fx.clock.t, att.StartedAt)
	assert.Equal(t, fx.clock.t.Add(30*time.Minute), att.EndDate)
	assert.Equal(t, models.ApplicationOnTest, app.Status)
	require.NotNil(t, att.ApplicationID)
	assert.Equal(t, app.ID, *att.ApplicationID)
}

func TestStartPreSelectionIncompleteProfile(t *testing.T) {
	fx := newFixture()
	u := &models.User{ID: uuid.New(), FullName: "Budi Santoso", Role: models.RoleJobhunter}
	fx.store.users[u.ID] = u
	jobID, _ := fx.addPreSelection(30, 85, 25)

	_, _, err := fx.eng.StartPreSelection(context.Background(), u.ID, jobID)
	var denial *DenialError
	require.ErrorAs(t, err, &denial)
	assert.Equal(t, DenyProfileIncomplete, denial.Reason)
	assert.NotEmpty(t, denial.MissingFields)
	assert.Empty(t, fx.store.attempts)
}

func TestStartPreSelectionWhileOngoing(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, _ := fx.addPreSelection(30, 85, 25)

	_, _, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	_, _, err = fx.eng.StartPreSelection(context.Background(), cand, jobID)
	var denial *DenialError
	require.ErrorAs(t, err, &denial)
	assert.Equal(t, DenyAttemptInProgress, denial.Reason)
}

func TestSubmitPreSelectionPass(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 75, 25)

	_, app, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	fx.clock.Advance(10 * time.Minute)
	res, err := fx.eng.SubmitPreSelection(context.Background(), cand, jobID, fx.answersFor(testID, 20))
	require.NoError(t, err)

	assert.Equal(t, 80, res.Score)
	assert.Equal(t, 25, res.TotalQuestions)
	assert.Equal(t, models.AttemptPass, res.Status)
	assert.Nil(t, res.Certificate, "pre-selection passes never mint certificates")
	assert.Equal(t, models.ApplicationWaitingSubmission, fx.store.apps[app.ID].Status)
}

func TestSubmitPreSelectionFailRejectsApplication(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 85, 25)

	_, app, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	res, err := fx.eng.SubmitPreSelection(context.Background(), cand, jobID, fx.answersFor(testID, 10))
	require.NoError(t, err)
	assert.Equal(t, 40, res.Score)
	assert.Equal(t, models.AttemptFailed, res.Status)
	assert.Equal(t, models.ApplicationRejected, fx.store.apps[app.ID].Status)
}

func TestPassBoundary(t *testing.T) {
	// grade 76 wants 19 correct for 76 points; 18 correct is 72 and fails
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 76, 25)

	_, _, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	res, err := fx.eng.SubmitPreSelection(context.Background(), cand, jobID, fx.answersFor(testID, 19))
	require.NoError(t, err)
	assert.Equal(t, 76, res.Score)
	assert.Equal(t, models.AttemptPass, res.Status)

	fx2 := newFixture()
	cand2 := fx2.addCandidate()
	jobID2, testID2 := fx2.addPreSelection(30, 76, 25)
	_, _, err = fx2.eng.StartPreSelection(context.Background(), cand2, jobID2)
	require.NoError(t, err)
	res, err = fx2.eng.SubmitPreSelection(context.Background(), cand2, jobID2, fx2.answersFor(testID2, 18))
	require.NoError(t, err)
	assert.Equal(t, 72, res.Score)
	assert.Equal(t, models.AttemptFailed, res.Status)
}

func TestSubmitUnknownQuestionRejectedWholesale(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 75, 25)

	att, _, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	answers := fx.answersFor(testID, 20)
	answers[3].QuestionID = uuid.New()

	_, err = fx.eng.SubmitPreSelection(context.Background(), cand, jobID, answers)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, models.AttemptOngoing, att.Status)
	assert.Equal(t, 0, att.Score)
}

func TestSubmitDuplicateAnswersRejected(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 85, 25)

	att, app, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	// Every question submitted once per option. Without the duplicate
	// check this would land a perfect score with zero knowledge.
	var answers []Answer
	for _, q := range fx.store.questions[testID] {
		for _, opt := range []string{q.Answer1, q.Answer2, q.Answer3, q.Answer4} {
			answers = append(answers, Answer{QuestionID: q.ID, Choice: opt})
		}
	}

	_, err = fx.eng.SubmitPreSelection(context.Background(), cand, jobID, answers)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, models.AttemptOngoing, att.Status)
	assert.Equal(t, 0, att.Score)
	assert.Equal(t, models.ApplicationOnTest, fx.store.apps[app.ID].Status)

	// The autosave path shares the validation.
	_, err = fx.eng.SavePreSelectionScore(context.Background(), cand, jobID, answers)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, att.Score)
}

func TestSubmitRepeatedCorrectAnswerScoresOnce(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 85, 1)

	_, _, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	q := fx.store.questions[testID][0]
	answers := []Answer{
		{QuestionID: q.ID, Choice: q.CorrectAnswer},
		{QuestionID: q.ID, Choice: q.CorrectAnswer},
		{QuestionID: q.ID, Choice: q.CorrectAnswer},
	}

	_, err = fx.eng.SubmitPreSelection(context.Background(), cand, jobID, answers)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	res, err := fx.eng.SubmitPreSelection(context.Background(), cand, jobID, answers[:1])
	require.NoError(t, err)
	assert.Equal(t, PointsPerQuestion, res.Score)
	assert.Equal(t, 1, res.TotalQuestions)
}

func TestSubmitAfterDeadline(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 75, 25)

	_, _, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	fx.clock.Advance(31 * time.Minute)
	_, err = fx.eng.SubmitPreSelection(context.Background(), cand, jobID, fx.answersFor(testID, 25))
	assert.ErrorIs(t, err, ErrExpiredWindow)
}

func TestResubmissionRejected(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 75, 25)

	_, _, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	_, err = fx.eng.SubmitPreSelection(context.Background(), cand, jobID, fx.answersFor(testID, 20))
	require.NoError(t, err)

	_, err = fx.eng.SubmitPreSelection(context.Background(), cand, jobID, fx.answersFor(testID, 25))
	assert.ErrorIs(t, err, ErrAttemptFinalized)
}

func TestCooldownAfterFailure(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 85, 25)

	_, _, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)
	_, err = fx.eng.SubmitPreSelection(context.Background(), cand, jobID, fx.answersFor(testID, 5))
	require.NoError(t, err)

	// two days after the attempt window closed
	fx.clock.Advance(30*time.Minute + 2*24*time.Hour)
	_, _, err = fx.eng.StartPreSelection(context.Background(), cand, jobID)
	var denial *DenialError
	require.ErrorAs(t, err, &denial)
	assert.Equal(t, DenyCooldownActive, denial.Reason)
	assert.Equal(t, 5, denial.DaysRemaining)

	fx.clock.Advance(5 * 24 * time.Hour)
	_, _, err = fx.eng.StartPreSelection(context.Background(), cand, jobID)
	assert.NoError(t, err)
}

func TestSavePreSelectionScoreKeepsOngoing(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 75, 25)

	att, _, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	score, err := fx.eng.SavePreSelectionScore(context.Background(), cand, jobID, fx.answersFor(testID, 7))
	require.NoError(t, err)
	assert.Equal(t, 28, score)
	assert.Equal(t, 28, att.Score)
	assert.Equal(t, models.AttemptOngoing, att.Status)

	// autosave deliberately skips the deadline check
	fx.clock.Advance(2 * time.Hour)
	_, err = fx.eng.SavePreSelectionScore(context.Background(), cand, jobID, fx.answersFor(testID, 9))
	assert.NoError(t, err)
}

func TestPreSelectionQuestionsRequireOnTest(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 75, 25)

	_, err := fx.eng.PreSelectionQuestions(context.Background(), cand, jobID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	set, err := fx.eng.PreSelectionQuestions(context.Background(), cand, jobID)
	require.NoError(t, err)
	assert.Equal(t, testID, set.TestID)
	assert.Equal(t, 30, set.DurationMinutes)
	assert.Len(t, set.Questions, 25)

	_, err = fx.eng.SubmitPreSelection(context.Background(), cand, jobID, fx.answersFor(testID, 20))
	require.NoError(t, err)
	_, err = fx.eng.PreSelectionQuestions(context.Background(), cand, jobID)
	assert.ErrorIs(t, err, ErrAttemptFinalized)
}

func TestPreSelectionWindow(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, _ := fx.addPreSelection(45, 75, 25)

	_, err := fx.eng.PreSelectionWindow(context.Background(), cand, jobID)
	assert.ErrorIs(t, err, ErrNotFound)

	att, _, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	win, err := fx.eng.PreSelectionWindow(context.Background(), cand, jobID)
	require.NoError(t, err)
	assert.Equal(t, att.StartedAt, win.StartedAt)
	assert.Equal(t, att.EndDate, win.EndDate)
	assert.Equal(t, 45*time.Minute, win.EndDate.Sub(win.StartedAt))
}

func TestStartAssessmentSubscriptionGate(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	assessmentID := fx.addAssessment(30, 75, 25)

	// free tier
	_, err := fx.eng.StartAssessment(context.Background(), cand, assessmentID)
	var denial *DenialError
	require.ErrorAs(t, err, &denial)
	assert.Equal(t, DenyUpgradeRequired, denial.Reason)

	// standard tier at its lifetime limit
	fx.subscribe(cand, models.TierStandard, 2)
	_, err = fx.eng.StartAssessment(context.Background(), cand, assessmentID)
	require.ErrorAs(t, err, &denial)
	assert.Equal(t, DenyUpgradeRequired, denial.Reason)
	assert.Equal(t, 2, fx.store.users[cand].AssessmentStartCount, "denied start must not consume quota")

	// under the limit the start counts against the quota
	fx.subscribe(cand, models.TierStandard, 1)
	att, err := fx.eng.StartAssessment(context.Background(), cand, assessmentID)
	require.NoError(t, err)
	assert.Equal(t, models.AttemptOngoing, att.Status)
	assert.Equal(t, 2, fx.store.users[cand].AssessmentStartCount)
}

func TestSubmitAssessmentPassMintsCertificate(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	fx.subscribe(cand, models.TierProfessional, 0)
	assessmentID := fx.addAssessment(30, 75, 25)

	att, err := fx.eng.StartAssessment(context.Background(), cand, assessmentID)
	require.NoError(t, err)

	res, err := fx.eng.SubmitAssessment(context.Background(), cand, assessmentID, fx.answersFor(assessmentID, 20))
	require.NoError(t, err)
	assert.Equal(t, 80, res.Score)
	assert.Equal(t, models.AttemptPass, res.Status)

	require.NotNil(t, res.Certificate)
	assert.Regexp(t, `^[A-Z]{3}[0-9]{3}$`, res.Certificate.Code)
	assert.Equal(t, CertificateIssuer, res.Certificate.Issuer)
	assert.Equal(t, att.ID, res.Certificate.AttemptID)
	assert.Equal(t, cand, res.Certificate.CandidateID)
	assert.Len(t, fx.store.certs, 1)
}

func TestSubmitAssessmentFailMintsNothing(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	fx.subscribe(cand, models.TierProfessional, 0)
	assessmentID := fx.addAssessment(30, 75, 25)

	_, err := fx.eng.StartAssessment(context.Background(), cand, assessmentID)
	require.NoError(t, err)

	res, err := fx.eng.SubmitAssessment(context.Background(), cand, assessmentID, fx.answersFor(assessmentID, 10))
	require.NoError(t, err)
	assert.Equal(t, models.AttemptFailed, res.Status)
	assert.Nil(t, res.Certificate)
	assert.Empty(t, fx.store.certs)
}

func TestAssessmentQuestionsScopedToCandidate(t *testing.T) {
	fx := newFixture()
	first := fx.addCandidate()
	second := fx.addCandidate()
	fx.subscribe(first, models.TierProfessional, 0)
	assessmentID := fx.addAssessment(30, 75, 25)

	_, err := fx.eng.StartAssessment(context.Background(), first, assessmentID)
	require.NoError(t, err)

	// another candidate's ongoing attempt must not open the bank
	_, err = fx.eng.AssessmentQuestions(context.Background(), second, assessmentID)
	assert.ErrorIs(t, err, ErrNotFound)

	set, err := fx.eng.AssessmentQuestions(context.Background(), first, assessmentID)
	require.NoError(t, err)
	assert.Len(t, set.Questions, 25)
}

func TestExpireOverdueAttempts(t *testing.T) {
	fx := newFixture()
	cand := fx.addCandidate()
	jobID, testID := fx.addPreSelection(30, 75, 25)

	att, app, err := fx.eng.StartPreSelection(context.Background(), cand, jobID)
	require.NoError(t, err)

	_, err = fx.eng.SavePreSelectionScore(context.Background(), cand, jobID, fx.answersFor(testID, 6))
	require.NoError(t, err)

	// nothing due yet
	expired, err := fx.eng.ExpireOverdueAttempts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, expired)

	fx.clock.Advance(31 * time.Minute)
	expired, err = fx.eng.ExpireOverdueAttempts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, models.AttemptFailed, att.Status)
	assert.Equal(t, 24, att.Score, "sweep keeps the last autosaved score")
	assert.Equal(t, models.ApplicationRejected, fx.store.apps[app.ID].Status)

	// idempotent on a second pass
	expired, err = fx.eng.ExpireOverdueAttempts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, expired)
}
