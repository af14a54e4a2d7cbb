package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/prasaja/job_portal/models"
)

// PointsPerQuestion is awarded for each bank question answered with its exact
// key, so a full 25-question bank scores at most 100.
const PointsPerQuestion = 4

type Answer struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	Choice     string    `json:"chosen_answer" validate:"required"`
}

// ValidateAnswers rejects the whole answer set if any entry references a
// question outside the given bank, or answers the same question more than
// once.
func ValidateAnswers(bank []models.Question, answers []Answer) error {
	known := make(map[uuid.UUID]struct{}, len(bank))
	for _, q := range bank {
		known[q.ID] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(answers))
	for _, a := range answers {
		if _, ok := known[a.QuestionID]; !ok {
			return &ValidationError{Reason: fmt.Sprintf("question %s does not belong to this test", a.QuestionID)}
		}
		if _, dup := seen[a.QuestionID]; dup {
			return &ValidationError{Reason: fmt.Sprintf("question %s was answered more than once", a.QuestionID)}
		}
		seen[a.QuestionID] = struct{}{}
	}
	return nil
}

// Score awards PointsPerQuestion for every bank question whose submitted
// choice exactly matches the answer key. Matching is case sensitive;
// unanswered questions score zero. Points accrue per question, never per
// submitted entry, so repeating a question cannot inflate the score. The
// bank size is returned alongside so callers can report the maximum
// reachable score.
func Score(bank []models.Question, answers []Answer) (points, totalQuestions int) {
	chosen := make(map[uuid.UUID]string, len(answers))
	for _, a := range answers {
		chosen[a.QuestionID] = a.Choice
	}
	for _, q := range bank {
		if choice, ok := chosen[q.ID]; ok && choice == q.CorrectAnswer {
			points += PointsPerQuestion
		}
	}
	return points, len(bank)
}
