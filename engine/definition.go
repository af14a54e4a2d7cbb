package engine

import "fmt"

// MaxBankSize caps every question bank. A bank must stay at or below the cap
// at all times; batched additions that would overflow are rejected in full.
const MaxBankSize = 25

const (
	DefaultDurationMinutes          = 30
	DefaultPreSelectionPassingGrade = 85
	DefaultAssessmentPassingGrade   = 75
)

type QuestionInput struct {
	Prompt        string `json:"question" validate:"required"`
	Answer1       string `json:"answer_1" validate:"required"`
	Answer2       string `json:"answer_2" validate:"required"`
	Answer3       string `json:"answer_3" validate:"required"`
	Answer4       string `json:"answer_4" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
}

// Validate enforces the answer-key invariant: the designated correct answer
// must be one of the four listed options.
func (in QuestionInput) Validate() error {
	switch in.CorrectAnswer {
	case in.Answer1, in.Answer2, in.Answer3, in.Answer4:
		return nil
	}
	return &ValidationError{Reason: fmt.Sprintf("correct answer %q is not among the four options", in.CorrectAnswer)}
}

// ValidateQuestionBatch checks every record of a batch and the bank cap.
// Any failure rejects the batch as a whole so a partial bank is never written.
func ValidateQuestionBatch(existing int, batch []QuestionInput) error {
	if len(batch) == 0 {
		return &ValidationError{Reason: "question batch is empty"}
	}
	if existing+len(batch) > MaxBankSize {
		return &ValidationError{
			Reason: fmt.Sprintf("question bank is capped at %d: %d existing, %d submitted", MaxBankSize, existing, len(batch)),
		}
	}
	for i, in := range batch {
		if err := in.Validate(); err != nil {
			return &ValidationError{Reason: fmt.Sprintf("question %d: %v", i+1, err)}
		}
	}
	return nil
}
