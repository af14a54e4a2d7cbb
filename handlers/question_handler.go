package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prasaja/job_portal/database"
	"github.com/prasaja/job_portal/engine"
	"github.com/prasaja/job_portal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateQuestionsRequest struct {
	Questions []engine.QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

type UpdateQuestionItem struct {
	ID uuid.UUID `json:"id" validate:"required"`
	engine.QuestionInput
}

type UpdateQuestionsRequest struct {
	Questions []UpdateQuestionItem `json:"questions" validate:"required,min=1,dive"`
}

// addQuestions appends a validated batch to a test's bank. The cap and the
// answer-key invariant are checked up front so either every record lands or
// none does.
func addQuestions(c *fiber.Ctx, track models.Track, testID uuid.UUID) error {
	var req CreateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	questions := make([]models.Question, len(req.Questions))
	for i, in := range req.Questions {
		questions[i] = models.Question{
			TestID:        testID,
			Track:         track,
			Prompt:        in.Prompt,
			Answer1:       in.Answer1,
			Answer2:       in.Answer2,
			Answer3:       in.Answer3,
			Answer4:       in.Answer4,
			CorrectAnswer: in.CorrectAnswer,
		}
	}

	// Count and insert share one transaction, with the parent definition row
	// locked so concurrent batches against the same bank cannot jointly
	// overflow the cap.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id")
		if track == models.TrackPreSelection {
			var parent models.PreSelectionTest
			if err := locked.First(&parent, "id = ?", testID).Error; err != nil {
				return err
			}
		} else {
			var parent models.SkillAssessment
			if err := locked.First(&parent, "id = ?", testID).Error; err != nil {
				return err
			}
		}

		var existing int64
		if err := tx.Model(&models.Question{}).
			Where("test_id = ? AND track = ?", testID, track).
			Count(&existing).Error; err != nil {
			return err
		}
		if err := engine.ValidateQuestionBatch(int(existing), req.Questions); err != nil {
			return err
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		var vErr *engine.ValidationError
		if errors.As(err, &vErr) {
			return renderEngineError(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create questions"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"created": len(questions)})
}

// updateQuestions rewrites existing bank entries in one transaction. Any bad
// record, or one belonging to another test, rejects the whole batch.
func updateQuestions(c *fiber.Ctx, track models.Track, testID uuid.UUID) error {
	var req UpdateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	for _, item := range req.Questions {
		if err := item.Validate(); err != nil {
			return renderEngineError(c, err)
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Questions {
			res := tx.Model(&models.Question{}).
				Where("id = ? AND test_id = ? AND track = ?", item.ID, testID, track).
				Updates(map[string]interface{}{
					"prompt":         item.Prompt,
					"answer_1":       item.Answer1,
					"answer_2":       item.Answer2,
					"answer_3":       item.Answer3,
					"answer_4":       item.Answer4,
					"correct_answer": item.CorrectAnswer,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return engine.ErrNotFound
			}
		}
		return nil
	})
	if err != nil {
		if err == engine.ErrNotFound {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "One or more questions do not belong to this test"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update questions"})
	}
	return c.JSON(fiber.Map{"updated": len(req.Questions)})
}
