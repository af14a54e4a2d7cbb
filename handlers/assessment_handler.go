package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prasaja/job_portal/database"
	"github.com/prasaja/job_portal/engine"
	"github.com/prasaja/job_portal/models"
	"github.com/prasaja/job_portal/notifications"
	"github.com/prasaja/job_portal/services"
	"gorm.io/gorm"
)

type SkillAssessmentRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	Badge           string `json:"badge"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gt=0"`
	PassingGrade    int    `json:"passing_grade" validate:"omitempty,gt=0"`
}

func CreateSkillAssessment(c *fiber.Ctx) error {
	developerID := currentUserID(c)

	var req SkillAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = engine.DefaultDurationMinutes
	}
	if req.PassingGrade == 0 {
		req.PassingGrade = engine.DefaultAssessmentPassingGrade
	}

	var count int64
	database.DB.Model(&models.SkillAssessment{}).
		Where("developer_id = ? AND name = ? AND deleted = false", developerID, req.Name).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An assessment with this name already exists"})
	}

	assessment := models.SkillAssessment{
		DeveloperID:     developerID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PassingGrade:    req.PassingGrade,
	}
	if req.Badge != "" {
		badgeURL, err := services.UploadBadge(req.Badge)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to process badge image"})
		}
		assessment.BadgeURL = &badgeURL
	}

	if err := database.DB.Create(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An assessment with this name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assessment"})
	}
	return c.Status(fiber.StatusCreated).JSON(assessment)
}

func ListSkillAssessments(c *fiber.Ctx) error {
	var assessments []models.SkillAssessment
	database.DB.Where("developer_id = ? AND deleted = false", currentUserID(c)).Find(&assessments)
	return c.JSON(assessments)
}

func UpdateSkillAssessment(c *fiber.Ctx) error {
	assessmentID := c.Params("assessmentId")

	var assessment models.SkillAssessment
	if err := database.DB.First(&assessment, "id = ? AND deleted = false", assessmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assessment not found"})
	}
	if assessment.DeveloperID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to access this assessment"})
	}

	var req SkillAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	database.DB.Model(&models.SkillAssessment{}).
		Where("developer_id = ? AND name = ? AND deleted = false AND id <> ?",
			assessment.DeveloperID, req.Name, assessment.ID).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An assessment with this name already exists"})
	}

	assessment.Name = req.Name
	assessment.Description = req.Description
	if req.DurationMinutes > 0 {
		assessment.DurationMinutes = req.DurationMinutes
	}
	if req.PassingGrade > 0 {
		assessment.PassingGrade = req.PassingGrade
	}
	if req.Badge != "" {
		badgeURL, err := services.UploadBadge(req.Badge)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to process badge image"})
		}
		assessment.BadgeURL = &badgeURL
	}

	if err := database.DB.Save(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An assessment with this name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update assessment"})
	}
	return c.JSON(assessment)
}

// DeleteSkillAssessment soft-deletes, refused while any attempt is still in
// flight.
func DeleteSkillAssessment(c *fiber.Ctx) error {
	assessmentID := c.Params("assessmentId")

	var assessment models.SkillAssessment
	if err := database.DB.First(&assessment, "id = ? AND deleted = false", assessmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assessment not found"})
	}
	if assessment.DeveloperID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to access this assessment"})
	}

	var ongoing int64
	database.DB.Model(&models.Attempt{}).
		Where("test_id = ? AND track = ? AND status = ?",
			assessment.ID, models.TrackSkillAssessment, models.AttemptOngoing).
		Count(&ongoing)
	if ongoing > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Assessment still has attempts in progress"})
	}

	if err := database.DB.Model(&assessment).Update("deleted", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete assessment"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func AddAssessmentQuestions(c *fiber.Ctx) error {
	assessmentID := c.Params("assessmentId")

	var assessment models.SkillAssessment
	if err := database.DB.First(&assessment, "id = ? AND deleted = false", assessmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assessment not found"})
	}
	if assessment.DeveloperID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to access this assessment"})
	}
	return addQuestions(c, models.TrackSkillAssessment, assessment.ID)
}

func UpdateAssessmentQuestions(c *fiber.Ctx) error {
	assessmentID := c.Params("assessmentId")

	var assessment models.SkillAssessment
	if err := database.DB.First(&assessment, "id = ? AND deleted = false", assessmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assessment not found"})
	}
	if assessment.DeveloperID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to access this assessment"})
	}
	return updateQuestions(c, models.TrackSkillAssessment, assessment.ID)
}

// ListAvailableAssessments is the candidate-facing catalogue.
func ListAvailableAssessments(c *fiber.Ctx) error {
	var assessments []models.SkillAssessment
	database.DB.Select("id", "name", "description", "badge_url", "duration_minutes", "passing_grade", "created_at").
		Where("deleted = false").Find(&assessments)
	return c.JSON(assessments)
}

func StartSkillAssessment(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("assessmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assessment id"})
	}

	attempt, err := core.StartAssessment(c.Context(), currentUserID(c), assessmentID)
	if err != nil {
		return renderEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(attempt)
}

func GetAssessmentQuestions(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("assessmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assessment id"})
	}

	set, err := core.AssessmentQuestions(c.Context(), currentUserID(c), assessmentID)
	if err != nil {
		return renderEngineError(c, err)
	}
	return c.JSON(set)
}

func GetAssessmentWindow(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("assessmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assessment id"})
	}

	window, err := core.AssessmentWindow(c.Context(), currentUserID(c), assessmentID)
	if err != nil {
		return renderEngineError(c, err)
	}
	return c.JSON(window)
}

func SubmitSkillAssessment(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("assessmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assessment id"})
	}

	var req SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	candidateID := currentUserID(c)
	result, err := core.SubmitAssessment(c.Context(), candidateID, assessmentID, req.Answers)
	if err != nil {
		return renderEngineError(c, err)
	}

	go notifyAssessmentResult(candidateID, assessmentID, result)

	return c.JSON(result)
}

func notifyAssessmentResult(candidateID, assessmentID uuid.UUID, result *engine.SubmitResult) {
	var candidate models.User
	if err := database.DB.First(&candidate, "id = ?", candidateID).Error; err != nil {
		return
	}
	var assessment models.SkillAssessment
	if err := database.DB.First(&assessment, "id = ?", assessmentID).Error; err != nil {
		return
	}

	notifications.SendAttemptResult(candidate.FullName, candidate.Email, assessment.Name,
		result.Score, result.Status == models.AttemptPass)

	if result.Certificate != nil {
		notifications.SendCertificateIssued(candidate.FullName, candidate.Email, assessment.Name, result.Certificate.Code)
		services.RenderCertificateDocument(*result.Certificate, candidate.FullName, assessment.Name)
	}
}

func SaveAssessmentScore(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("assessmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assessment id"})
	}

	var req SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	score, err := core.SaveAssessmentScore(c.Context(), currentUserID(c), assessmentID, req.Answers)
	if err != nil {
		return renderEngineError(c, err)
	}
	return c.JSON(fiber.Map{"score": score})
}

func ListMyCertificates(c *fiber.Ctx) error {
	var certificates []models.Certificate
	database.DB.Where("candidate_id = ?", currentUserID(c)).
		Order("issued_at DESC").Find(&certificates)
	return c.JSON(certificates)
}
