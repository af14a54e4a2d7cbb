package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prasaja/job_portal/database"
	"github.com/prasaja/job_portal/engine"
	"github.com/prasaja/job_portal/models"
	"github.com/prasaja/job_portal/notifications"
	"gorm.io/gorm"
)

type PreSelectionTestRequest struct {
	Name            string `json:"name" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gt=0"`
	PassingGrade    int    `json:"passing_grade" validate:"omitempty,gt=0"`
}

func CreatePreSelectionTest(c *fiber.Ctx) error {
	companyID := currentUserID(c)

	var req PreSelectionTestRequest
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
		req.PassingGrade = engine.DefaultPreSelectionPassingGrade
	}

	var count int64
	database.DB.Model(&models.PreSelectionTest{}).
		Where("company_id = ? AND name = ? AND deleted = false", companyID, req.Name).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A test with this name already exists"})
	}

	test := models.PreSelectionTest{
		CompanyID:       companyID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		PassingGrade:    req.PassingGrade,
	}
	if err := database.DB.Create(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A test with this name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create test"})
	}
	return c.Status(fiber.StatusCreated).JSON(test)
}

func ListPreSelectionTests(c *fiber.Ctx) error {
	var tests []models.PreSelectionTest
	database.DB.Where("company_id = ? AND deleted = false", currentUserID(c)).Find(&tests)
	return c.JSON(tests)
}

func GetPreSelectionTest(c *fiber.Ctx) error {
	testID := c.Params("testId")

	var test models.PreSelectionTest
	if err := database.DB.First(&test, "id = ? AND deleted = false", testID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}
	if test.CompanyID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to access this test"})
	}

	var questions []models.Question
	database.DB.Where("test_id = ? AND track = ?", test.ID, models.TrackPreSelection).
		Order("created_at").Find(&questions)

	return c.JSON(fiber.Map{"test": test, "questions": questions})
}

func UpdatePreSelectionTest(c *fiber.Ctx) error {
	testID := c.Params("testId")

	var test models.PreSelectionTest
	if err := database.DB.First(&test, "id = ? AND deleted = false", testID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}
	if test.CompanyID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to access this test"})
	}

	var req PreSelectionTestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	database.DB.Model(&models.PreSelectionTest{}).
		Where("company_id = ? AND name = ? AND deleted = false AND id <> ?", test.CompanyID, req.Name, test.ID).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A test with this name already exists"})
	}

	test.Name = req.Name
	if req.DurationMinutes > 0 {
		test.DurationMinutes = req.DurationMinutes
	}
	if req.PassingGrade > 0 {
		test.PassingGrade = req.PassingGrade
	}
	if err := database.DB.Save(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A test with this name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update test"})
	}
	return c.JSON(test)
}

// DeletePreSelectionTest soft-deletes, refused while any application on a job
// using this test is still moving through the pipeline.
func DeletePreSelectionTest(c *fiber.Ctx) error {
	testID := c.Params("testId")

	var test models.PreSelectionTest
	if err := database.DB.First(&test, "id = ? AND deleted = false", testID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}
	if test.CompanyID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to access this test"})
	}

	var active int64
	database.DB.Model(&models.Application{}).
		Joins("JOIN jobs ON applications.job_id = jobs.id").
		Where("jobs.pre_selection_test_id = ? AND applications.status NOT IN ?",
			test.ID, []string{models.ApplicationRejected, models.ApplicationFailed}).
		Count(&active)
	if active > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Test still has applicants in progress"})
	}

	if err := database.DB.Model(&test).Update("deleted", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete test"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func AddPreSelectionQuestions(c *fiber.Ctx) error {
	testID := c.Params("testId")

	var test models.PreSelectionTest
	if err := database.DB.First(&test, "id = ? AND deleted = false", testID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}
	if test.CompanyID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to access this test"})
	}
	return addQuestions(c, models.TrackPreSelection, test.ID)
}

func UpdatePreSelectionQuestions(c *fiber.Ctx) error {
	testID := c.Params("testId")

	var test models.PreSelectionTest
	if err := database.DB.First(&test, "id = ? AND deleted = false", testID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}
	if test.CompanyID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to access this test"})
	}
	return updateQuestions(c, models.TrackPreSelection, test.ID)
}

type JobRequest struct {
	Title              string     `json:"title" validate:"required"`
	PreSelectionTestID *uuid.UUID `json:"pre_selection_test_id"`
}

// CreateJob is the minimal posting surface an existing test attaches to.
func CreateJob(c *fiber.Ctx) error {
	companyID := currentUserID(c)

	var req JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.PreSelectionTestID != nil {
		var test models.PreSelectionTest
		if err := database.DB.First(&test, "id = ? AND deleted = false", *req.PreSelectionTestID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Pre-selection test not found"})
		}
		if test.CompanyID != companyID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to use this test"})
		}
	}

	job := models.Job{
		CompanyID:          companyID,
		Title:              req.Title,
		PreSelectionTestID: req.PreSelectionTestID,
	}
	if err := database.DB.Create(&job).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create job"})
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

type SubmitAnswersRequest struct {
	Answers []engine.Answer `json:"answers" validate:"required,min=1,dive"`
}

func JoinPreSelectionTest(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	attempt, application, err := core.StartPreSelection(c.Context(), currentUserID(c), jobID)
	if err != nil {
		return renderEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"attempt":     attempt,
		"application": application,
	})
}

func GetPreSelectionQuestions(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	set, err := core.PreSelectionQuestions(c.Context(), currentUserID(c), jobID)
	if err != nil {
		return renderEngineError(c, err)
	}
	return c.JSON(set)
}

func GetPreSelectionWindow(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	window, err := core.PreSelectionWindow(c.Context(), currentUserID(c), jobID)
	if err != nil {
		return renderEngineError(c, err)
	}
	return c.JSON(window)
}

func SubmitPreSelectionTest(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	var req SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	candidateID := currentUserID(c)
	result, err := core.SubmitPreSelection(c.Context(), candidateID, jobID, req.Answers)
	if err != nil {
		return renderEngineError(c, err)
	}

	go notifyPreSelectionResult(candidateID, jobID, result)

	return c.JSON(result)
}

func notifyPreSelectionResult(candidateID, jobID uuid.UUID, result *engine.SubmitResult) {
	var candidate models.User
	if err := database.DB.First(&candidate, "id = ?", candidateID).Error; err != nil {
		return
	}
	var job models.Job
	if err := database.DB.Preload("PreSelectionTest").First(&job, "id = ?", jobID).Error; err != nil {
		return
	}
	testName := job.Title
	if job.PreSelectionTest != nil {
		testName = job.PreSelectionTest.Name
	}
	notifications.SendAttemptResult(candidate.FullName, candidate.Email, testName,
		result.Score, result.Status == models.AttemptPass)
}

func SavePreSelectionScore(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	var req SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	score, err := core.SavePreSelectionScore(c.Context(), currentUserID(c), jobID, req.Answers)
	if err != nil {
		return renderEngineError(c, err)
	}
	return c.JSON(fiber.Map{"score": score})
}
