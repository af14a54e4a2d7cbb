package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prasaja/job_portal/handlers"
	"github.com/prasaja/job_portal/middleware"
)

func AssessmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	developer := api.Group("/developer/assessments", middleware.Protected(), middleware.DeveloperRequired())
	developer.Post("", handlers.CreateSkillAssessment)
	developer.Get("", handlers.ListSkillAssessments)
	developer.Put("/:assessmentId", handlers.UpdateSkillAssessment)
	developer.Delete("/:assessmentId", handlers.DeleteSkillAssessment)
	developer.Post("/:assessmentId/questions", handlers.AddAssessmentQuestions)
	developer.Put("/:assessmentId/questions", handlers.UpdateAssessmentQuestions)

	candidate := api.Group("/assessments", middleware.Protected(), middleware.JobhunterRequired())
	candidate.Get("", handlers.ListAvailableAssessments)
	candidate.Post("/:assessmentId/start", handlers.StartSkillAssessment)
	candidate.Get("/:assessmentId/questions", handlers.GetAssessmentQuestions)
	candidate.Get("/:assessmentId/window", handlers.GetAssessmentWindow)
	candidate.Post("/:assessmentId/submit", handlers.SubmitSkillAssessment)
	candidate.Patch("/:assessmentId/score", handlers.SaveAssessmentScore)

	api.Get("/certificates", middleware.Protected(), middleware.JobhunterRequired(), handlers.ListMyCertificates)
}
