package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prasaja/job_portal/handlers"
	"github.com/prasaja/job_portal/middleware"
)

func PreSelectionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	company := api.Group("/company", middleware.Protected(), middleware.CompanyRequired())

	tests := company.Group("/pre-selection-tests")
	tests.Post("", handlers.CreatePreSelectionTest)
	tests.Get("", handlers.ListPreSelectionTests)
	tests.Get("/:testId", handlers.GetPreSelectionTest)
	tests.Put("/:testId", handlers.UpdatePreSelectionTest)
	tests.Delete("/:testId", handlers.DeletePreSelectionTest)
	tests.Post("/:testId/questions", handlers.AddPreSelectionQuestions)
	tests.Put("/:testId/questions", handlers.UpdatePreSelectionQuestions)

	company.Post("/jobs", handlers.CreateJob)

	candidate := api.Group("/jobs", middleware.Protected(), middleware.JobhunterRequired())
	candidate.Post("/:jobId/pre-selection/start", handlers.JoinPreSelectionTest)
	candidate.Get("/:jobId/pre-selection/questions", handlers.GetPreSelectionQuestions)
	candidate.Get("/:jobId/pre-selection/window", handlers.GetPreSelectionWindow)
	candidate.Post("/:jobId/pre-selection/submit", handlers.SubmitPreSelectionTest)
	candidate.Patch("/:jobId/pre-selection/score", handlers.SavePreSelectionScore)
}
