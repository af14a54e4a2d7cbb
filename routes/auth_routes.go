package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prasaja/job_portal/handlers"
	"github.com/prasaja/job_portal/middleware"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)

	profile := app.Group("/api/v1/profile", middleware.Protected())

	profile.Get("/", handlers.GetProfile)
	profile.Put("/", handlers.UpdateProfile)
}
