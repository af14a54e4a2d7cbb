package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prasaja/job_portal/database"
	"github.com/prasaja/job_portal/models"
)

type UpdateProfileRequest struct {
	FullName    *string    `json:"full_name"`
	Gender      *string    `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	City        *string    `json:"city"`
	Province    *string    `json:"province"`
	ResumeURL   *string    `json:"resume_url"`
}

func GetProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.Where("id = ?", currentUserID(c)).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"user":                   user,
		"missing_profile_fields": user.MissingProfileFields(),
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.Where("id = ?", currentUserID(c)).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.City != nil {
		user.City = req.City
	}
	if req.Province != nil {
		user.Province = req.Province
	}
	if req.ResumeURL != nil {
		user.ResumeURL = req.ResumeURL
	}

	database.DB.Save(&user)

	return c.JSON(user)
}
