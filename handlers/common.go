package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/prasaja/job_portal/engine"
)

var core *engine.Engine

// Init wires the attempt engine the candidate-facing handlers delegate to.
func Init(e *engine.Engine) {
	core = e
}

// currentUserID reads the user_id claim. The Protected middleware has
// already rejected tokens whose claim is not a well-formed uuid.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

// renderEngineError maps the engine's error taxonomy onto HTTP responses.
// Denials carry their structured detail so clients can render them.
func renderEngineError(c *fiber.Ctx, err error) error {
	var denial *engine.DenialError
	if errors.As(err, &denial) {
		resp := fiber.Map{"error": denial.Reason}
		if len(denial.MissingFields) > 0 {
			resp["missing_fields"] = denial.MissingFields
		}
		if denial.DaysRemaining > 0 {
			resp["days_remaining"] = denial.DaysRemaining
		}
		return c.Status(fiber.StatusForbidden).JSON(resp)
	}

	var vErr *engine.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Reason})
	}

	switch {
	case errors.Is(err, engine.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, engine.ErrExpiredWindow):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Submission window has expired"})
	case errors.Is(err, engine.ErrAttemptFinalized):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Attempt has already been finalized"})
	}

	log.Printf("🔥 Unexpected engine error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
