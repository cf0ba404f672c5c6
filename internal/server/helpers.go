package server

import (
	"errors"

	"parley/internal/models"

	"github.com/gofiber/fiber/v2"
)

// mapServiceError translates an AppError from the service or repository
// layer into the HTTP status the external contract documents. Auth and
// conflict failures on these endpoints are 400s, not 401/409.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case "VALIDATION_ERROR", "CONFLICT", "UNAUTHORIZED":
		return fiber.StatusBadRequest
	default:
		// A missing row behind a valid session is a store surprise like any
		// other; the endpoints answer 400 or 500, never 404.
		return fiber.StatusInternalServerError
	}
}
