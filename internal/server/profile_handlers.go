package server

import (
	"parley/internal/models"
	"parley/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfile handles PUT /api/users/me. All three fields are optional;
// pointer fields distinguish "not provided" from an explicit empty string.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		ProfilePic *string `json:"profilePic"`
		About      *string `json:"about"`
		FullName   *string `json:"fullName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:     userID,
		ProfilePic: req.ProfilePic,
		About:      req.About,
		FullName:   req.FullName,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// The password hash is excluded by serialization, so returning the
	// full record leaks nothing.
	return c.JSON(user)
}
