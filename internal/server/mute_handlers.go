package server

import (
	"parley/internal/models"

	"github.com/gofiber/fiber/v2"
)

type muteRequest struct {
	ConversationUserID uint `json:"conversationUserId"`
}

type muteResponse struct {
	Success            bool   `json:"success"`
	MutedConversations []uint `json:"mutedConversations"`
}

// MuteConversation handles POST /api/users/me/mutes. Muting an already
// muted conversation is a no-op that still returns the current set.
func (s *Server) MuteConversation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req muteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ConversationUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("conversationUserId is required"))
	}

	muted, err := s.userService.MuteConversation(c.Context(), userID, req.ConversationUserID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(muteResponse{Success: true, MutedConversations: muted})
}

// UnmuteConversation handles DELETE /api/users/me/mutes. Unmuting a
// conversation that was never muted succeeds and returns the current set.
func (s *Server) UnmuteConversation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req muteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ConversationUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("conversationUserId is required"))
	}

	muted, err := s.userService.UnmuteConversation(c.Context(), userID, req.ConversationUserID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(muteResponse{Success: true, MutedConversations: muted})
}
