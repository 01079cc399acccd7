package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAdminStats handles GET /api/admin/stats
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Stats(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, true)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, false)
}

func (s *Server) setUserBanned(c *fiber.Ctx, banned bool) error {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.adminService.SetBanned(c.Context(), targetID, banned); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"user_id":   targetID,
		"is_banned": banned,
	})
}

// SetSkillApproval handles PUT /api/admin/skills/:id/approval
func (s *Server) SetSkillApproval(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	skillID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Approved *bool `json:"approved"`
	}
	if err := c.BodyParser(&req); err != nil || req.Approved == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Approved flag is required"))
	}

	if err := s.skillService.SetApproval(c.Context(), userID, skillID, *req.Approved); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"skill_id":    skillID,
		"is_approved": *req.Approved,
	})
}

// CreateAnnouncement handles POST /api/admin/announcements
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	announcement, err := s.adminService.Broadcast(c.Context(), req.Title, req.Message)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(announcement)
}
