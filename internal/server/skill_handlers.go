package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMySkills handles GET /api/skills
func (s *Server) GetMySkills(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	skills, err := s.skillService.ListSkills(ctx, userID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(skills)
}

// AddSkill handles POST /api/skills
func (s *Server) AddSkill(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.AddSkill(ctx, userID, req.Name, models.SkillType(req.Type), req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}
