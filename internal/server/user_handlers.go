package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	stats, err := s.userRepo.Stats(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	avg, count, err := s.ratingService.ReputationFor(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":           user,
		"stats":          stats,
		"average_rating": avg,
		"rating_count":   count,
	})
}

// UpdateMyProfile handles PUT /api/users/me. Only profile presentation
// fields are updatable; credentials and flags are not.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		FullName     *string `json:"full_name"`
		Location     *string `json:"location"`
		ProfilePhoto *string `json:"profile_photo"`
		Availability *string `json:"availability"`
		IsPublic     *bool   `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if req.FullName != nil {
		if *req.FullName == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Full name cannot be empty"))
		}
		user.FullName = *req.FullName
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.ProfilePhoto != nil {
		user.ProfilePhoto = *req.ProfilePhoto
	}
	if req.Availability != nil {
		user.Availability = *req.Availability
	}
	if req.IsPublic != nil {
		user.IsPublic = *req.IsPublic
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetUserSkills handles GET /api/users/:id/skills. Viewers other than the
// owner only see approved skills.
func (s *Server) GetUserSkills(c *fiber.Ctx) error {
	ctx := c.Context()
	viewerID := c.Locals("userID").(uint)

	ownerID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	skills, err := s.skillService.ListSkills(ctx, ownerID, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(skills)
}

// GetUserRatings handles GET /api/users/:id/ratings
func (s *Server) GetUserRatings(c *fiber.Ctx) error {
	ctx := c.Context()

	userID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	ratings, err := s.ratingService.RatingsFor(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	avg, count, err := s.ratingService.ReputationFor(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ratings":        ratings,
		"average_rating": avg,
		"rating_count":   count,
	})
}

// GetDirectory handles GET /api/directory. The optional skill query narrows
// results to providers offering a matching approved skill. The caller never
// appears in their own directory listing.
func (s *Server) GetDirectory(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	entries, err := s.directoryRepo.ListPublicProviders(ctx, userID, c.Query("skill"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entries)
}

// GetAnnouncements handles GET /api/announcements
func (s *Server) GetAnnouncements(c *fiber.Ctx) error {
	announcements, err := s.adminService.Announcements(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(announcements)
}
