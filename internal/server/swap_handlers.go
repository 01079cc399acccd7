package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var in service.CreateSwapInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapService.CreateSwap(ctx, userID, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetIncomingSwaps handles GET /api/swaps/incoming
func (s *Server) GetIncomingSwaps(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	swaps, err := s.swapService.IncomingRequests(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swaps)
}

// GetSentSwaps handles GET /api/swaps/sent
func (s *Server) GetSentSwaps(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	swaps, err := s.swapService.SentRequests(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swaps)
}

// AcceptSwap handles POST /api/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	return s.actOnSwap(c, models.SwapActionAccept)
}

// RejectSwap handles POST /api/swaps/:id/reject
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	return s.actOnSwap(c, models.SwapActionReject)
}

func (s *Server) actOnSwap(c *fiber.Ctx, action models.SwapAction) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	swapID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	swap, err := s.swapService.Act(ctx, swapID, userID, action)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swap)
}

// CompleteSwap handles POST /api/swaps/:id/complete
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	swapID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	swap, err := s.swapService.Complete(ctx, swapID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swap)
}

// CancelSwap handles DELETE /api/swaps/:id
func (s *Server) CancelSwap(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	swapID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.swapService.Cancel(ctx, swapID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitRating handles POST /api/swaps/:id/ratings
func (s *Server) SubmitRating(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	swapID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		RatedID  uint   `json:"rated_id"`
		Score    int    `json:"score"`
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.ratingService.SubmitRating(ctx, swapID, userID, req.RatedID, req.Score, req.Feedback)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}
