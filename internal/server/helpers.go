package server

import (
	"errors"

	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam reads a positive numeric route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid " + name + " parameter")
	}
	return uint(id), nil
}

// respondServiceError maps a service-layer error to an HTTP response. The
// service layer already classified the failure, so the handler only has to
// pick the status code for the class.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case "VALIDATION_ERROR":
		status = fiber.StatusBadRequest
	case "NOT_FOUND":
		status = fiber.StatusNotFound
	case "CONFLICT":
		status = fiber.StatusConflict
	case "FORBIDDEN":
		status = fiber.StatusForbidden
	case "UNAUTHORIZED":
		status = fiber.StatusUnauthorized
	}
	return models.RespondWithError(c, status, appErr)
}
