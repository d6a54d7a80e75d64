package handlers

import (
	"errors"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/services"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler is the custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: message,
	})
}

// respondError translates a service error into an HTTP response. Sentinel
// errors carry a short client-safe message; anything else is logged and
// replaced with a generic failure.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrGeocode),
		errors.Is(err, services.ErrMissingLocation):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrUpstream),
		errors.Is(err, services.ErrInvalidResponse):
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: err.Error()})
	default:
		logger.GetLogger("handlers").Errorf("Unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Internal Server Error"})
	}
}
