package presenters

import (
	"QR-Ordering-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	resp := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.Status(code).JSON(resp)
}

// StatusFromError maps an error kind to its HTTP status, using fallback
// for anything unclassified.
func StatusFromError(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrTooManyRequests):
		return fiber.StatusTooManyRequests
	case errors.Is(err, domain.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fallback
}
