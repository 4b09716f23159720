package presenters

import (
	"QR-Ordering-Backend/domain"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrOrderNotFound, fiber.StatusNotFound},
		{fmt.Errorf("%s: %w", "abc", domain.ErrMenuItemNotFound), fiber.StatusNotFound},
		{domain.ErrOrderClosed, fiber.StatusConflict},
		{domain.ErrOrderStatusChanged, fiber.StatusConflict},
		{domain.ErrOrderAlreadyPaid, fiber.StatusConflict},
		{domain.ErrQRTokenRevoked, fiber.StatusUnauthorized},
		{domain.ErrOrderNotForThisTable, fiber.StatusForbidden},
		{domain.ErrWaiterCallTooSoon, fiber.StatusTooManyRequests},
		{domain.ErrEmptyCart, fiber.StatusBadRequest},
		{domain.ErrDuplicateModifierOption, fiber.StatusBadRequest},
		{fmt.Errorf("%s: %w", "Large", domain.ErrModifierUnavailable), fiber.StatusBadRequest},
		{domain.ErrParseUUID, fiber.StatusBadRequest},
		{domain.ErrPaymentExceedsBalance, fiber.StatusBadRequest},
		{domain.ErrPaymentGatewayOff, fiber.StatusServiceUnavailable},
		{fmt.Errorf("%w: %s", domain.ErrPaymentFailed, "snap timeout"), fiber.StatusServiceUnavailable},
		{errors.New("dial tcp 10.0.0.5:5432: connection refused"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err, fiber.StatusInternalServerError))
		})
	}
}
