package waiter

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"context"

	"github.com/gofiber/fiber/v2/log"
)

type (
	WaiterService interface {
		CallWaiter(ctx context.Context, table *entities.Table, req domain.WaiterCallRequest) error
	}

	Notifier interface {
		WaiterCalled(tableID, tableNumber, reason string)
	}

	waiterService struct {
		throttle Throttle
		notifier Notifier
	}
)

// NewWaiterService accepts a nil throttle, in which case every call goes
// through.
func NewWaiterService(throttle Throttle, notifier Notifier) WaiterService {
	return &waiterService{
		throttle: throttle,
		notifier: notifier,
	}
}

func (s *waiterService) CallWaiter(ctx context.Context, table *entities.Table, req domain.WaiterCallRequest) error {
	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, table.ID.String())
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrWaiterCallTooSoon
		}
	}
	s.notifier.WaiterCalled(table.ID.String(), table.Number, req.Reason)
	log.Infow("waiter called", "table_id", table.ID.String(), "table_number", table.Number)
	return nil
}
