package realtime

import (
	"QR-Ordering-Backend/domain"
	"encoding/json"
	"fmt"
	"time"
)

const (
	EventOrderCreated           = "order:created"
	EventOrderStatusUpdated     = "order:statusUpdated"
	EventOrderReady             = "order:ready"
	EventOrderReadyToServe      = "order:readyToServe"
	EventOrderItemStatusUpdated = "orderItem:statusUpdated"
	EventPaymentCompleted       = "payment:completed"
	EventWaiterCalled           = "waiter:called"
)

// Event is one of the closed set of messages pushed to rooms.
type Event interface {
	Name() string
	event()
}

type (
	OrderCreated struct {
		Order *domain.OrderResponse
	}

	OrderStatusUpdated struct {
		OrderID   string
		Status    string
		Order     *domain.OrderResponse
		Timestamp time.Time
	}

	OrderReady struct {
		OrderID   string
		Order     *domain.OrderResponse
		Message   string
		Timestamp time.Time
	}

	OrderReadyToServe struct {
		OrderID   string
		Order     *domain.OrderResponse
		Timestamp time.Time
	}

	OrderItemStatusUpdated struct {
		OrderID   string
		ItemID    string
		Status    string
		Timestamp time.Time
	}

	PaymentCompleted struct {
		OrderID     string
		PaymentData *domain.PaymentResponse
		Timestamp   time.Time
	}

	WaiterCalled struct {
		TableID     string
		TableNumber string
		Reason      string
		Timestamp   time.Time
	}
)

func (OrderCreated) Name() string           { return EventOrderCreated }
func (OrderStatusUpdated) Name() string     { return EventOrderStatusUpdated }
func (OrderReady) Name() string             { return EventOrderReady }
func (OrderReadyToServe) Name() string      { return EventOrderReadyToServe }
func (OrderItemStatusUpdated) Name() string { return EventOrderItemStatusUpdated }
func (PaymentCompleted) Name() string       { return EventPaymentCompleted }
func (WaiterCalled) Name() string           { return EventWaiterCalled }

func (OrderCreated) event()           {}
func (OrderStatusUpdated) event()     {}
func (OrderReady) event()             {}
func (OrderReadyToServe) event()      {}
func (OrderItemStatusUpdated) event() {}
func (PaymentCompleted) event()       {}
func (WaiterCalled) event()           {}

// Envelope is the frame written to a connection.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Encode renders an event into its wire frame.
func Encode(e Event) ([]byte, error) {
	var data any
	switch ev := e.(type) {
	case OrderCreated:
		data = ev.Order
	case OrderStatusUpdated:
		data = map[string]any{
			"orderId":   ev.OrderID,
			"status":    ev.Status,
			"order":     ev.Order,
			"timestamp": ev.Timestamp,
		}
	case OrderReady:
		data = map[string]any{
			"orderId":   ev.OrderID,
			"order":     ev.Order,
			"message":   ev.Message,
			"timestamp": ev.Timestamp,
		}
	case OrderReadyToServe:
		data = map[string]any{
			"orderId":   ev.OrderID,
			"order":     ev.Order,
			"timestamp": ev.Timestamp,
		}
	case OrderItemStatusUpdated:
		data = map[string]any{
			"orderId":   ev.OrderID,
			"itemId":    ev.ItemID,
			"status":    ev.Status,
			"timestamp": ev.Timestamp,
		}
	case PaymentCompleted:
		data = map[string]any{
			"orderId":     ev.OrderID,
			"paymentData": ev.PaymentData,
			"timestamp":   ev.Timestamp,
		}
	case WaiterCalled:
		payload := map[string]any{
			"tableId":     ev.TableID,
			"tableNumber": ev.TableNumber,
			"timestamp":   ev.Timestamp,
		}
		if ev.Reason != "" {
			payload["reason"] = ev.Reason
		}
		data = payload
	default:
		return nil, fmt.Errorf("realtime: unsupported event %T", e)
	}
	return json.Marshal(Envelope{Event: e.Name(), Data: data})
}
