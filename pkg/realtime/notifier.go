package realtime

import (
	"QR-Ordering-Backend/domain"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const readyMessage = "Your order is ready and will be served shortly"

// Notifier turns domain changes into room broadcasts. Every method is
// fire and forget and must be called after the triggering write commits.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) OrderCreated(order *domain.OrderResponse) {
	n.publish(OrderCreated{Order: order})
}

// OrderAccepted releases the order to the kitchen, which has not seen it
// before this point.
func (n *Notifier) OrderAccepted(order *domain.OrderResponse) {
	e := OrderCreated{Order: order}
	n.guard(e, func() { n.hub.Emit(RoomKitchen, e) })
}

func (n *Notifier) OrderStatusUpdated(order *domain.OrderResponse) {
	n.publish(OrderStatusUpdated{
		OrderID:   order.ID,
		Status:    order.Status,
		Order:     order,
		Timestamp: n.now(),
	})
}

func (n *Notifier) OrderReady(order *domain.OrderResponse) {
	ts := n.now()
	n.publish(OrderReady{OrderID: order.ID, Order: order, Message: readyMessage, Timestamp: ts})
	n.publish(OrderReadyToServe{OrderID: order.ID, Order: order, Timestamp: ts})
}

func (n *Notifier) OrderItemStatusUpdated(orderID, itemID, status string) {
	n.publish(OrderItemStatusUpdated{
		OrderID:   orderID,
		ItemID:    itemID,
		Status:    status,
		Timestamp: n.now(),
	})
}

func (n *Notifier) PaymentCompleted(orderID string, payment *domain.PaymentResponse) {
	n.publish(PaymentCompleted{OrderID: orderID, PaymentData: payment, Timestamp: n.now()})
}

func (n *Notifier) WaiterCalled(tableID, tableNumber, reason string) {
	n.publish(WaiterCalled{
		TableID:     tableID,
		TableNumber: tableNumber,
		Reason:      reason,
		Timestamp:   n.now(),
	})
}

func (n *Notifier) publish(e Event) {
	n.guard(e, func() { n.hub.Publish(e) })
}

// guard keeps a failing broadcast from reaching the caller, whose write has
// already committed.
func (n *Notifier) guard(e Event, send func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("realtime publish panicked", "event", e.Name(), "panic", r)
		}
	}()
	send()
}
