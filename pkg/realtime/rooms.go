package realtime

import (
	"QR-Ordering-Backend/entities"
	"strings"
)

type Room string

const (
	RoomKitchen Room = "kitchen"
	RoomWaiter  Room = "waiter"
	RoomAdmin   Room = "admin"

	orderRoomPrefix = "order:"
)

func OrderRoom(orderID string) Room {
	return Room(orderRoomPrefix + orderID)
}

func (r Room) IsOrderRoom() bool {
	return strings.HasPrefix(string(r), orderRoomPrefix)
}

// RoomsFor returns the rooms that receive an event. Kitchen staff only
// learn about an order once it has been accepted, so a freshly created
// order goes to admin alone.
func RoomsFor(e Event) []Room {
	switch ev := e.(type) {
	case OrderCreated:
		return []Room{RoomAdmin}
	case OrderStatusUpdated:
		rooms := []Room{OrderRoom(ev.OrderID), RoomAdmin}
		if kitchenFollows(entities.OrderStatus(ev.Status)) {
			rooms = append(rooms, RoomKitchen)
		}
		return rooms
	case OrderItemStatusUpdated:
		return []Room{OrderRoom(ev.OrderID), RoomKitchen, RoomAdmin}
	case OrderReady:
		return []Room{OrderRoom(ev.OrderID)}
	case OrderReadyToServe:
		return []Room{RoomWaiter}
	case PaymentCompleted:
		return []Room{OrderRoom(ev.OrderID), RoomAdmin}
	case WaiterCalled:
		return []Room{RoomWaiter}
	}
	return nil
}

func kitchenFollows(status entities.OrderStatus) bool {
	switch status {
	case entities.OrderPreparing, entities.OrderReady, entities.OrderServed,
		entities.OrderCompleted, entities.OrderCancelled:
		return true
	}
	return false
}
