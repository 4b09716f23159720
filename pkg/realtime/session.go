package realtime

import (
	"QR-Ordering-Backend/domain"
	"encoding/json"

	"github.com/google/uuid"
)

const (
	RequestJoinOrder   = "join:order"
	RequestLeaveOrder  = "leave:order"
	RequestJoinKitchen = "join:kitchen"
	RequestJoinWaiter  = "join:waiter"
	RequestJoinAdmin   = "join:admin"

	eventAck = "ack"
)

type (
	request struct {
		Event string `json:"event"`
		Data  struct {
			OrderID string `json:"orderId"`
		} `json:"data"`
	}

	Ack struct {
		Request string `json:"request"`
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

// staffRooms lists the roles allowed into each role room.
var staffRooms = map[string]struct {
	room  Room
	roles []string
}{
	RequestJoinKitchen: {RoomKitchen, []string{domain.RoleKitchen, domain.RoleAdmin}},
	RequestJoinWaiter:  {RoomWaiter, []string{domain.RoleWaiter, domain.RoleAdmin}},
	RequestJoinAdmin:   {RoomAdmin, []string{domain.RoleAdmin}},
}

// HandleFrame applies one inbound frame from a client and returns the
// acknowledgement frame to write back.
func (h *Hub) HandleFrame(c *Client, raw []byte) []byte {
	ack := h.handleRequest(c, raw)
	frame, _ := json.Marshal(Envelope{Event: eventAck, Data: ack})
	return frame
}

func (h *Hub) handleRequest(c *Client, raw []byte) Ack {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Ack{Success: false, Message: "malformed request"}
	}

	switch req.Event {
	case RequestJoinOrder, RequestLeaveOrder:
		if _, err := uuid.Parse(req.Data.OrderID); err != nil {
			return Ack{Request: req.Event, Success: false, Message: "invalid order id"}
		}
		room := OrderRoom(req.Data.OrderID)
		if req.Event == RequestLeaveOrder {
			h.Leave(c, room)
			return Ack{Request: req.Event, Success: true, Message: "left " + string(room)}
		}
		if !h.Join(c, room) {
			return Ack{Request: req.Event, Success: false, Message: "connection closed"}
		}
		return Ack{Request: req.Event, Success: true, Message: "joined " + string(room)}
	}

	target, ok := staffRooms[req.Event]
	if !ok {
		return Ack{Request: req.Event, Success: false, Message: "unknown request"}
	}
	if !hasRole(c.Role, target.roles) {
		return Ack{Request: req.Event, Success: false, Message: domain.MesaageUserNotAllowed}
	}
	if !h.Join(c, target.room) {
		return Ack{Request: req.Event, Success: false, Message: "connection closed"}
	}
	return Ack{Request: req.Event, Success: true, Message: "joined " + string(target.room)}
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
