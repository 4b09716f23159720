package realtime

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const defaultSendBuffer = 64

// Client is one live connection. Frames queued on Send are written by the
// transport; the hub closes Send when the client is unregistered.
type Client struct {
	ID   string
	Role string
	Send chan []byte

	rooms map[Room]struct{}
}

func NewClient(role string) *Client {
	return &Client{
		ID:    uuid.NewString(),
		Role:  role,
		Send:  make(chan []byte, defaultSendBuffer),
		rooms: make(map[Room]struct{}),
	}
}

// Hub keeps process-local room membership and fans events out to it.
// Delivery is best effort: a client whose buffer is full misses the frame.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[Room]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[Room]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	activeConnections.Inc()
	log.Infow("realtime client connected", "client_id", c.ID, "role", c.Role)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	for room := range c.rooms {
		h.removeLocked(c, room)
	}
	delete(h.clients, c)
	close(c.Send)
	activeConnections.Dec()
	log.Infow("realtime client disconnected", "client_id", c.ID)
}

func (h *Hub) Join(c *Client, room Room) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
	return true
}

func (h *Hub) Leave(c *Client, room Room) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c, room)
}

func (h *Hub) removeLocked(c *Client, room Room) {
	delete(c.rooms, room)
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Members reports how many clients are in a room.
func (h *Hub) Members(room Room) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Emit pushes an event to a single room.
func (h *Hub) Emit(room Room, e Event) {
	frame, err := Encode(e)
	if err != nil {
		log.Errorw("failed to encode realtime event", "event", e.Name(), "error", err)
		return
	}
	h.emitFrame(room, e.Name(), frame)
}

// Publish pushes an event to every room its routing selects.
func (h *Hub) Publish(e Event) {
	frame, err := Encode(e)
	if err != nil {
		log.Errorw("failed to encode realtime event", "event", e.Name(), "error", err)
		return
	}
	for _, room := range RoomsFor(e) {
		h.emitFrame(room, e.Name(), frame)
	}
}

func (h *Hub) emitFrame(room Room, name string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	eventsPublished.WithLabelValues(name, roomLabel(room)).Inc()
	for c := range h.rooms[room] {
		select {
		case c.Send <- frame:
			deliveries.WithLabelValues("queued").Inc()
		default:
			deliveries.WithLabelValues("dropped").Inc()
			log.Warnw("realtime client buffer full, dropping event",
				"client_id", c.ID, "room", string(room), "event", name)
		}
	}
}

// order rooms are collapsed so the label set stays bounded
func roomLabel(room Room) string {
	if room.IsOrderRoom() {
		return "order"
	}
	return string(room)
}
