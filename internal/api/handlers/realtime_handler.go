package handlers

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/internal/api/presenters"
	"QR-Ordering-Backend/pkg/jwt"
	"QR-Ordering-Backend/pkg/realtime"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type (
	RealtimeHandler interface {
		Upgrade(c *fiber.Ctx) error
		Serve() fiber.Handler
	}

	realtimeHandler struct {
		hub        *realtime.Hub
		jwtService jwt.JWTService
	}
)

func NewRealtimeHandler(hub *realtime.Hub, jwtService jwt.JWTService) RealtimeHandler {
	return &realtimeHandler{
		hub:        hub,
		jwtService: jwtService,
	}
}

// Upgrade admits websocket requests. Guests connect without a token and
// may only follow order rooms; staff pass their bearer token as ?token=.
func (h *realtimeHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	role := ""
	if token := c.Query("token"); token != "" {
		_, r, err := h.jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		role = r
	}
	c.Locals("role", role)
	return c.Next()
}

func (h *realtimeHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		role, _ := conn.Locals("role").(string)
		client := realtime.NewClient(role)
		h.hub.Register(client)

		writerDone := make(chan struct{})
		go h.writeLoop(conn, client, writerDone)
		defer func() {
			h.hub.Unregister(client)
			<-writerDone
		}()

		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warnw("realtime read failed", "client_id", client.ID, "error", err)
				}
				return
			}
			ack := h.hub.HandleFrame(client, msg)
			select {
			case client.Send <- ack:
			default:
				log.Warnw("realtime client buffer full, dropping ack", "client_id", client.ID)
			}
		}
	})
}

// writeLoop is the only goroutine that writes to conn.
func (h *realtimeHandler) writeLoop(conn *websocket.Conn, client *realtime.Client, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(done)
	}()

	for {
		select {
		case frame, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				_ = conn.Close()
				drain(client.Send)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				drain(client.Send)
				return
			}
		}
	}
}

// drain discards frames until the hub closes the channel.
func drain(ch <-chan []byte) {
	for range ch {
	}
}
