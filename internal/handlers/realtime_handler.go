package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/showcall/showcall-backend/internal/realtime"
)

// RealtimeHandler streams table change notices over a websocket. Clients
// treat each notice as a refetch signal.
type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Upgrade gates the route to websocket upgrade requests.
func (h *RealtimeHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream subscribes the connection to the hub until either side closes.
func (h *RealtimeHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		ch := h.hub.Subscribe()
		defer h.hub.Unsubscribe(ch)

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case change, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.WriteJSON(change); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	})
}
