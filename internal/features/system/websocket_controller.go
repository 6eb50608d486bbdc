package system

import (
	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	Hub *Hub
	Log *zap.Logger
}

func NewWebSocketController(hub *Hub, log *zap.Logger) *WebSocketController {
	return &WebSocketController{
		Hub: hub,
		Log: log,
	}
}

// HandleWebSocket streams hub events to one client until it disconnects.
func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	events, unsubscribe := h.Hub.Subscribe()
	defer unsubscribe()

	// The read loop only exists to notice the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return
			}
			if err := c.WriteJSON(evt); err != nil {
				h.Log.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}
