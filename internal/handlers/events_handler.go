package handlers

import (
	"log"
	"net/http"

	"fiado-backend/internal/notify"

	"github.com/gorilla/websocket"
)

// EventsHandler upgrades presentation-layer clients onto the ledger change
// feed. Views refresh when an event arrives instead of polling every
// mutation endpoint.
type EventsHandler struct {
	Hub      *notify.Hub
	upgrader websocket.Upgrader
}

func NewEventsHandler(hub *notify.Hub) *EventsHandler {
	return &EventsHandler{
		Hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local single-user deployment; the CORS middleware guards
			// the rest of the API
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe streams ledger events to the client until it disconnects.
// GET /api/events
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Events] Upgrade failed: %v", err)
		return
	}

	h.Hub.Register(conn)

	// Drain control frames; the client never sends data
	go func() {
		defer h.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
