package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// EventType identifies which mutation completed.
type EventType string

const (
	EventCustomerRegistered  EventType = "customer_registered"
	EventCustomerUpdated     EventType = "customer_updated"
	EventCustomerDeactivated EventType = "customer_deactivated"
	EventPurchaseAdded       EventType = "purchase_added"
	EventPaymentAdded        EventType = "payment_added"
)

// LedgerEvent is published after every successful mutation so the
// presentation layer can refresh the affected views.
type LedgerEvent struct {
	Type       EventType `json:"type"`
	CustomerID int       `json:"customer_id"`
	At         time.Time `json:"at"`
}

// Listener receives ledger events in-process (metrics, tests).
type Listener func(LedgerEvent)

// Hub fans ledger events out to in-process listeners and connected
// WebSocket clients.
type Hub struct {
	listeners  []Listener
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan LedgerEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan LedgerEvent, 64),
	}
}

// AddListener registers an in-process listener. Not safe to call after Run
// has started; wire listeners during startup.
func (h *Hub) AddListener(l Listener) {
	h.listeners = append(h.listeners, l)
}

// Register adds a WebSocket client to the fan-out set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()
}

// Unregister removes and closes a WebSocket client.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.clientsMux.Lock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
	h.clientsMux.Unlock()
}

// Publish queues an event for fan-out. Drops the event if the hub is
// saturated; a missed refresh signal is recoverable by polling.
func (h *Hub) Publish(evt LedgerEvent) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	select {
	case h.broadcast <- evt:
	default:
	}
}

// Run delivers events until the broadcast channel is closed. Call in its own
// goroutine.
func (h *Hub) Run() {
	for evt := range h.broadcast {
		for _, l := range h.listeners {
			l(evt)
		}
		h.fanOut(evt)
	}
}

// Close stops delivery. Publish must not be called afterwards.
func (h *Hub) Close() {
	close(h.broadcast)
	h.clientsMux.Lock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
	h.clientsMux.Unlock()
}

func (h *Hub) fanOut(evt LedgerEvent) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(evt); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
