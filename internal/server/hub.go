package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/lanscan/internal/logging"
	"github.com/muurk/lanscan/internal/scan"
)

const (
	// Time allowed to write a message to a client
	writeWait = 10 * time.Second
)

// eventEnvelope is the JSON frame pushed to WebSocket clients for every scan
// notification.
type eventEnvelope struct {
	Event       string       `json:"event"`
	Device      *scan.Device `json:"device,omitempty"`
	SecondsLeft *int         `json:"secondsLeft,omitempty"`
}

// Hub broadcasts scan notifications to connected WebSocket clients. It
// implements scan.Notifier: a delivery failure to one client drops that
// client and never fails the scan.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	closed  bool

	// writeMu serializes broadcasts; gorilla connections support at most
	// one concurrent writer.
	writeMu sync.Mutex
}

var _ scan.Notifier = (*Hub)(nil)

// NewHub creates a hub with no connected clients.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Scan events are not sensitive; any local front-end may listen.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// HandleWS upgrades an HTTP request to a WebSocket connection and registers
// it for event delivery. The client is not expected to send anything; the
// read loop only exists to detect disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("failed to upgrade WebSocket connection",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	logging.LogClientEvent(conn.RemoteAddr().String(), "websocket_connected")

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all clients. Notifications after Close are discarded.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.clients = make(map[*websocket.Conn]struct{})
	h.closed = true
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

// DeviceFound pushes a new-device event with the full device snapshot.
func (h *Hub) DeviceFound(device scan.Device) error {
	h.broadcast(eventEnvelope{Event: "new-device", Device: &device})
	return nil
}

// Tick pushes a scan-tick event with the remaining seconds.
func (h *Hub) Tick(secondsLeft int) error {
	h.broadcast(eventEnvelope{Event: "scan-tick", SecondsLeft: &secondsLeft})
	return nil
}

// Stopped pushes a scan-stopped event.
func (h *Hub) Stopped() error {
	h.broadcast(eventEnvelope{Event: "scan-stopped"})
	return nil
}

func (h *Hub) broadcast(env eventEnvelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		logging.Warn("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logging.Warn("failed to deliver event to client",
				zap.String("remote_addr", conn.RemoteAddr().String()),
				zap.String("event", env.Event),
				zap.Error(err),
			)
			h.drop(conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()

	_ = conn.Close()
	if ok {
		logging.LogClientEvent(conn.RemoteAddr().String(), "websocket_closed")
	}
}
