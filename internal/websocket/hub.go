package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"vontara-backend/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub pushes dashboard snapshots to connected admin clients. It holds no
// subscription state of its own: the scheduler computes a snapshot on its
// fixed cadence and hands it to Broadcast, so clients see exactly the polled
// view they would get from GET /dashboard.
type Hub struct {
	mu       sync.RWMutex
	conns    map[*websocket.Conn]bool
	jwtAuth  *middleware.JWTAuth
	lastSent []byte
}

func NewHub(jwtAuth *middleware.JWTAuth) *Hub {
	return &Hub{
		conns:   make(map[*websocket.Conn]bool),
		jwtAuth: jwtAuth,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Authenticate via token query param
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" || !h.jwtAuth.VerifyAdminToken(tokenStr) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.register(conn)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[conn] = true

	// A client connecting between refresh ticks gets the last snapshot
	// immediately instead of waiting out the interval.
	if h.lastSent != nil {
		conn.WriteMessage(websocket.TextMessage, h.lastSent)
	}

	log.Printf("Dashboard feed connected (total: %d)", len(h.conns))
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	delete(h.conns, conn)

	log.Printf("Dashboard feed disconnected (total: %d)", len(h.conns))
}

// Broadcast sends a snapshot to every connected client. Connections that fail
// to write are dropped.
func (h *Hub) Broadcast(snapshot interface{}) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("Dashboard feed: marshal snapshot: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastSent = payload
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Close tears down all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}
