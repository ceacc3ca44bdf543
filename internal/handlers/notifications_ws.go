package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nuevas-energias/hrcore/internal/database"
	"github.com/nuevas-energias/hrcore/internal/middleware"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second

	// Per-connection send buffer. A subscriber that stops reading long
	// enough to fill it gets disconnected instead of blocking the
	// notification fan-out.
	wsSendBuffer = 16
)

// NotificationWSHandler streams freshly created notifications to
// connected users. It implements services.Broadcaster.
type NotificationWSHandler struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	conns    map[uint][]*wsSubscriber // user id -> open connections
}

type wsSubscriber struct {
	conn *websocket.Conn
	send chan database.Notification
}

// NewNotificationWSHandler creates a new notification stream handler
func NewNotificationWSHandler() *NotificationWSHandler {
	return &NotificationWSHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS middleware owns origin policy
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: make(map[uint][]*wsSubscriber),
	}
}

// SetupRoutes configures WebSocket routes
func (h *NotificationWSHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/notifications/stream", h.HandleWebSocket)
}

// HandleWebSocket upgrades the connection and streams the caller's
// notifications until the client disconnects.
func (h *NotificationWSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("NotificationWSHandler: Failed to upgrade connection for user %d: %v", principal.UserID, err)
		return
	}

	sub := &wsSubscriber{
		conn: conn,
		send: make(chan database.Notification, wsSendBuffer),
	}
	h.register(principal.UserID, sub)
	log.Printf("NotificationWSHandler: User %d connected", principal.UserID)

	go h.writeLoop(principal.UserID, sub)
	h.readLoop(principal.UserID, sub)
}

// Push delivers a notification to every open connection of the user.
// Connections with a full send buffer are skipped; the row is already
// stored, so the client catches up over the REST listing.
func (h *NotificationWSHandler) Push(userID uint, notification database.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.conns[userID] {
		select {
		case sub.send <- notification:
		default:
			log.Printf("NotificationWSHandler: Dropping push for user %d, send buffer full", userID)
		}
	}
}

func (h *NotificationWSHandler) register(userID uint, sub *wsSubscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userID] = append(h.conns[userID], sub)
}

func (h *NotificationWSHandler) unregister(userID uint, sub *wsSubscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.conns[userID]
	for i, s := range subs {
		if s == sub {
			h.conns[userID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// readLoop drains incoming frames so pong handling works and the
// connection close is detected.
func (h *NotificationWSHandler) readLoop(userID uint, sub *wsSubscriber) {
	defer func() {
		h.unregister(userID, sub)
		close(sub.send)
		sub.conn.Close()
		log.Printf("NotificationWSHandler: User %d disconnected", userID)
	}()

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *NotificationWSHandler) writeLoop(userID uint, sub *wsSubscriber) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case notification, ok := <-sub.send:
			if !ok {
				return
			}
			sub.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := sub.conn.WriteJSON(notification); err != nil {
				log.Printf("NotificationWSHandler: Failed to push to user %d: %v", userID, err)
				sub.conn.Close()
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				sub.conn.Close()
				return
			}
		}
	}
}
