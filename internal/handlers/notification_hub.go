// ejournal/internal/handlers/notification_hub.go

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ejournal/internal/middleware"
	"ejournal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // фронтенд и API живут на разных портах в dev
	},
}

type notificationClient struct {
	hub    *NotificationHub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// NotificationHub pushes freshly created notifications to online users.
// One-way: clients only listen, all writes happen over the REST API.
type NotificationHub struct {
	clients    map[uint]*notificationClient
	register   chan *notificationClient
	unregister chan *notificationClient
	push       chan models.Notification
	mu         sync.Mutex
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		clients:    make(map[uint]*notificationClient),
		register:   make(chan *notificationClient),
		unregister: make(chan *notificationClient),
		push:       make(chan models.Notification, 64),
	}
}

func (h *NotificationHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			// Переподключение: старое соединение того же пользователя
			// вытесняется, его writePump завершится по закрытому каналу.
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
			}
			h.clients[client.userID] = client
			h.mu.Unlock()
			slog.Info("Notification client registered", "userID", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			// Запоздавший unregister старого соединения не должен снять
			// с учета свежее: сверяем не только userID, но и сам клиент.
			if cur, ok := h.clients[client.userID]; ok && cur == client {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			slog.Info("Notification client unregistered", "userID", client.userID)

		case n := <-h.push:
			h.deliver(n)
		}
	}
}

// Push queues a notification for delivery; drops it when the hub is
// saturated rather than blocking the HTTP handler.
func (h *NotificationHub) Push(n models.Notification) {
	select {
	case h.push <- n:
	default:
		slog.Warn("Notification hub is saturated, dropping push", "userID", n.UserID)
	}
}

func (h *NotificationHub) deliver(n models.Notification) {
	payload, err := json.Marshal(gin.H{"type": "notification", "payload": n})
	if err != nil {
		slog.Error("Failed to marshal notification for push", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	client, ok := h.clients[n.UserID]
	if !ok {
		return // адресат не в сети, увидит уведомление при следующем входе
	}
	select {
	case client.send <- payload:
	default:
		close(client.send)
		delete(h.clients, n.UserID)
	}
}

func (c *notificationClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// Клиент ничего осмысленного не шлет; читаем только ради
		// обнаружения закрытия соединения.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("Unexpected websocket close error", "error", err)
			}
			break
		}
	}
}

func (c *notificationClient) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Error("Failed to write notification to websocket", "error", err)
			return
		}
	}
}

// NotificationsWS upgrades the connection and keeps it registered until the
// client goes away.
func (s *Server) NotificationsWS(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		fail(c, http.StatusUnauthorized, "Требуется вход в систему")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}

	client := &notificationClient{
		hub:    s.Hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
