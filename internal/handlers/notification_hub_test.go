// ejournal/internal/handlers/notification_hub_test.go

package handlers

import (
	"testing"
	"time"

	"ejournal/models"
)

func hubClient(h *NotificationHub, userID uint) *notificationClient {
	return &notificationClient{hub: h, send: make(chan []byte, 8), userID: userID}
}

// После переподключения запоздавший unregister старого соединения не должен
// отключать свежее: пуш обязан дойти до нового клиента.
func TestHubStaleUnregisterKeepsFreshClient(t *testing.T) {
	h := NewNotificationHub()
	go h.Run()

	old := hubClient(h, 1)
	h.register <- old

	fresh := hubClient(h, 1)
	h.register <- fresh

	// Старое соединение закрывается последним, как это происходит при
	// реальном переподключении браузера.
	h.unregister <- old

	h.Push(models.Notification{UserID: 1, Title: "Новая оценка"})

	select {
	case msg, ok := <-fresh.send:
		if !ok {
			t.Fatal("канал свежего клиента закрыт запоздавшим unregister")
		}
		if len(msg) == 0 {
			t.Fatal("пустой payload уведомления")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("уведомление не дошло до свежего клиента")
	}
}

func TestHubReplacedClientChannelClosed(t *testing.T) {
	h := NewNotificationHub()
	go h.Run()

	old := hubClient(h, 7)
	h.register <- old
	h.register <- hubClient(h, 7)

	select {
	case _, ok := <-old.send:
		if ok {
			t.Fatal("в канал вытесненного клиента что-то записали")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("канал вытесненного клиента не закрыт")
	}
}

func TestHubUnregisterRemovesClient(t *testing.T) {
	h := NewNotificationHub()
	go h.Run()

	client := hubClient(h, 3)
	h.register <- client
	h.unregister <- client

	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("в канал снятого клиента что-то записали")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("канал снятого клиента не закрыт")
	}

	// Пуш отключившемуся пользователю просто никуда не доставляется.
	h.Push(models.Notification{UserID: 3, Title: "Вдогонку"})
}
