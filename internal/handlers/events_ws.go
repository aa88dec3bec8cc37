package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/sabtech/whatsgate-backend/internal/services"
)

var eventsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// EventsHandler streams an instance's gateway events (the same events that
// feed its webhooks) over a WebSocket, backed by Redis pub/sub.
type EventsHandler struct {
	instances *services.InstanceService
	redis     *redis.Client // nil disables the stream
}

func NewEventsHandler(instances *services.InstanceService, redisClient *redis.Client) *EventsHandler {
	return &EventsHandler{instances: instances, redis: redisClient}
}

// Stream authenticates with the instance credentials passed as query
// parameters (browser WebSocket clients cannot set headers) and forwards
// events until the client disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if h.redis == nil {
		writeDetail(w, http.StatusServiceUnavailable, "Event stream not available")
		return
	}

	instanceID := r.URL.Query().Get("instance_id")
	token := r.URL.Query().Get("token")
	if instanceID == "" || token == "" {
		writeDetail(w, http.StatusBadRequest, "instance_id and token are required")
		return
	}

	if _, err := h.instances.VerifyCredentials(r.Context(), instanceID, token); err != nil {
		writeServiceError(w, err)
		return
	}

	conn, err := eventsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := h.redis.Subscribe(ctx, services.EventChannel(instanceID))
	defer pubsub.Close()

	// Writer goroutine: forward published events to this connection.
	go func() {
		for {
			msg, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				return
			}
			var event services.InstanceEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			if err := conn.WriteJSON(event); err != nil {
				cancel()
				return
			}
		}
	}()

	// Reader loop: keep the connection alive, drop it when the peer goes away.
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	}
}
