package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sabtech/whatsgate-backend/internal/store"
)

const (
	// WebhookTimeout bounds each outbound callback attempt.
	WebhookTimeout = 3 * time.Second
	// notifyLookupTimeout bounds the subscriber lookup.
	notifyLookupTimeout = 5 * time.Second
)

// WebhookNotifier delivers gateway events to an instance's registered
// webhooks. Delivery is strictly best-effort: one attempt per subscriber,
// failures (timeouts, connection errors, non-2xx responses) are discarded,
// there is no retry and no dead-letter record.
type WebhookNotifier struct {
	webhooks store.WebhookStore
	client   *http.Client
	bus      EventPublisher // optional live event stream, may be nil
}

func NewWebhookNotifier(webhooks store.WebhookStore, bus EventPublisher) *WebhookNotifier {
	return &WebhookNotifier{
		webhooks: webhooks,
		client:   &http.Client{Timeout: WebhookTimeout},
		bus:      bus,
	}
}

// Notify posts {event, data} to every webhook of the instance subscribed to
// the event, and mirrors the event onto the live stream when one is wired.
func (n *WebhookNotifier) Notify(instanceID, event string, data map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyLookupTimeout)
	defer cancel()

	hooks, err := n.webhooks.FindSubscribed(ctx, instanceID, event)
	if err != nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		return
	}

	for _, hook := range hooks {
		req, err := http.NewRequest(http.MethodPost, hook.URL, bytes.NewReader(payload))
		if err != nil {
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Delivery-Id", uuid.New().String())

		resp, err := n.client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
	}

	if n.bus != nil {
		_ = n.bus.PublishInstanceEvent(ctx, InstanceEvent{
			Event:      event,
			InstanceID: instanceID,
			Data:       data,
		})
	}
}
