package services

import (
	"context"

	"github.com/sabtech/whatsgate-backend/internal/models"
	"github.com/sabtech/whatsgate-backend/internal/store"
)

// WebhookService registers callback subscriptions for instances.
type WebhookService struct {
	instances store.InstanceStore
	webhooks  store.WebhookStore
}

func NewWebhookService(instances store.InstanceStore, webhooks store.WebhookStore) *WebhookService {
	return &WebhookService{instances: instances, webhooks: webhooks}
}

// Register persists a webhook for the instance. Registration requires the
// instance's secret token. An empty event list subscribes the webhook to the
// default events.
func (s *WebhookService) Register(ctx context.Context, instanceID, token, url string, events []string) (*models.Webhook, error) {
	if _, err := resolveInstance(ctx, s.instances, instanceID, token); err != nil {
		return nil, err
	}
	if url == "" {
		return nil, ErrInvalidRequest
	}

	if len(events) == 0 {
		events = models.DefaultWebhookEvents()
	}

	hook := &models.Webhook{
		InstanceID: instanceID,
		URL:        url,
		Events:     events,
	}
	if err := s.webhooks.InsertWebhook(ctx, hook); err != nil {
		return nil, err
	}
	return hook, nil
}
